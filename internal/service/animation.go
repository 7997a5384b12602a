package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"
)

var ErrUnknownEasing = errors.New("unknown easing")

// Easing maps linear progress in [0, 1] to eased progress in [0, 1].
type Easing func(t float64) float64

// Easing names accepted by ParseEasing.
const (
	EasingLinear    = "linear"
	EasingEaseOut   = "ease-out"
	EasingEaseInOut = "ease-in-out"
)

// Linear keeps a constant angular speed.
func Linear(t float64) float64 {
	return clamp01(t)
}

// EaseOut decelerates towards the end (cubic).
func EaseOut(t float64) float64 {
	t = clamp01(t)
	return 1 - math.Pow(1-t, 3)
}

// EaseInOut accelerates, then decelerates (cubic).
func EaseInOut(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// ParseEasing returns the easing function registered under name.
func ParseEasing(name string) (Easing, error) {
	switch name {
	case EasingLinear:
		return Linear, nil
	case EasingEaseOut, "":
		return EaseOut, nil
	case EasingEaseInOut:
		return EaseInOut, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
	}
}

func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}

// Animator drives a value from one number to another over a fixed duration,
// reporting intermediate values on every tick.
type Animator struct {
	duration time.Duration
	frame    time.Duration
	easing   Easing
}

// NewAnimator creates an animator. Zero frame interval defaults to 16ms,
// nil easing defaults to EaseOut.
func NewAnimator(duration, frame time.Duration, easing Easing) *Animator {
	if frame <= 0 {
		frame = 16 * time.Millisecond
	}
	if easing == nil {
		easing = EaseOut
	}

	return &Animator{
		duration: duration,
		frame:    frame,
		easing:   easing,
	}
}

// Animate starts an animation from -> to in a new goroutine and returns a
// cancel function. onFrame receives every intermediate value and finally
// exactly to. onDone runs once after the last frame, unless the animation
// was canceled first, either by ctx or by the returned function.
func (a *Animator) Animate(
	ctx context.Context,
	from, to float64,
	onFrame func(value float64),
	onDone func(),
) (cancel func()) {
	ctx, stop := context.WithCancel(ctx)

	var canceled atomic.Bool
	cancel = func() {
		canceled.Store(true)
		stop()
	}

	live := func() bool {
		return !canceled.Load() && ctx.Err() == nil
	}

	go func() {
		defer stop()

		start := time.Now()
		ticker := time.NewTicker(a.frame)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if !live() {
					return
				}

				progress := 1.0
				if a.duration > 0 {
					progress = float64(now.Sub(start)) / float64(a.duration)
				}

				if progress >= 1 {
					if onFrame != nil {
						onFrame(to)
					}
					if onDone != nil && live() {
						onDone()
					}
					return
				}

				if onFrame != nil {
					onFrame(from + (to-from)*a.easing(progress))
				}
			}
		}
	}()

	return cancel
}
