package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/spin-quiz/internal/domain/entities"
)

var ErrInvalidWheel = errors.New("invalid wheel configuration")

// SpinListener receives the visible progress of a spin.
// Both methods are called from the animation goroutine.
type SpinListener interface {
	OnFrame(angle float64)
	OnSettled(outcome entities.SpinOutcome)
}

// SpinCanceler is implemented by listeners that want to know when the
// context of their spin was canceled before the wheel settled. It is not
// called for Stop.
type SpinCanceler interface {
	OnCanceled(outcome entities.SpinOutcome)
}

// WheelConfig holds the tunables of the category wheel.
type WheelConfig struct {
	Categories    []entities.Category
	MinSpins      int           // fewest whole turns of a spin
	MaxSpins      int           // most whole turns of a spin (inclusive)
	Duration      time.Duration // length of the spin animation
	FrameInterval time.Duration // delay between animation frames
	Easing        Easing        // easing curve of the animation
	SpinBonus     int           // points credited when a spin settles
	Rand          *rand.Rand    // random source, seeded from the clock when nil
}

// DefaultWheelConfig returns the wheel used by the game: six categories,
// 5 to 9 whole turns, three seconds with an ease-out curve.
func DefaultWheelConfig() WheelConfig {
	return WheelConfig{
		Categories:    entities.Categories(),
		MinSpins:      5,
		MaxSpins:      9,
		Duration:      3 * time.Second,
		FrameInterval: 16 * time.Millisecond,
		Easing:        EaseOut,
	}
}

func (c WheelConfig) validate() error {
	switch {
	case len(c.Categories) == 0:
		return fmt.Errorf("%w: no categories", ErrInvalidWheel)
	case c.MinSpins < 0 || c.MaxSpins < c.MinSpins:
		return fmt.Errorf("%w: spins range [%d, %d]", ErrInvalidWheel, c.MinSpins, c.MaxSpins)
	case c.Duration < 0:
		return fmt.Errorf("%w: negative duration", ErrInvalidWheel)
	case c.SpinBonus < 0:
		return fmt.Errorf("%w: negative spin bonus", ErrInvalidWheel)
	}
	return nil
}

// Wheel selects a category at random and animates the wheel towards it.
// The outcome is fixed when Spin returns; the animation is cosmetic.
type Wheel struct {
	cfg      WheelConfig
	animator *Animator
	score    *Score
	logger   *zap.Logger

	mu       sync.Mutex
	rng      *rand.Rand
	spinning bool
	angle    float64 // current visible angle
	last     *entities.SpinOutcome
	gen      uint64 // bumped on every spin and stop; stale callbacks are dropped
	cancel   func()
	unwatch  func() bool // stops watching the context of the current spin
}

// NewWheel creates a new Wheel.
func NewWheel(cfg WheelConfig, score *Score, logger *zap.Logger) (*Wheel, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Wheel{
		cfg:      cfg,
		animator: NewAnimator(cfg.Duration, cfg.FrameInterval, cfg.Easing),
		score:    score,
		logger:   logger,
		rng:      rng,
	}, nil
}

// Categories returns the wheel segments in order.
func (w *Wheel) Categories() []entities.Category {
	return append([]entities.Category(nil), w.cfg.Categories...)
}

// Spin decides a category and starts the animation. While a previous spin
// is still animating the call is ignored: it returns the previous outcome
// and false.
func (w *Wheel) Spin(ctx context.Context, listener SpinListener) (entities.SpinOutcome, bool) {
	w.mu.Lock()

	if w.spinning {
		var prev entities.SpinOutcome
		if w.last != nil {
			prev = *w.last
		}
		w.mu.Unlock()

		w.logger.Debug("spin ignored: wheel is spinning")
		return prev, false
	}

	n := len(w.cfg.Categories)
	index := w.rng.Intn(n)
	spins := w.cfg.MinSpins + w.rng.Intn(w.cfg.MaxSpins-w.cfg.MinSpins+1)

	outcome := entities.SpinOutcome{
		Index:    index,
		Category: w.cfg.Categories[index],
		Spins:    spins,
		Rotation: entities.RotationFor(spins, index, n),
	}

	// Start from the resting position reduced to one turn, so that the
	// wheel always turns forward.
	from := math.Mod(w.angle, entities.FullTurn)

	w.gen++
	gen := w.gen
	w.spinning = true
	w.last = &outcome
	w.angle = from

	w.cancel = w.animator.Animate(ctx, from, outcome.Rotation,
		func(angle float64) { w.frame(gen, angle, listener) },
		func() { w.settle(gen, outcome, listener) },
	)
	w.unwatch = context.AfterFunc(ctx, func() { w.abort(gen, outcome, listener) })

	w.mu.Unlock()

	w.logger.Info("wheel spun",
		zap.String("category", outcome.Category.String()),
		zap.Int("index", outcome.Index),
		zap.Int("spins", outcome.Spins),
		zap.Float64("rotation", outcome.Rotation),
	)

	return outcome, true
}

func (w *Wheel) frame(gen uint64, angle float64, listener SpinListener) {
	w.mu.Lock()
	if gen != w.gen {
		w.mu.Unlock()
		return
	}
	w.angle = angle
	w.mu.Unlock()

	if listener != nil {
		listener.OnFrame(angle)
	}
}

func (w *Wheel) settle(gen uint64, outcome entities.SpinOutcome, listener SpinListener) {
	w.mu.Lock()
	if gen != w.gen || !w.spinning {
		w.mu.Unlock()
		return
	}
	w.spinning = false
	w.angle = outcome.Rotation
	w.cancel = nil
	unwatch := w.unwatch
	w.unwatch = nil
	w.mu.Unlock()

	if unwatch != nil {
		unwatch()
	}

	if w.cfg.SpinBonus > 0 && w.score != nil {
		w.score.Increment(w.cfg.SpinBonus)
	}

	w.logger.Debug("wheel settled", zap.String("category", outcome.Category.String()))

	if listener != nil {
		listener.OnSettled(outcome)
	}
}

// abort unlocks the wheel when the context of a spin is canceled before it
// settles. The wheel rests at the last drawn angle.
func (w *Wheel) abort(gen uint64, outcome entities.SpinOutcome, listener SpinListener) {
	w.mu.Lock()
	if gen != w.gen || !w.spinning {
		w.mu.Unlock()
		return
	}
	cancel := w.cancel
	w.cancel = nil
	w.unwatch = nil
	w.spinning = false
	w.gen++
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	w.logger.Debug("spin canceled by context", zap.String("category", outcome.Category.String()))

	if c, ok := listener.(SpinCanceler); ok {
		c.OnCanceled(outcome)
	}
}

// Stop cancels the animation in progress, if any. No settle callback fires
// for a stopped spin and the wheel is unlocked for the next one.
func (w *Wheel) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	unwatch := w.unwatch
	wasSpinning := w.spinning
	w.cancel = nil
	w.unwatch = nil
	w.spinning = false
	w.gen++
	w.mu.Unlock()

	if unwatch != nil {
		unwatch()
	}
	if cancel != nil {
		cancel()
	}

	if wasSpinning {
		w.logger.Debug("spin canceled")
	}
}

// Spinning reports whether an animation is in progress.
func (w *Wheel) Spinning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.spinning
}

// Angle returns the current visible angle of the wheel.
func (w *Wheel) Angle() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.angle
}

// LastOutcome returns the outcome of the most recent spin.
func (w *Wheel) LastOutcome() (entities.SpinOutcome, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.last == nil {
		return entities.SpinOutcome{}, false
	}
	return *w.last, true
}
