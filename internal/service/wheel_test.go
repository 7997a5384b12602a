package service

import (
	"context"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/spin-quiz/internal/domain/entities"
)

type spinRecorder struct {
	frames  atomic.Int32
	settled chan entities.SpinOutcome
}

func newSpinRecorder() *spinRecorder {
	return &spinRecorder{settled: make(chan entities.SpinOutcome, 4)}
}

func (r *spinRecorder) OnFrame(float64) { r.frames.Add(1) }

func (r *spinRecorder) OnSettled(o entities.SpinOutcome) { r.settled <- o }

func testWheel(t *testing.T, duration time.Duration, bonus int, score *Score) *Wheel {
	t.Helper()

	cfg := DefaultWheelConfig()
	cfg.Duration = duration
	cfg.FrameInterval = time.Millisecond
	cfg.SpinBonus = bonus
	cfg.Rand = rand.New(rand.NewSource(42))

	if score == nil {
		score = NewScore(zap.NewNop())
	}

	w, err := NewWheel(cfg, score, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(w.Stop)

	return w
}

func TestWheelRotationEncodesCategory(t *testing.T) {
	w := testWheel(t, time.Hour, 0, nil)
	cats := w.Categories()

	for i := 0; i < 500; i++ {
		o, ok := w.Spin(context.Background(), nil)
		require.True(t, ok)

		assert.Equal(t, cats[o.Index], o.Category)
		assert.Equal(t, o.Index, o.IndicatedIndex(len(cats)))
		assert.GreaterOrEqual(t, o.Spins, 5)
		assert.LessOrEqual(t, o.Spins, 9)
		assert.Equal(t, float64(o.Spins*360+o.Index*60), o.Rotation)

		w.Stop()
	}
}

func TestWheelSelectionIsUniform(t *testing.T) {
	w := testWheel(t, time.Hour, 0, nil)
	const trials = 6000

	counts := make(map[entities.Category]int)
	for i := 0; i < trials; i++ {
		o, ok := w.Spin(context.Background(), nil)
		require.True(t, ok)
		counts[o.Category]++
		w.Stop()
	}

	require.Len(t, counts, 6)
	for c, n := range counts {
		// Expected 1000 per category; the bound is about seven standard deviations.
		assert.InDelta(t, trials/6, n, 200, "category %s", c)
	}
}

func TestWheelIgnoresReentrantSpin(t *testing.T) {
	w := testWheel(t, time.Hour, 0, nil)

	first, ok := w.Spin(context.Background(), nil)
	require.True(t, ok)
	require.True(t, w.Spinning())

	second, ok := w.Spin(context.Background(), nil)
	assert.False(t, ok)
	assert.Equal(t, first, second)

	last, ok := w.LastOutcome()
	require.True(t, ok)
	assert.Equal(t, first, last)
}

func TestWheelSettles(t *testing.T) {
	score := NewScore(zap.NewNop())
	w := testWheel(t, 20*time.Millisecond, 2, score)
	rec := newSpinRecorder()

	o, ok := w.Spin(context.Background(), rec)
	require.True(t, ok)

	select {
	case got := <-rec.settled:
		assert.Equal(t, o, got)
	case <-time.After(2 * time.Second):
		t.Fatal("spin did not settle")
	}

	assert.False(t, w.Spinning())
	assert.Equal(t, o.Rotation, w.Angle())
	assert.Equal(t, 2, score.Value())
	assert.Positive(t, rec.frames.Load())

	// The next spin starts from the resting angle reduced to one turn.
	next, ok := w.Spin(context.Background(), nil)
	require.True(t, ok)
	assert.Less(t, w.Angle(), next.Rotation)
}

func TestWheelStopCancelsCompletion(t *testing.T) {
	score := NewScore(zap.NewNop())
	w := testWheel(t, 30*time.Millisecond, 1, score)
	rec := newSpinRecorder()

	_, ok := w.Spin(context.Background(), rec)
	require.True(t, ok)
	w.Stop()

	select {
	case <-rec.settled:
		t.Fatal("settle callback fired after Stop")
	case <-time.After(150 * time.Millisecond):
	}

	assert.False(t, w.Spinning())
	assert.Zero(t, score.Value())
}

func TestWheelContextCancelSuppressesCompletion(t *testing.T) {
	w := testWheel(t, 30*time.Millisecond, 0, nil)
	rec := newSpinRecorder()

	ctx, cancel := context.WithCancel(context.Background())
	_, ok := w.Spin(ctx, rec)
	require.True(t, ok)
	cancel()

	select {
	case <-rec.settled:
		t.Fatal("settle callback fired after context cancel")
	case <-time.After(150 * time.Millisecond):
	}

	// A canceled spin unlocks the wheel like Stop does.
	assert.False(t, w.Spinning())
	_, ok = w.Spin(context.Background(), nil)
	assert.True(t, ok)
}

func TestNewWheelValidation(t *testing.T) {
	cfg := DefaultWheelConfig()
	cfg.MinSpins, cfg.MaxSpins = 9, 5
	_, err := NewWheel(cfg, nil, zap.NewNop())
	assert.ErrorIs(t, err, ErrInvalidWheel)

	cfg = DefaultWheelConfig()
	cfg.Categories = nil
	_, err = NewWheel(cfg, nil, zap.NewNop())
	assert.ErrorIs(t, err, ErrInvalidWheel)
}
