package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/spin-quiz/internal/domain/entities"
	"github.com/aliskhannn/spin-quiz/internal/repository"
)

type roundRecorder struct {
	revealed chan *entities.QuizQuestion
}

func (r *roundRecorder) OnFrame(float64) {}

func (r *roundRecorder) OnRevealed(_ entities.SpinOutcome, q *entities.QuizQuestion) {
	r.revealed <- q
}

func newTestGame(t *testing.T, catalog *entities.Catalog, duration time.Duration) (*WheelGame, *Score) {
	t.Helper()

	if catalog == nil {
		var err error
		catalog, err = repository.DefaultCatalog()
		require.NoError(t, err)
	}
	repo, err := repository.NewCatalogRepository(catalog)
	require.NoError(t, err)

	score := NewScore(zap.NewNop())
	w := testWheel(t, duration, 0, score)
	g := NewWheelGame(w, repo, score, zap.NewNop())
	t.Cleanup(g.Close)

	return g, score
}

func spinAndReveal(t *testing.T, g *WheelGame) (entities.SpinOutcome, *entities.QuizQuestion) {
	t.Helper()

	rec := &roundRecorder{revealed: make(chan *entities.QuizQuestion, 1)}
	o, ok := g.Spin(context.Background(), rec)
	require.True(t, ok)

	select {
	case q := <-rec.revealed:
		return o, q
	case <-time.After(2 * time.Second):
		t.Fatal("round was not revealed")
	}
	return o, nil
}

func TestCompareAnswer(t *testing.T) {
	q := &entities.QuizQuestion{Options: []string{"Big Ben", "Tower Clock"}, Answer: "Big Ben"}
	assert.True(t, CompareAnswer("Big Ben", q))
	assert.False(t, CompareAnswer("Tower Clock", q))
	assert.False(t, CompareAnswer("big ben", q))
	assert.False(t, CompareAnswer("Big Ben", nil))
}

func TestWheelGameRound(t *testing.T) {
	g, score := newTestGame(t, nil, 10*time.Millisecond)
	assert.Equal(t, entities.RoundIdle, g.State())

	o, q := spinAndReveal(t, g)
	require.NotNil(t, q)
	assert.Equal(t, o.Category, q.Category)
	assert.Equal(t, entities.RoundRevealed, g.State())

	res, ok, err := g.Answer(q.Answer)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, res.Correct)
	assert.Equal(t, q.Explanation, res.Explanation)
	assert.Equal(t, entities.RoundAnswered, g.State())
	assert.Equal(t, 1, score.Value())

	score.Reset()
	assert.Zero(t, score.Value())

	require.True(t, g.PlayAgain())
	assert.Equal(t, entities.RoundIdle, g.State())
	assert.Nil(t, g.Question())
}

func TestWheelGameAnswerIsSingleShot(t *testing.T) {
	g, score := newTestGame(t, nil, 5*time.Millisecond)
	_, q := spinAndReveal(t, g)
	require.NotNil(t, q)

	wrong := 0
	if q.AnswerIndex() == 0 {
		wrong = 1
	}

	first, ok, err := g.AnswerIndex(wrong)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, first.Correct)

	// A later click on the right option changes nothing.
	second, ok, err := g.Answer(q.Answer)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, first, second)
	assert.Zero(t, score.Value())
}

func TestWheelGameRejectsInvalidAnswers(t *testing.T) {
	g, _ := newTestGame(t, nil, 5*time.Millisecond)

	_, _, err := g.Answer("Expensive")
	assert.ErrorIs(t, err, ErrNotRevealed)

	_, q := spinAndReveal(t, g)
	require.NotNil(t, q)

	_, _, err = g.Answer("not an option")
	assert.ErrorIs(t, err, ErrInvalidOption)

	_, _, err = g.AnswerIndex(len(q.Options))
	assert.ErrorIs(t, err, ErrInvalidOption)

	assert.Equal(t, entities.RoundRevealed, g.State())
}

func TestWheelGameSpinIgnoredWhileSpinning(t *testing.T) {
	g, _ := newTestGame(t, nil, time.Hour)

	first, ok := g.Spin(context.Background(), nil)
	require.True(t, ok)
	assert.Equal(t, entities.RoundSpinning, g.State())
	assert.False(t, g.PlayAgain())

	second, ok := g.Spin(context.Background(), nil)
	assert.False(t, ok)
	assert.Equal(t, first, second)

	current, ok := g.Outcome()
	require.True(t, ok)
	assert.Equal(t, first, current)
}

func TestWheelGameMissingQuestion(t *testing.T) {
	catalog := &entities.Catalog{
		Phrases: []entities.TranslationPhrase{{ID: "1", Sentence: "Hi", Expected: []string{"Oi"}}},
	}
	g, _ := newTestGame(t, catalog, 5*time.Millisecond)

	_, q := spinAndReveal(t, g)
	assert.Nil(t, q)
	assert.Equal(t, entities.RoundRevealed, g.State())

	_, _, err := g.AnswerIndex(0)
	assert.ErrorIs(t, err, ErrNotRevealed)

	assert.True(t, g.PlayAgain())
}

func TestWheelGameCloseCancelsRound(t *testing.T) {
	g, _ := newTestGame(t, nil, 30*time.Millisecond)
	rec := &roundRecorder{revealed: make(chan *entities.QuizQuestion, 1)}

	_, ok := g.Spin(context.Background(), rec)
	require.True(t, ok)
	g.Close()

	select {
	case <-rec.revealed:
		t.Fatal("reveal fired after Close")
	case <-time.After(150 * time.Millisecond):
	}

	assert.Equal(t, entities.RoundIdle, g.State())
}

func TestWheelGameContextCancelReturnsToIdle(t *testing.T) {
	g, _ := newTestGame(t, nil, 100*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	rec := &roundRecorder{revealed: make(chan *entities.QuizQuestion, 1)}
	_, ok := g.Spin(ctx, rec)
	require.True(t, ok)
	require.Equal(t, entities.RoundSpinning, g.State())

	cancel()

	require.Eventually(t, func() bool {
		return g.State() == entities.RoundIdle
	}, time.Second, 5*time.Millisecond)
	assert.False(t, g.Wheel().Spinning())
	_, hasOutcome := g.Outcome()
	assert.False(t, hasOutcome)

	select {
	case <-rec.revealed:
		t.Fatal("canceled round was revealed")
	case <-time.After(200 * time.Millisecond):
	}

	// The same game plays the next round.
	_, q := spinAndReveal(t, g)
	assert.NotNil(t, q)
	assert.Equal(t, entities.RoundRevealed, g.State())
}
