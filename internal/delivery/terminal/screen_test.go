package terminal

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/spin-quiz/internal/domain/entities"
	"github.com/aliskhannn/spin-quiz/internal/repository"
	"github.com/aliskhannn/spin-quiz/internal/service"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestScreen(t *testing.T, input string) (*Screen, *syncBuffer, *service.Score) {
	t.Helper()

	catalog, err := repository.DefaultCatalog()
	require.NoError(t, err)
	repo, err := repository.NewCatalogRepository(catalog)
	require.NoError(t, err)

	logger := zap.NewNop()
	score := service.NewScore(logger)

	cfg := service.DefaultWheelConfig()
	cfg.Duration = 5 * time.Millisecond
	cfg.FrameInterval = time.Millisecond
	cfg.Rand = rand.New(rand.NewSource(7))
	wheel, err := service.NewWheel(cfg, score, logger)
	require.NoError(t, err)

	game := service.NewWheelGame(wheel, repo, score, logger)
	drill, err := service.NewTranslationDrill(context.Background(), repo, service.NewAnswerValidator(), score, logger)
	require.NoError(t, err)

	out := &syncBuffer{}
	return NewScreen(strings.NewReader(input), out, false, game, drill, score, logger), out, score
}

func runScreen(t *testing.T, s *Screen) {
	t.Helper()

	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("screen did not finish")
	}
}

func TestScreenSpinRound(t *testing.T) {
	s, out, _ := newTestScreen(t, "spin\n9\n1\nquit\n")
	runScreen(t, s)

	text := out.String()
	assert.Contains(t, text, "🎡")
	assert.Contains(t, text, msgInvalidOption)
	assert.True(t, strings.Contains(text, "Correct!") || strings.Contains(text, "Try Again!"), text)
	assert.Equal(t, entities.RoundIdle, s.game.State())
}

func TestScreenTranslation(t *testing.T) {
	input := strings.Join([]string{
		"t",
		"   ",
		"ELA FOI AO MERCADO ONTEM",
		"",
		"Eu estudo inglês",
		"menu",
		"quit",
	}, "\n") + "\n"

	s, out, score := newTestScreen(t, input)
	runScreen(t, s)

	text := out.String()
	assert.Contains(t, text, "Phrase 1 of 5")
	assert.Contains(t, text, "Phrase 2 of 5")
	assert.Contains(t, text, msgEmptyTranslation)
	assert.Contains(t, text, "Great job!")
	assert.Contains(t, text, "Tenho estudado inglês por cinco anos.")
	assert.Equal(t, 1, score.Value())
}

func TestScreenResetAndUnknown(t *testing.T) {
	s, out, score := newTestScreen(t, "dance\nreset\nhelp\n")
	score.Increment(3)
	runScreen(t, s)

	text := out.String()
	assert.Contains(t, text, msgUnknownCommand)
	assert.Contains(t, text, "Score reset.")
	assert.Zero(t, score.Value())
}

func TestScreenStopsOnCancel(t *testing.T) {
	s, _, _ := newTestScreen(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Empty input ends the session either way; cancellation must not hang.
	done := make(chan struct{})
	go func() {
		_ = s.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("screen did not stop")
	}
}

func TestWheelLine(t *testing.T) {
	line := wheelLine(newPalette(false), entities.Categories(), 130)
	assert.Contains(t, line, "[Culture]")
	assert.Contains(t, line, "130.0°")
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[█████░░░░░]", progressBar(1, 2, 10))
	assert.Equal(t, "", progressBar(1, 0, 10))
}
