// Package terminal renders the game in an interactive terminal session.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/aliskhannn/spin-quiz/internal/domain/entities"
	"github.com/aliskhannn/spin-quiz/internal/service"
)

var errQuit = errors.New("quit")

type HandlerFunc func(ctx context.Context) error

// Screen is a line-oriented terminal front-end for the game.
type Screen struct {
	game   *service.WheelGame
	drill  *service.TranslationDrill
	score  *service.Score
	logger *zap.Logger
	colors palette

	lines <-chan string

	mu  sync.Mutex // guards out, frames arrive from the animation goroutine
	out io.Writer
}

// NewScreen creates a new Screen reading commands from in.
func NewScreen(
	in io.Reader,
	out io.Writer,
	colors bool,
	game *service.WheelGame,
	drill *service.TranslationDrill,
	score *service.Score,
	logger *zap.Logger,
) *Screen {
	return &Screen{
		game:   game,
		drill:  drill,
		score:  score,
		logger: logger,
		colors: newPalette(colors),
		lines:  readLines(in),
		out:    out,
	}
}

// readLines feeds input lines into a channel, closed on EOF.
func readLines(in io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			ch <- sc.Text()
		}
	}()
	return ch
}

// Run handles commands until quit, end of input or ctx cancellation.
// Any running spin is stopped before Run returns.
func (s *Screen) Run(ctx context.Context) error {
	s.logger.Info("terminal screen started")
	defer s.logger.Info("terminal screen stopped")
	defer s.game.Close()

	s.println(s.colors.bold + "🎯 Spin & Learn" + s.colors.reset)
	s.println(msgWelcome)
	s.println(msgHelp)

	for {
		s.printScore()
		s.print("> ")

		line, err := s.readLine(ctx)
		if err != nil {
			return ignoreQuit(err)
		}

		var handler HandlerFunc
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			continue
		case "spin", "s":
			handler = s.spinHandler
		case "translate", "t":
			handler = s.translateHandler
		case "score":
			continue
		case "reset":
			s.score.Reset()
			s.println("Score reset.")
			continue
		case "help", "h":
			s.println(msgHelp)
			continue
		case "quit", "q", "exit":
			return nil
		default:
			s.println(msgUnknownCommand)
			continue
		}

		if err := s.withErrorHandling(handler)(ctx); err != nil {
			return ignoreQuit(err)
		}
	}
}

// spinHandler plays one wheel round.
func (s *Screen) spinHandler(ctx context.Context) error {
	listener := newSpinView(s)

	if _, ok := s.game.Spin(ctx, listener); !ok {
		s.println("The wheel is already spinning.")
		return nil
	}

	var rv reveal
	select {
	case <-ctx.Done():
		return ctx.Err()
	case rv = <-listener.revealed:
	}
	s.println("")

	defer s.game.PlayAgain()

	if rv.question == nil {
		s.println(fmt.Sprintf("%s: %s", rv.outcome.Category, msgNoQuestion))
		return nil
	}

	s.print(questionText(s.colors, rv.outcome.Category, rv.question))

	for {
		s.print(msgPickOption)
		line, err := s.readLine(ctx)
		if err != nil {
			return err
		}

		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			s.println(msgInvalidOption)
			continue
		}

		res, _, err := s.game.AnswerIndex(n - 1)
		if errors.Is(err, service.ErrInvalidOption) {
			s.println(msgInvalidOption)
			continue
		}
		if err != nil {
			return err
		}

		s.print(answerText(s.colors, res))
		return nil
	}
}

// translateHandler runs the translation practice until the player types menu.
func (s *Screen) translateHandler(ctx context.Context) error {
	for {
		pos, total := s.drill.Progress()
		s.print(phraseText(s.colors, pos, total, s.drill.Current()))

		for {
			s.print(msgTypeTranslation)
			line, err := s.readLine(ctx)
			if err != nil {
				return err
			}
			if strings.TrimSpace(line) == "menu" {
				return nil
			}

			fb, err := s.drill.Check(line)
			if errors.Is(err, service.ErrEmptyTranslation) {
				s.println(msgEmptyTranslation)
				continue
			}
			if err != nil && !errors.Is(err, service.ErrAlreadyChecked) {
				return err
			}

			s.print(feedbackText(s.colors, fb))
			break
		}

		s.printScore()
		s.print(nextPrompt(s.drill.IsLast()))
		line, err := s.readLine(ctx)
		if err != nil {
			return err
		}

		s.drill.Next()
		if strings.TrimSpace(line) == "menu" {
			return nil
		}
	}
}

func (s *Screen) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context) error {
		err := fn(ctx)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, errQuit), errors.Is(err, context.Canceled), errors.Is(err, io.EOF):
			return err
		default:
			s.logger.Error("handle error", zap.Error(err))
			s.println(msgInternalError)
			return nil
		}
	}
}

func (s *Screen) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-s.lines:
		if !ok {
			return "", io.EOF
		}
		if strings.TrimSpace(line) == "quit" {
			return "", errQuit
		}
		return line, nil
	}
}

func (s *Screen) printScore() {
	s.println(fmt.Sprintf("%sScore: %d%s", s.colors.blue, s.score.Value(), s.colors.reset))
}

func (s *Screen) print(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.WriteString(s.out, text); err != nil {
		s.logger.Debug("write failed", zap.Error(err))
	}
}

func (s *Screen) println(text string) {
	s.print(text + "\n")
}

func ignoreQuit(err error) error {
	if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

type reveal struct {
	outcome  entities.SpinOutcome
	question *entities.QuizQuestion
}

// spinView draws frames and hands the revealed round back to the screen.
type spinView struct {
	screen   *Screen
	cats     []entities.Category
	revealed chan reveal
}

func newSpinView(s *Screen) *spinView {
	return &spinView{
		screen:   s,
		cats:     s.game.Wheel().Categories(),
		revealed: make(chan reveal, 1),
	}
}

func (v *spinView) OnFrame(angle float64) {
	v.screen.print(wheelLine(v.screen.colors, v.cats, angle))
}

func (v *spinView) OnRevealed(outcome entities.SpinOutcome, q *entities.QuizQuestion) {
	v.revealed <- reveal{outcome: outcome, question: q}
}
