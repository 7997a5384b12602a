package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/spin-quiz/internal/domain/entities"
	"github.com/aliskhannn/spin-quiz/internal/repository"
)

var (
	ErrNotRevealed   = errors.New("no question is waiting for an answer")
	ErrInvalidOption = errors.New("invalid option")
)

// CompareAnswer reports whether the selected option is the canonical answer.
func CompareAnswer(selected string, q *entities.QuizQuestion) bool {
	if q == nil {
		return false
	}
	return selected == q.Answer
}

// WheelGame runs wheel rounds: Idle -> Spinning -> Revealed -> Answered -> Idle.
type WheelGame struct {
	wheel     *Wheel
	questions QuestionRepository
	score     *Score
	logger    *zap.Logger

	mu       sync.Mutex
	state    entities.RoundState
	roundID  uuid.UUID
	outcome  *entities.SpinOutcome
	question *entities.QuizQuestion
	result   *entities.AnswerResult
}

// NewWheelGame creates a new WheelGame.
func NewWheelGame(
	wheel *Wheel,
	questions QuestionRepository,
	score *Score,
	logger *zap.Logger,
) *WheelGame {
	return &WheelGame{
		wheel:     wheel,
		questions: questions,
		score:     score,
		logger:    logger,
		state:     entities.RoundIdle,
	}
}

// Spin starts a new round. It only has an effect when the game is idle;
// otherwise it returns false and nothing changes.
func (g *WheelGame) Spin(ctx context.Context, listener RoundListener) (entities.SpinOutcome, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != entities.RoundIdle {
		var prev entities.SpinOutcome
		if g.outcome != nil {
			prev = *g.outcome
		}
		g.logger.Debug("spin ignored", zap.Stringer("state", g.state))
		return prev, false
	}

	roundID := uuid.New()
	outcome, ok := g.wheel.Spin(ctx, &roundRelay{
		game:     g,
		ctx:      ctx,
		roundID:  roundID,
		listener: listener,
	})
	if !ok {
		return outcome, false
	}

	g.state = entities.RoundSpinning
	g.roundID = roundID
	g.outcome = &outcome
	g.question = nil
	g.result = nil

	g.logger.Info("round started",
		zap.String("round_id", roundID.String()),
		zap.String("category", outcome.Category.String()),
	)

	return outcome, true
}

// reveal moves a spinning round to Revealed once the wheel settles.
func (g *WheelGame) reveal(ctx context.Context, roundID uuid.UUID, outcome entities.SpinOutcome) (*entities.QuizQuestion, bool) {
	// Lookup before taking the lock, the repository may block.
	q, err := g.questions.FirstByCategory(ctx, outcome.Category)
	if err != nil {
		if !errors.Is(err, repository.ErrQuestionNotFound) {
			g.logger.Error("failed to look up question",
				zap.String("round_id", roundID.String()),
				zap.Error(err),
			)
		}
		q = nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != entities.RoundSpinning || g.roundID != roundID {
		return nil, false
	}

	g.state = entities.RoundRevealed
	g.question = q

	g.logger.Info("category revealed",
		zap.String("round_id", roundID.String()),
		zap.String("category", outcome.Category.String()),
		zap.Bool("has_question", q != nil),
	)

	return q, true
}

// Answer locks the answer of the revealed question. Only the first call of
// a round counts: later calls return the locked result and false.
func (g *WheelGame) Answer(option string) (entities.AnswerResult, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.state {
	case entities.RoundAnswered:
		return *g.result, false, nil
	case entities.RoundRevealed:
	default:
		return entities.AnswerResult{}, false, ErrNotRevealed
	}

	if g.question == nil {
		return entities.AnswerResult{}, false, ErrNotRevealed
	}

	if !containsOption(g.question.Options, option) {
		return entities.AnswerResult{}, false, fmt.Errorf("%w: %q", ErrInvalidOption, option)
	}

	correct := CompareAnswer(option, g.question)
	result := entities.AnswerResult{
		Selected:    option,
		Correct:     correct,
		Answer:      g.question.Answer,
		Explanation: g.question.Explanation,
	}

	g.state = entities.RoundAnswered
	g.result = &result

	if correct {
		g.score.Increment(1)
	}

	g.logger.Info("question answered",
		zap.String("round_id", g.roundID.String()),
		zap.String("question_id", g.question.ID),
		zap.Bool("correct", correct),
	)

	return result, true, nil
}

// AnswerIndex answers with the option at index i of the revealed question.
func (g *WheelGame) AnswerIndex(i int) (entities.AnswerResult, bool, error) {
	g.mu.Lock()
	q := g.question
	g.mu.Unlock()

	if q == nil {
		return g.Answer("")
	}
	if i < 0 || i >= len(q.Options) {
		return entities.AnswerResult{}, false, fmt.Errorf("%w: index %d", ErrInvalidOption, i)
	}

	return g.Answer(q.Options[i])
}

// PlayAgain closes the current round and returns to Idle. It is a no-op
// while the wheel is spinning.
func (g *WheelGame) PlayAgain() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == entities.RoundSpinning {
		return false
	}

	g.state = entities.RoundIdle
	g.outcome = nil
	g.question = nil
	g.result = nil

	return true
}

// Close stops a running animation. The round goes back to Idle and no
// listener is called for the stopped spin.
func (g *WheelGame) Close() {
	g.wheel.Stop()

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == entities.RoundSpinning {
		g.state = entities.RoundIdle
		g.outcome = nil
		g.logger.Debug("round canceled", zap.String("round_id", g.roundID.String()))
	}
}

// abandon returns a round whose spin was canceled to Idle.
func (g *WheelGame) abandon(roundID uuid.UUID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != entities.RoundSpinning || g.roundID != roundID {
		return
	}

	g.state = entities.RoundIdle
	g.outcome = nil
	g.logger.Debug("round canceled", zap.String("round_id", roundID.String()))
}

// State returns the current round state.
func (g *WheelGame) State() entities.RoundState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Question returns the revealed question, or nil.
func (g *WheelGame) Question() *entities.QuizQuestion {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.question
}

// Outcome returns the outcome of the current round.
func (g *WheelGame) Outcome() (entities.SpinOutcome, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.outcome == nil {
		return entities.SpinOutcome{}, false
	}
	return *g.outcome, true
}

// Wheel returns the underlying wheel.
func (g *WheelGame) Wheel() *Wheel {
	return g.wheel
}

func containsOption(options []string, option string) bool {
	for _, o := range options {
		if o == option {
			return true
		}
	}
	return false
}

// roundRelay forwards wheel events of one round to the game and the renderer.
type roundRelay struct {
	game     *WheelGame
	ctx      context.Context
	roundID  uuid.UUID
	listener RoundListener
}

func (r *roundRelay) OnFrame(angle float64) {
	if r.listener != nil {
		r.listener.OnFrame(angle)
	}
}

func (r *roundRelay) OnCanceled(entities.SpinOutcome) {
	r.game.abandon(r.roundID)
}

func (r *roundRelay) OnSettled(outcome entities.SpinOutcome) {
	q, ok := r.game.reveal(context.WithoutCancel(r.ctx), r.roundID, outcome)
	if !ok {
		return
	}
	if r.listener != nil {
		r.listener.OnRevealed(outcome, q)
	}
}
