package service

import (
	"context"

	"github.com/aliskhannn/spin-quiz/internal/domain/entities"
)

// QuestionRepository looks up quiz questions by category.
type QuestionRepository interface {
	FirstByCategory(ctx context.Context, c entities.Category) (*entities.QuizQuestion, error)
}

// PhraseRepository provides the translation phrases.
type PhraseRepository interface {
	Phrases(ctx context.Context) ([]entities.TranslationPhrase, error)
}

// RoundListener is notified about the progress of a wheel round.
// Calls come from the animation goroutine.
type RoundListener interface {
	// OnFrame reports the visible wheel angle while it spins.
	OnFrame(angle float64)
	// OnRevealed reports the settled category. question is nil when the
	// category has no question.
	OnRevealed(outcome entities.SpinOutcome, question *entities.QuizQuestion)
}
