package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/aliskhannn/spin-quiz/internal/domain/entities"
)

var (
	ErrEmptyTranslation = errors.New("translation is empty")
	ErrAlreadyChecked   = errors.New("translation already checked")
	ErrNoPhrases        = errors.New("no phrases available")
)

// TranslationDrill cycles through the translation phrases:
// Showing(i) -> Checked -> Showing(i+1 mod N).
type TranslationDrill struct {
	phrases   []entities.TranslationPhrase
	validator *AnswerValidator
	score     *Score
	logger    *zap.Logger

	mu       sync.Mutex
	index    int
	feedback *entities.TranslationFeedback
}

// NewTranslationDrill loads the phrases and starts at the first one.
func NewTranslationDrill(
	ctx context.Context,
	repo PhraseRepository,
	validator *AnswerValidator,
	score *Score,
	logger *zap.Logger,
) (*TranslationDrill, error) {
	phrases, err := repo.Phrases(ctx)
	if err != nil {
		return nil, fmt.Errorf("get phrases: %w", err)
	}
	if len(phrases) == 0 {
		return nil, ErrNoPhrases
	}

	return &TranslationDrill{
		phrases:   phrases,
		validator: validator,
		score:     score,
		logger:    logger,
	}, nil
}

// Current returns the phrase being shown.
func (d *TranslationDrill) Current() entities.TranslationPhrase {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.phrases[d.index]
}

// Index returns the position of the current phrase.
func (d *TranslationDrill) Index() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.index
}

// Progress returns the 1-based position of the current phrase and the total.
func (d *TranslationDrill) Progress() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.index + 1, len(d.phrases)
}

// IsLast reports whether the current phrase is the last one; the next
// call to Next starts over.
func (d *TranslationDrill) IsLast() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.index == len(d.phrases)-1
}

// Feedback returns the result of the last check of the current phrase.
func (d *TranslationDrill) Feedback() (entities.TranslationFeedback, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.feedback == nil {
		return entities.TranslationFeedback{}, false
	}
	return *d.feedback, true
}

// Check evaluates a translation of the current phrase. Blank input is
// rejected without evaluation, and a phrase can be checked only once.
func (d *TranslationDrill) Check(text string) (entities.TranslationFeedback, error) {
	if strings.TrimSpace(text) == "" {
		return entities.TranslationFeedback{}, ErrEmptyTranslation
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.feedback != nil {
		return *d.feedback, ErrAlreadyChecked
	}

	phrase := d.phrases[d.index]
	correct := d.validator.Validate(text, phrase.Expected)

	fb := entities.TranslationFeedback{
		Input:    text,
		Correct:  correct,
		Expected: append([]string(nil), phrase.Expected...),
	}
	d.feedback = &fb

	if correct {
		d.score.Increment(1)
	}

	d.logger.Info("translation checked",
		zap.String("phrase_id", phrase.ID),
		zap.Bool("correct", correct),
	)

	return fb, nil
}

// Next moves to the following phrase, wrapping around after the last one,
// and clears the feedback.
func (d *TranslationDrill) Next() entities.TranslationPhrase {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.index = (d.index + 1) % len(d.phrases)
	d.feedback = nil

	return d.phrases[d.index]
}

// Restart goes back to the first phrase.
func (d *TranslationDrill) Restart() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.index = 0
	d.feedback = nil
}
