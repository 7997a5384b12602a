package entities

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidQuestion = errors.New("invalid quiz question")
	ErrInvalidPhrase   = errors.New("invalid translation phrase")
	ErrDuplicateID     = errors.New("duplicate id")
)

// QuizQuestion is a multiple-choice question shown after the wheel settles.
type QuizQuestion struct {
	ID          string   `json:"id"`          // unique question ID
	Category    Category `json:"category"`    // wheel category the question belongs to
	Question    string   `json:"question"`    // question text
	Options     []string `json:"options"`     // answer options in display order
	Answer      string   `json:"answer"`      // canonical answer, one of Options
	Explanation string   `json:"explanation"` // shown after the question is answered
}

// Validate checks the question invariants.
func (q *QuizQuestion) Validate() error {
	switch {
	case strings.TrimSpace(q.ID) == "":
		return fmt.Errorf("%w: empty id", ErrInvalidQuestion)
	case !q.Category.Valid():
		return fmt.Errorf("%w %s: %w", ErrInvalidQuestion, q.ID, ErrUnknownCategory)
	case strings.TrimSpace(q.Question) == "":
		return fmt.Errorf("%w %s: empty question text", ErrInvalidQuestion, q.ID)
	case len(q.Options) < 2:
		return fmt.Errorf("%w %s: need at least 2 options, got %d", ErrInvalidQuestion, q.ID, len(q.Options))
	case q.AnswerIndex() < 0:
		return fmt.Errorf("%w %s: answer %q is not an option", ErrInvalidQuestion, q.ID, q.Answer)
	}
	return nil
}

// AnswerIndex returns the position of the canonical answer in Options, or -1.
func (q *QuizQuestion) AnswerIndex() int {
	for i, opt := range q.Options {
		if opt == q.Answer {
			return i
		}
	}
	return -1
}

// TranslationPhrase is an English sentence with its accepted Portuguese translations.
type TranslationPhrase struct {
	ID       string   `json:"id"`
	Sentence string   `json:"sentence"`
	Expected []string `json:"expected"`
}

// Validate checks the phrase invariants.
func (p *TranslationPhrase) Validate() error {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return fmt.Errorf("%w: empty id", ErrInvalidPhrase)
	case strings.TrimSpace(p.Sentence) == "":
		return fmt.Errorf("%w %s: empty sentence", ErrInvalidPhrase, p.ID)
	case len(p.Expected) == 0:
		return fmt.Errorf("%w %s: no accepted translations", ErrInvalidPhrase, p.ID)
	}
	for _, e := range p.Expected {
		if strings.TrimSpace(e) == "" {
			return fmt.Errorf("%w %s: blank accepted translation", ErrInvalidPhrase, p.ID)
		}
	}
	return nil
}

// Catalog is the immutable reference data of the game.
type Catalog struct {
	Questions []QuizQuestion      `json:"questions"`
	Phrases   []TranslationPhrase `json:"phrases"`
}

// Validate validates every record and rejects duplicate IDs.
func (c *Catalog) Validate() error {
	seen := make(map[string]struct{}, len(c.Questions))
	for i := range c.Questions {
		q := &c.Questions[i]
		if err := q.Validate(); err != nil {
			return err
		}
		if _, ok := seen[q.ID]; ok {
			return fmt.Errorf("question %s: %w", q.ID, ErrDuplicateID)
		}
		seen[q.ID] = struct{}{}
	}

	seen = make(map[string]struct{}, len(c.Phrases))
	for i := range c.Phrases {
		p := &c.Phrases[i]
		if err := p.Validate(); err != nil {
			return err
		}
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("phrase %s: %w", p.ID, ErrDuplicateID)
		}
		seen[p.ID] = struct{}{}
	}

	if len(c.Phrases) == 0 {
		return fmt.Errorf("%w: catalog has no phrases", ErrInvalidPhrase)
	}

	return nil
}
