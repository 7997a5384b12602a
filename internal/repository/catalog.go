package repository

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aliskhannn/spin-quiz/internal/domain/entities"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrEmptyCatalog     = errors.New("catalog is empty")
)

//go:embed data/catalog.json
var defaultCatalog []byte

// DefaultCatalog returns the built-in question and phrase set.
func DefaultCatalog() (*entities.Catalog, error) {
	return parseCatalog(defaultCatalog)
}

// LoadCatalogFile reads and validates a catalog from a JSON file.
func LoadCatalogFile(path string) (*entities.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	return parseCatalog(data)
}

func parseCatalog(data []byte) (*entities.Catalog, error) {
	var c entities.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog JSON: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// CatalogRepository provides read-only access to the reference data.
// The data is loaded once and kept in memory.
type CatalogRepository struct {
	questions []entities.QuizQuestion
	phrases   []entities.TranslationPhrase
}

// NewCatalogRepository creates a repository over a validated catalog.
func NewCatalogRepository(c *entities.Catalog) (*CatalogRepository, error) {
	if c == nil {
		return nil, ErrEmptyCatalog
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &CatalogRepository{
		questions: append([]entities.QuizQuestion(nil), c.Questions...),
		phrases:   append([]entities.TranslationPhrase(nil), c.Phrases...),
	}, nil
}

// FirstByCategory returns the first question of the category.
// If there is none, it returns ErrQuestionNotFound.
func (r *CatalogRepository) FirstByCategory(_ context.Context, c entities.Category) (*entities.QuizQuestion, error) {
	for i := range r.questions {
		if r.questions[i].Category == c {
			q := r.questions[i]
			return &q, nil
		}
	}

	return nil, fmt.Errorf("%w: category %s", ErrQuestionNotFound, c)
}

// Phrases returns all translation phrases.
func (r *CatalogRepository) Phrases(_ context.Context) ([]entities.TranslationPhrase, error) {
	return append([]entities.TranslationPhrase(nil), r.phrases...), nil
}
