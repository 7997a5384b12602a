package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/spin-quiz/internal/domain/entities"
	"github.com/aliskhannn/spin-quiz/internal/infra/postgres"
)

// TxRunner runs a function inside a read-only transaction.
type TxRunner interface {
	WithinReadOnlyTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

// CatalogSource reads the reference data from PostgreSQL.
type CatalogSource struct {
	tx TxRunner
}

// NewCatalogSource creates a new CatalogSource.
func NewCatalogSource(tx TxRunner) *CatalogSource {
	return &CatalogSource{tx: tx}
}

// Load reads all questions and phrases in one snapshot and validates them.
func (s *CatalogSource) Load(ctx context.Context) (*entities.Catalog, error) {
	var c entities.Catalog

	err := s.tx.WithinReadOnlyTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		questions, err := loadQuestions(ctx, tx)
		if err != nil {
			return err
		}

		phrases, err := loadPhrases(ctx, tx)
		if err != nil {
			return err
		}

		c.Questions = questions
		c.Phrases = phrases
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}

	return &c, nil
}

func loadQuestions(ctx context.Context, db postgres.DBTX) ([]entities.QuizQuestion, error) {
	query := `
		SELECT id, category, question, options, answer, explanation
		FROM quiz_questions
		ORDER BY position, id
	`

	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query quiz questions: %w", err)
	}
	defer rows.Close()

	var out []entities.QuizQuestion
	for rows.Next() {
		var (
			q        entities.QuizQuestion
			category string
		)
		if err := rows.Scan(&q.ID, &category, &q.Question, &q.Options, &q.Answer, &q.Explanation); err != nil {
			return nil, fmt.Errorf("scan quiz question: %w", err)
		}

		q.Category, err = entities.ParseCategory(category)
		if err != nil {
			return nil, fmt.Errorf("quiz question %s: %w", q.ID, err)
		}

		out = append(out, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quiz questions: %w", err)
	}

	return out, nil
}

func loadPhrases(ctx context.Context, db postgres.DBTX) ([]entities.TranslationPhrase, error) {
	query := `
		SELECT id, sentence, expected
		FROM translation_phrases
		ORDER BY position, id
	`

	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query translation phrases: %w", err)
	}

	phrases, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.TranslationPhrase, error) {
		var p entities.TranslationPhrase
		err := row.Scan(&p.ID, &p.Sentence, &p.Expected)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect translation phrases: %w", err)
	}

	return phrases, nil
}
