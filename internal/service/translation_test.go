package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/spin-quiz/internal/domain/entities"
	"github.com/aliskhannn/spin-quiz/internal/repository"
)

type stubPhrases []entities.TranslationPhrase

func (s stubPhrases) Phrases(context.Context) ([]entities.TranslationPhrase, error) {
	return s, nil
}

func newTestDrill(t *testing.T) (*TranslationDrill, *Score) {
	t.Helper()

	catalog, err := repository.DefaultCatalog()
	require.NoError(t, err)
	repo, err := repository.NewCatalogRepository(catalog)
	require.NoError(t, err)

	score := NewScore(zap.NewNop())
	d, err := NewTranslationDrill(context.Background(), repo, NewAnswerValidator(), score, zap.NewNop())
	require.NoError(t, err)

	return d, score
}

func TestTranslationDrillCheck(t *testing.T) {
	d, score := newTestDrill(t)

	fb, err := d.Check("ela foi para o mercado ontém")
	require.NoError(t, err)
	assert.True(t, fb.Correct)
	assert.Equal(t, 1, score.Value())

	// Checked once per phrase.
	_, err = d.Check("Ela foi ao mercado ontem.")
	assert.ErrorIs(t, err, ErrAlreadyChecked)
	assert.Equal(t, 1, score.Value())

	d.Next()
	fb, err = d.Check("Eu estudo inglês")
	require.NoError(t, err)
	assert.False(t, fb.Correct)
	assert.Len(t, fb.Expected, 2)
	assert.Equal(t, 1, score.Value())
}

func TestTranslationDrillRejectsBlankInput(t *testing.T) {
	d, score := newTestDrill(t)

	_, err := d.Check("   \n")
	assert.ErrorIs(t, err, ErrEmptyTranslation)

	_, checked := d.Feedback()
	assert.False(t, checked)
	assert.Zero(t, score.Value())

	// The phrase can still be answered.
	_, err = d.Check("Ela foi ao mercado ontem.")
	assert.NoError(t, err)
}

func TestTranslationDrillWrapsAround(t *testing.T) {
	d, _ := newTestDrill(t)

	pos, total := d.Progress()
	assert.Equal(t, 1, pos)
	require.Equal(t, 5, total)

	for i := 1; i < total; i++ {
		d.Next()
		assert.Equal(t, i, d.Index())
	}
	assert.True(t, d.IsLast())

	_, err := d.Check("qualquer coisa")
	require.NoError(t, err)

	first := d.Next()
	assert.Equal(t, 0, d.Index())
	assert.Equal(t, "She went to the market yesterday.", first.Sentence)
	_, checked := d.Feedback()
	assert.False(t, checked)
}

func TestNewTranslationDrillNeedsPhrases(t *testing.T) {
	_, err := NewTranslationDrill(context.Background(), stubPhrases(nil), NewAnswerValidator(), NewScore(zap.NewNop()), zap.NewNop())
	assert.ErrorIs(t, err, ErrNoPhrases)
}

func TestTranslationDrillRestart(t *testing.T) {
	d, _ := newTestDrill(t)

	d.Next()
	d.Next()
	_, err := d.Check("algo")
	require.NoError(t, err)

	d.Restart()

	assert.Zero(t, d.Index())
	_, checked := d.Feedback()
	assert.False(t, checked)
}
