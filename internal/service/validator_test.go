package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Ela foi ao mercado ontem.", "ela foi ao mercado ontem"},
		{"  ONTÉM  ", "ontem"},
		{"Estou estudando inglês há cinco anos.", "estou estudando ingles ha cinco anos"},
		{"Você pode me ajudar?", "voce pode me ajudar"},
		{"ação", "acao"},
		{"e\u0301", "e"}, // already decomposed
		{"", ""},
		{"   ", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Normalize(tc.in), "input %q", tc.in)
	}
}

func TestNormalizeKeepsInnerText(t *testing.T) {
	// Only the edges are trimmed; inner spacing and punctuation stay.
	assert.Equal(t, "ola,  mundo", Normalize("Olá,  mundo!"))
}

func TestAnswerValidatorValidate(t *testing.T) {
	v := NewAnswerValidator()
	accepted := []string{"Ela foi ao mercado ontem.", "Ela foi para o mercado ontem."}

	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{"Exact", "Ela foi ao mercado ontem.", true},
		{"SecondVariant", "ela foi para o mercado ontem", true},
		{"UpperCase", "ELA FOI AO MERCADO ONTEM", true},
		{"AccentAndTrailingSpace", "ela foi ao mercado ontém  ", true},
		{"DifferentSentence", "Ela foi à praia ontem.", false},
		{"Typo", "Ela foi ao mercadu ontem.", false},
		{"Partial", "Ela foi ao mercado", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, v.Validate(tc.input, accepted))
		})
	}

	assert.False(t, v.Validate("anything", nil))
}

func TestAnswerValidatorInnerPunctuation(t *testing.T) {
	v := NewAnswerValidator()

	assert.False(t, v.Validate("ela, foi", []string{"ela foi"}))
	assert.False(t, v.Validate("ela foi", []string{"Ela, foi."}))
	assert.True(t, v.Validate("¿Ela, foi?", []string{"ela, foi"}))
}
