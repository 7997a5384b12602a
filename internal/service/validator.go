package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// AnswerValidator checks free-text translations against accepted variants.
// Matching is exact after normalization: no edit distance, no partial credit.
type AnswerValidator struct{}

// NewAnswerValidator creates a new AnswerValidator.
func NewAnswerValidator() *AnswerValidator {
	return &AnswerValidator{}
}

// Validate reports whether the user's text matches any accepted variant.
func (v *AnswerValidator) Validate(userText string, accepted []string) bool {
	user := Normalize(userText)

	for _, a := range accepted {
		if Normalize(a) == user {
			return true
		}
	}

	return false
}

// Normalize prepares a string for comparison: lower case, accents removed,
// surrounding whitespace and sentence punctuation trimmed.
func Normalize(s string) string {
	// Convert to lowercase
	s = strings.ToLower(s)

	// Decompose and drop combining marks: "ontém" -> "ontem".
	s = stripMarks(s)

	// Trim spaces and the sentence punctuation around them.
	s = strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || isEdgePunct(r)
	})

	return s
}

func stripMarks(s string) string {
	// The transformer is stateful, build a new chain per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// isEdgePunct reports sentence punctuation that may surround an answer.
func isEdgePunct(r rune) bool {
	switch r {
	case '.', '!', '?', ',', ';', ':', '…', '¡', '¿', '"', '\'', '«', '»':
		return true
	}
	return false
}
