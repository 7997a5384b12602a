// Package entities contains domain entities used across the application.
package entities

import (
	"errors"
	"fmt"
)

var ErrUnknownCategory = errors.New("unknown category")

// Category is one of the fixed quiz topics. It labels a wheel segment and
// selects the question shown after a spin.
type Category string

const (
	CategoryGrammar    Category = "Grammar"
	CategoryVocabulary Category = "Vocabulary"
	CategoryCulture    Category = "Culture"
	CategoryIdioms     Category = "Idioms"
	CategoryListening  Category = "Listening"
	CategoryReading    Category = "Reading"
)

// categories is the wheel order: index 0 sits under the pointer at angle 0.
var categories = [...]Category{
	CategoryGrammar,
	CategoryVocabulary,
	CategoryCulture,
	CategoryIdioms,
	CategoryListening,
	CategoryReading,
}

// Categories returns the categories in wheel order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories[:])
	return out
}

// ParseCategory converts a label into a Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Valid reports whether c belongs to the fixed category set.
func (c Category) Valid() bool {
	_, err := ParseCategory(string(c))
	return err == nil
}

func (c Category) String() string {
	return string(c)
}
