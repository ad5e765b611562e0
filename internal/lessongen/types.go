// Package lessongen drafts new catalog lessons with an LLM.
package lessongen

import (
	"errors"

	"github.com/abhisek/lessonhub/internal/catalog"
)

// ErrInvalidRequest is returned when a DraftRequest is missing a field or
// names an unknown tool, category or difficulty.
var ErrInvalidRequest = errors.New("invalid draft request")

// DraftRequest describes the lesson to draft.
type DraftRequest struct {
	// ID overrides the generated lesson id. Empty means a slug of Title.
	ID         string
	Tool       string
	Title      string
	Category   catalog.Category
	Difficulty catalog.Difficulty
	// Audience is free-form guidance about who the lesson is for.
	Audience string
}

// Config holds drafting settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns defaults for lesson drafting.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.4,
	}
}
