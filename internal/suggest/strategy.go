// Package suggest proposes a category for a free-text expense description.
// Suggestions are a best-effort hint: every failure collapses into "no
// suggestion" and is only visible in the logs.
package suggest

import "context"

// Strategy is one way of producing a suggestion.
type Strategy interface {
	// Suggest returns a label and true when the strategy has an answer.
	// An error means the strategy could not run; the adapter logs it and
	// moves on.
	Suggest(ctx context.Context, description string) (label string, ok bool, err error)

	// Name identifies the strategy in logs and results.
	Name() string
}

// Strategy names.
const (
	SourceRemote  = "remote"
	SourceKeyword = "keyword"
	SourceGemini  = "gemini"
)
