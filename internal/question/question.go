// Package question builds a structured question record from the user's text:
// the text itself, a keyword-based intent, and a pointer to any acquired
// source content.
package question

import (
	"strings"

	"edumuse/internal/acquire"
)

// Intent is a coarse classification of what the user is asking for.
type Intent string

const (
	IntentDefinition Intent = "definition"
	IntentFactLookup Intent = "fact_lookup"
)

// Question is the analyzed form of a query.
type Question struct {
	Text     string
	Intent   Intent
	Entities []string
	// Source points at the acquired content the question should be answered
	// against; nil when the input was a bare query.
	Source *acquire.Acquisition
}

// definitionMarkers trigger IntentDefinition on a case-insensitive
// substring match.
var definitionMarkers = []string{"define", "what is", "who is", "explain"}

// Analyze builds a Question. Pure function, no failure modes.
func Analyze(text string, source *acquire.Acquisition) Question {
	return Question{
		Text:     text,
		Intent:   inferIntent(text),
		Entities: extractEntities(text),
		Source:   source,
	}
}

func inferIntent(text string) Intent {
	lowered := strings.ToLower(text)
	for _, marker := range definitionMarkers {
		if strings.Contains(lowered, marker) {
			return IntentDefinition
		}
	}
	return IntentFactLookup
}

// extractEntities is a documented no-op: entity extraction is a placeholder
// for future NLP and always returns an empty list.
func extractEntities(_ string) []string {
	return []string{}
}
