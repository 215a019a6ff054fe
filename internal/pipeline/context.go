// Package pipeline defines the per-invocation context record and the
// sequential stage runner the QA pipeline is composed of.
package pipeline

import (
	"edumuse/internal/acquire"
	"edumuse/internal/answer"
	"edumuse/internal/classify"
	"edumuse/internal/question"
	"edumuse/internal/respond"

	"github.com/google/uuid"
)

// Context is the single mutable record threaded through all stages. It is
// created fresh per invocation, owned exclusively by the calling goroutine,
// and discarded after the formatted response is returned. Fields are
// write-once per stage: no stage mutates a field written by an earlier one
// (the descriptor's audio-to-query rewrite by the transcriber is the single
// sanctioned exception).
type Context struct {
	RunID        string
	RawInput     string
	TTSRequested bool

	// Set by the classifier; rewritten exactly once by the transcriber
	// (audio -> query).
	Descriptor classify.Descriptor

	// Set by the transcriber when the input was audio.
	Transcript string

	// Set by the acquirer; nil means "no external text available", which
	// downstream stages check explicitly via Usable.
	Content *acquire.Acquisition

	// Set by the analyzer.
	Question question.Question

	// Set by the retriever; an empty list is a valid terminal state, not an
	// error.
	Passages []string

	// Set by the generator.
	RawAnswer   string
	NeedsVisual bool

	// Set by the verifier.
	Verification answer.Verification

	// Set by the visual stub; empty when no visual was implied.
	VisualOutput string

	// Set by the formatter; the only externally consumed artifact.
	Response *respond.Response

	// Set by the synthesizer when TTS was requested and succeeded.
	AudioPath string
}

// NewContext creates a fresh context for one pipeline invocation.
func NewContext(rawInput string, ttsRequested bool) *Context {
	return &Context{
		RunID:        uuid.NewString(),
		RawInput:     rawInput,
		TTSRequested: ttsRequested,
	}
}
