// Package speech provides the transcription and synthesis capabilities the
// pipeline consumes: audio in, text out (Whisper-style) and text in, audio
// artifact out.
package speech

import (
	"context"
	"errors"
)

// Error kinds for the two speech call sites.
var (
	ErrTranscription = errors.New("transcription failed")
	ErrSynthesis     = errors.New("speech synthesis failed")
)

// Transcriber converts an audio file into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Synthesizer converts text into an audio artifact and returns its path.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
}
