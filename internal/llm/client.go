// Package llm abstracts generative completion services behind a single
// Client interface with interchangeable providers.
package llm

import (
	"context"
	"errors"
)

// ErrCompletion tags failures from the generative completion service.
var ErrCompletion = errors.New("completion failed")

// Request describes one completion call.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Client is the generative completion capability consumed by the pipeline.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}
