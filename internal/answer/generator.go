// Package answer drives the generative stages of the pipeline: answer
// generation, answer verification against retrieved evidence, and practice
// question generation. Service failures never escape as errors; they are
// converted into visible marker strings so the pipeline always produces a
// formattable response.
package answer

import (
	"context"
	"fmt"
	"strings"

	"edumuse/internal/llm"

	"go.uber.org/zap"
)

const systemPrompt = "You are a helpful assistant."

// visualKeywords flag an answer as implying a visual aid on a
// case-insensitive substring match.
var visualKeywords = []string{"chart", "graph", "plot", "diagram", "figure"}

// Generator produces answers from a question and optional grounding
// passages.
type Generator struct {
	client      llm.Client
	temperature float64
	maxTokens   int
	logger      *zap.Logger
}

// NewGenerator creates a Generator. Near-deterministic temperature and a
// bounded output length match the original system.
func NewGenerator(client llm.Client, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		client:      client,
		temperature: 0.2,
		maxTokens:   512,
		logger:      logger,
	}
}

// Generate builds the prompt, calls the completion service, and flags
// whether the answer implies a visual aid. On service failure the returned
// answer is a visible marker string and needsVisual is false.
func (g *Generator) Generate(ctx context.Context, questionText string, passages []string) (answer string, needsVisual bool) {
	prompt := buildPrompt(questionText, passages)

	text, err := g.client.Complete(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      prompt,
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	})
	if err != nil {
		g.logger.Warn("completion failed", zap.Error(err))
		return fmt.Sprintf("<LLM call failed: %v>", err), false
	}

	return text, NeedsVisual(text)
}

// buildPrompt includes the grounding passages when they exist, instructing
// the model to answer from that context only; otherwise it asks directly.
func buildPrompt(questionText string, passages []string) string {
	if len(passages) > 0 {
		contextBlock := strings.Join(passages, "\n\n---\n\n")
		return fmt.Sprintf(
			"You are an expert assistant. Use only the following context to answer:\n\n%s\n\nQuestion: %s\nAnswer:",
			contextBlock, questionText,
		)
	}
	return fmt.Sprintf("You are an expert assistant.\nQuestion: %s\nAnswer:", questionText)
}

// NeedsVisual reports whether the answer text mentions a visual aid.
// Purely textual, no semantic understanding.
func NeedsVisual(answerText string) bool {
	lowered := strings.ToLower(answerText)
	for _, kw := range visualKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
