package answer

import (
	"context"
	"fmt"
	"strings"

	"edumuse/internal/llm"

	"go.uber.org/zap"
)

// QuizGenerator produces practice questions over acquired source content,
// or over the topic alone when no content is available.
type QuizGenerator struct {
	client       llm.Client
	numQuestions int
	maxTokens    int
	logger       *zap.Logger
}

// NewQuizGenerator creates a QuizGenerator producing up to n questions
// (default 10 when n <= 0).
func NewQuizGenerator(client llm.Client, n int, logger *zap.Logger) *QuizGenerator {
	if n <= 0 {
		n = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizGenerator{
		client:       client,
		numQuestions: n,
		maxTokens:    1024,
		logger:       logger,
	}
}

// Generate returns quiz text. Like every other generative stage, a service
// failure degrades to a visible marker string rather than an error.
func (q *QuizGenerator) Generate(ctx context.Context, topic, content string) string {
	var prompt string
	if strings.TrimSpace(content) != "" {
		prompt = fmt.Sprintf(
			"Create %d practice questions to test understanding of the following material. "+
				"Mix question types: multiple choice with 4 options, short answer, and one essay question. "+
				"Use clear, unambiguous wording and progressive difficulty. Provide the correct answer "+
				"after each question.\n\nMaterial:\n%s",
			q.numQuestions, content,
		)
	} else {
		prompt = fmt.Sprintf(
			"Create %d practice questions with answers on the topic: %s. "+
				"Mix multiple choice, short answer, and essay questions with progressive difficulty.",
			q.numQuestions, topic,
		)
	}

	text, err := q.client.Complete(ctx, llm.Request{
		System:      "You are an expert educational assessment designer.",
		Prompt:      prompt,
		Temperature: 0.2,
		MaxTokens:   q.maxTokens,
	})
	if err != nil {
		q.logger.Warn("quiz generation failed", zap.Error(err))
		return fmt.Sprintf("<Quiz generation failed: %v>", err)
	}
	return text
}
