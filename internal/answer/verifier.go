package answer

import (
	"context"
	"fmt"
	"strings"

	"edumuse/internal/llm"

	"go.uber.org/zap"
)

// Verification is the outcome of cross-checking an answer against its
// retrieved evidence. Notes is empty on a pass.
type Verification struct {
	Verdict bool
	Notes   string
}

// Verifier asks the completion service whether an answer is fully supported
// by the passages it was grounded on.
type Verifier struct {
	client    llm.Client
	maxTokens int
	logger    *zap.Logger
}

// NewVerifier creates a Verifier.
func NewVerifier(client llm.Client, logger *zap.Logger) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{
		client:    client,
		maxTokens: 150,
		logger:    logger,
	}
}

// Verify fact-checks the answer. With no passages there is nothing to
// falsify against and the verdict is vacuously true, with no model call.
// A service failure is treated conservatively as unverified.
func (v *Verifier) Verify(ctx context.Context, answerText string, passages []string) Verification {
	if len(passages) == 0 {
		return Verification{Verdict: true}
	}

	combined := strings.Join(passages, "\n\n---\n\n")
	prompt := fmt.Sprintf(
		"You are a fact-check assistant.\nContext:\n%s\n\nAnswer to verify:\n%s\n\n"+
			"Is the answer fully supported by the context? If yes, just respond 'YES'. "+
			"If not, respond 'NO' and briefly explain which part is not supported.",
		combined, answerText,
	)

	resp, err := v.client.Complete(ctx, llm.Request{
		System:      "You are a helpful fact-checking assistant.",
		Prompt:      prompt,
		Temperature: 0,
		MaxTokens:   v.maxTokens,
	})
	if err != nil {
		v.logger.Warn("verification call failed", zap.Error(err))
		return Verification{Verdict: false, Notes: fmt.Sprintf("<Verification failed: %v>", err)}
	}

	verdict := strings.TrimSpace(resp)
	if strings.HasPrefix(strings.ToUpper(verdict), "YES") {
		return Verification{Verdict: true}
	}
	return Verification{Verdict: false, Notes: verdict}
}
