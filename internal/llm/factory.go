package llm

import (
	"context"
	"fmt"
	"time"
)

// NewClient constructs a provider-specific Client. Supported providers are
// "openai" (any OpenAI-compatible endpoint via baseURL) and "gemini".
func NewClient(ctx context.Context, provider, apiKey, model, baseURL string, timeout time.Duration) (Client, error) {
	switch provider {
	case "openai", "":
		cfg := DefaultOpenAIConfig(apiKey)
		if model != "" {
			cfg.Model = model
		}
		if baseURL != "" {
			cfg.BaseURL = baseURL
		}
		if timeout > 0 {
			cfg.Timeout = timeout
		}
		return NewOpenAIClient(cfg), nil
	case "gemini":
		return NewGeminiClient(ctx, apiKey, model)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", provider)
	}
}
