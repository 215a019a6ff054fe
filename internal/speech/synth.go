package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SynthClient implements Synthesizer against an OpenAI-compatible
// /audio/speech endpoint, writing the returned audio to a file.
type SynthClient struct {
	apiKey     string
	baseURL    string
	model      string
	voice      string
	outputDir  string
	httpClient *http.Client
}

// SynthConfig holds configuration for the synthesis client.
type SynthConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	Voice     string
	OutputDir string
	Timeout   time.Duration
}

// DefaultSynthConfig returns sensible defaults.
func DefaultSynthConfig(apiKey string) SynthConfig {
	return SynthConfig{
		APIKey:    apiKey,
		BaseURL:   "https://api.openai.com/v1",
		Model:     "tts-1",
		Voice:     "alloy",
		OutputDir: os.TempDir(),
		Timeout:   120 * time.Second,
	}
}

// NewSynthClient creates a synthesis client.
func NewSynthClient(cfg SynthConfig) *SynthClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "tts-1"
	}
	if cfg.Voice == "" {
		cfg.Voice = "alloy"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = os.TempDir()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &SynthClient{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		voice:      cfg.Voice,
		outputDir:  cfg.OutputDir,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type synthRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
	Voice string `json:"voice"`
}

// Synthesize converts text to speech and returns the path of the written
// MP3 file.
func (c *SynthClient) Synthesize(ctx context.Context, text string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: API key not configured", ErrSynthesis)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: nothing to synthesize", ErrSynthesis)
	}

	jsonData, err := json.Marshal(synthRequest{Model: c.model, Input: text, Voice: c.voice})
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", ErrSynthesis, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/speech", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSynthesis, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSynthesis, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: status %d: %s", ErrSynthesis, resp.StatusCode, string(body))
	}

	if err := os.MkdirAll(c.outputDir, 0755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSynthesis, err)
	}

	outPath := filepath.Join(c.outputDir, fmt.Sprintf("edumuse-%s.mp3", uuid.NewString()))
	out, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSynthesis, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(outPath)
		return "", fmt.Errorf("%w: write audio: %v", ErrSynthesis, err)
	}

	return outPath, nil
}
