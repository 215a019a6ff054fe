// Package config holds all EduMUSE configuration, loaded from a YAML file
// with environment-variable overrides for secrets.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all pipeline configuration.
type Config struct {
	// LLM configures the generative completion service.
	LLM LLMConfig `yaml:"llm"`

	// Speech configures transcription and synthesis.
	Speech SpeechConfig `yaml:"speech"`

	// Fetch configures URL acquisition.
	Fetch FetchConfig `yaml:"fetch"`

	// Retrieval configures passage ranking.
	Retrieval RetrievalConfig `yaml:"retrieval"`
}

// LLMConfig configures the completion provider.
type LLMConfig struct {
	Provider string `yaml:"provider"` // openai, gemini
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`
}

// SpeechConfig configures the speech services.
type SpeechConfig struct {
	APIKey             string `yaml:"api_key"`
	BaseURL            string `yaml:"base_url"`
	TranscriptionModel string `yaml:"transcription_model"`
	SynthesisModel     string `yaml:"synthesis_model"`
	Voice              string `yaml:"voice"`
	OutputDir          string `yaml:"output_dir"`
	Timeout            string `yaml:"timeout"`
}

// FetchConfig configures URL acquisition.
type FetchConfig struct {
	Timeout      string `yaml:"timeout"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
	UserAgent    string `yaml:"user_agent"`
}

// RetrievalConfig configures passage ranking.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
			Timeout:  "120s",
		},
		Speech: SpeechConfig{
			TranscriptionModel: "whisper-1",
			SynthesisModel:     "tts-1",
			Voice:              "alloy",
			Timeout:            "300s",
		},
		Fetch: FetchConfig{
			Timeout:      "10s",
			MaxBodyBytes: 2 << 20,
			UserAgent:    "Mozilla/5.0 (compatible; EduMUSE/1.0)",
		},
		Retrieval: RetrievalConfig{
			TopK: 3,
		},
	}
}

// Load reads configuration from a YAML file layered over the defaults,
// then applies environment overrides. A missing file is not an error: the
// defaults plus environment are used.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv fills secrets from the environment when the file left them
// empty. EDUMUSE_-prefixed variables win over provider-native ones.
func (c *Config) applyEnv() {
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = firstEnv("EDUMUSE_LLM_API_KEY", "OPENAI_API_KEY")
		if c.LLM.Provider == "gemini" {
			c.LLM.APIKey = firstEnv("EDUMUSE_LLM_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY")
		}
	}
	if c.Speech.APIKey == "" {
		c.Speech.APIKey = firstEnv("EDUMUSE_SPEECH_API_KEY", "OPENAI_API_KEY")
	}
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// ParseTimeout parses a duration string, falling back when empty or
// invalid.
func ParseTimeout(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
