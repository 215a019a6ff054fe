package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"edumuse/internal/acquire"
	"edumuse/internal/config"
	"edumuse/internal/llm"
	"edumuse/internal/orchestrator"
	"edumuse/internal/respond"
	"edumuse/internal/speech"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const version = "1.0.0"

var (
	// Global flags
	verbose    bool
	configPath string
	ttsFlag    bool
	dumpPath   string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "edumuse",
	Short: "EduMUSE - Retrieval-augmented educational QA pipeline",
	Long: `EduMUSE answers questions about documents, web pages, audio
recordings, or anything at all.

The pipeline classifies the input, acquires and retrieves source passages,
generates a grounded answer, and cross-checks it against the evidence
before formatting the response. Optionally the answer is synthesized to
speech.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// askCmd runs the QA pipeline for one input
var askCmd = &cobra.Command{
	Use:   "ask [input]",
	Short: "Answer a question, document, URL, or audio file",
	Long: `Runs the full pipeline for a single input: a plain question, a
local document (pdf/txt/docx), an audio recording (wav/mp3/m4a), or an
HTTP(S) URL.

Examples:
  edumuse ask "What is the capital of France?"
  edumuse ask ./lecture-notes.pdf
  edumuse ask https://en.wikipedia.org/wiki/Photosynthesis --tts`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

// quizCmd generates practice questions
var quizCmd = &cobra.Command{
	Use:   "quiz [topic or document]",
	Short: "Generate practice questions over a topic or document",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runQuiz,
}

// versionCmd prints the version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the EduMUSE version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("edumuse %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "edumuse.yaml", "path to config file")

	askCmd.Flags().BoolVar(&ttsFlag, "tts", false, "synthesize the answer to speech")
	askCmd.Flags().StringVar(&dumpPath, "dump", "", "write the final response JSON to this path")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(versionCmd)
}

// buildOrchestrator assembles the pipeline from configuration.
func buildOrchestrator(ctx context.Context) (*orchestrator.Orchestrator, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	client, err := llm.NewClient(ctx,
		cfg.LLM.Provider, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.BaseURL,
		config.ParseTimeout(cfg.LLM.Timeout, 0))
	if err != nil {
		return nil, fmt.Errorf("configuring LLM provider: %w", err)
	}

	acqCfg := acquire.DefaultConfig()
	acqCfg.FetchTimeout = config.ParseTimeout(cfg.Fetch.Timeout, acqCfg.FetchTimeout)
	if cfg.Fetch.MaxBodyBytes > 0 {
		acqCfg.MaxBodyBytes = cfg.Fetch.MaxBodyBytes
	}
	if cfg.Fetch.UserAgent != "" {
		acqCfg.UserAgent = cfg.Fetch.UserAgent
	}

	speechTimeout := config.ParseTimeout(cfg.Speech.Timeout, 0)
	transcriber := speech.NewWhisperClient(speech.WhisperConfig{
		APIKey:  cfg.Speech.APIKey,
		BaseURL: cfg.Speech.BaseURL,
		Model:   cfg.Speech.TranscriptionModel,
		Timeout: speechTimeout,
	})
	synthesizer := speech.NewSynthClient(speech.SynthConfig{
		APIKey:    cfg.Speech.APIKey,
		BaseURL:   cfg.Speech.BaseURL,
		Model:     cfg.Speech.SynthesisModel,
		Voice:     cfg.Speech.Voice,
		OutputDir: cfg.Speech.OutputDir,
		Timeout:   speechTimeout,
	})

	return orchestrator.New(orchestrator.Options{
		LLM:         client,
		Transcriber: transcriber,
		Synthesizer: synthesizer,
		Acquirer:    acquire.New(acqCfg, logger),
		TopK:        cfg.Retrieval.TopK,
		Logger:      logger,
	}), nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	input := strings.Join(args, " ")

	o, err := buildOrchestrator(ctx)
	if err != nil {
		return err
	}

	resp, err := o.Run(ctx, input, ttsFlag)
	if err != nil {
		return err
	}

	printResponse(resp)

	if dumpPath != "" {
		if err := resp.Dump(dumpPath); err != nil {
			return err
		}
		fmt.Printf("\nResponse written to %s\n", dumpPath)
	}
	return nil
}

func runQuiz(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	input := strings.Join(args, " ")

	o, err := buildOrchestrator(ctx)
	if err != nil {
		return err
	}

	resp, err := o.Quiz(ctx, input)
	if err != nil {
		return err
	}

	fmt.Println(resp.AnswerText)
	return nil
}

func printResponse(resp *respond.Response) {
	fmt.Println("Answer:")
	fmt.Println(resp.AnswerText)

	if resp.Visuals != "" {
		fmt.Println("\nVisuals:")
		fmt.Println(resp.Visuals)
	}

	if len(resp.Sources) > 0 {
		fmt.Println("\nSources:")
		for i, src := range resp.Sources {
			fmt.Printf("  [%d] %s\n", i+1, src)
		}
	}

	if resp.Verified {
		fmt.Println("\nVerified: yes")
	} else {
		fmt.Println("\nVerified: no")
		if resp.VerificationNotes != "" {
			fmt.Printf("Notes: %s\n", resp.VerificationNotes)
		}
	}

	if resp.AudioPath != "" {
		fmt.Printf("\nAudio output: %s\n", resp.AudioPath)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
