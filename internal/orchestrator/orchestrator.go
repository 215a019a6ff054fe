// Package orchestrator wires the pipeline stages together and exposes the
// single entry point: one input value and one speech flag in, one formatted
// response out.
package orchestrator

import (
	"context"
	"strings"

	"edumuse/internal/acquire"
	"edumuse/internal/answer"
	"edumuse/internal/classify"
	"edumuse/internal/llm"
	"edumuse/internal/pipeline"
	"edumuse/internal/respond"
	"edumuse/internal/retrieval"
	"edumuse/internal/speech"

	"go.uber.org/zap"
)

// Options collects the external collaborators and tuning knobs.
type Options struct {
	LLM         llm.Client
	Transcriber speech.Transcriber
	Synthesizer speech.Synthesizer
	Acquirer    *acquire.Acquirer
	TopK        int
	Logger      *zap.Logger
}

// Orchestrator runs the QA pipeline. Safe for concurrent use: each Run
// builds a fresh context record and shares nothing mutable.
type Orchestrator struct {
	llmClient   llm.Client
	transcriber speech.Transcriber
	synthesizer speech.Synthesizer
	acquirer    *acquire.Acquirer
	ranker      *retrieval.Ranker
	generator   *answer.Generator
	verifier    *answer.Verifier
	quiz        *answer.QuizGenerator
	logger      *zap.Logger
}

// New creates an Orchestrator. LLM is required; transcriber and synthesizer
// may be nil, in which case audio inputs and TTS requests degrade to marker
// values.
func New(opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	acq := opts.Acquirer
	if acq == nil {
		acq = acquire.New(acquire.DefaultConfig(), logger)
	}
	return &Orchestrator{
		llmClient:   opts.LLM,
		transcriber: opts.Transcriber,
		synthesizer: opts.Synthesizer,
		acquirer:    acq,
		ranker:      retrieval.NewRanker(opts.TopK),
		generator:   answer.NewGenerator(opts.LLM, logger),
		verifier:    answer.NewVerifier(opts.LLM, logger),
		quiz:        answer.NewQuizGenerator(opts.LLM, 0, logger),
		logger:      logger,
	}
}

// Run executes the full pipeline for one input. An input mentioning "quiz"
// short-circuits into quiz generation after content acquisition, mirroring
// the answer path's grounding behavior.
func (o *Orchestrator) Run(ctx context.Context, input string, synthesizeSpeech bool) (*respond.Response, error) {
	pc := pipeline.NewContext(input, synthesizeSpeech)

	if strings.Contains(strings.ToLower(input), "quiz") {
		return o.runQuiz(ctx, pc)
	}

	p := pipeline.New(o.logger,
		o.classifyStage(),
		o.transcribeStage(),
		o.acquireStage(),
		o.analyzeStage(),
		o.retrieveStage(),
		o.generateStage(),
		o.verifyStage(),
		o.visualStage(),
		o.formatStage(),
		o.synthesizeStage(),
	)

	if err := p.Run(ctx, pc); err != nil {
		return nil, err
	}
	return pc.Response, nil
}

// Quiz generates practice questions for an input without requiring the
// quiz keyword: classify, acquire, generate.
func (o *Orchestrator) Quiz(ctx context.Context, input string) (*respond.Response, error) {
	return o.runQuiz(ctx, pipeline.NewContext(input, false))
}

// runQuiz is the quiz branch: classify, acquire, generate questions.
func (o *Orchestrator) runQuiz(ctx context.Context, pc *pipeline.Context) (*respond.Response, error) {
	p := pipeline.New(o.logger,
		o.classifyStage(),
		o.transcribeStage(),
		o.acquireStage(),
		o.quizStage(),
	)
	if err := p.Run(ctx, pc); err != nil {
		return nil, err
	}
	return pc.Response, nil
}

// quizStage generates practice questions over the acquired content (or the
// bare topic) and formats the result directly: quiz runs have no
// verification evidence, so the verdict is vacuously true.
func (o *Orchestrator) quizStage() pipeline.Stage {
	return pipeline.StageFunc{StageName: "quiz", Fn: func(ctx context.Context, pc *pipeline.Context) error {
		var content string
		if pc.Content.Usable() {
			content = pc.Content.Text
		}
		text := o.quiz.Generate(ctx, pc.Descriptor.Payload, content)
		pc.RawAnswer = text
		pc.Verification = answer.Verification{Verdict: true}
		pc.Response = respond.Format(text, "", pc.Verification, nil, pc.TTSRequested)
		return nil
	}}
}

// classifyStage tags the raw input.
func (o *Orchestrator) classifyStage() pipeline.Stage {
	return pipeline.StageFunc{StageName: "classify", Fn: func(_ context.Context, pc *pipeline.Context) error {
		pc.Descriptor = classify.Classify(pc.RawInput)
		o.logger.Debug("input classified",
			zap.String("run_id", pc.RunID),
			zap.String("kind", string(pc.Descriptor.Kind)))
		return nil
	}}
}
