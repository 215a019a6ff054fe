package orchestrator

import (
	"context"
	"fmt"

	"edumuse/internal/classify"
	"edumuse/internal/pipeline"
	"edumuse/internal/question"
	"edumuse/internal/respond"
	"edumuse/internal/visual"

	"go.uber.org/zap"
)

// transcribeStage converts audio input to a text query. It is a no-op for
// every other input kind. The audio kind never survives this stage: even a
// transcription failure re-tags the descriptor as a query whose payload is
// a visible failure marker.
func (o *Orchestrator) transcribeStage() pipeline.Stage {
	return pipeline.StageFunc{StageName: "transcribe", Fn: func(ctx context.Context, pc *pipeline.Context) error {
		if pc.Descriptor.Kind != classify.KindAudio {
			return nil
		}

		if o.transcriber == nil {
			pc.Descriptor = classify.Descriptor{
				Kind:    classify.KindQuery,
				Payload: "<Whisper transcription failed: no transcription service configured>",
			}
			return nil
		}

		transcript, err := o.transcriber.Transcribe(ctx, pc.Descriptor.Payload)
		if err != nil {
			o.logger.Warn("transcription failed",
				zap.String("run_id", pc.RunID),
				zap.Error(err))
			pc.Descriptor = classify.Descriptor{
				Kind:    classify.KindQuery,
				Payload: fmt.Sprintf("<Whisper transcription failed: %v>", err),
			}
			return nil
		}

		pc.Transcript = transcript
		pc.Descriptor = classify.Descriptor{Kind: classify.KindQuery, Payload: transcript}
		return nil
	}}
}

// acquireStage loads source content for documents and URLs.
func (o *Orchestrator) acquireStage() pipeline.Stage {
	return pipeline.StageFunc{StageName: "acquire", Fn: func(ctx context.Context, pc *pipeline.Context) error {
		pc.Content = o.acquirer.Acquire(ctx, pc.Descriptor)
		return nil
	}}
}

// analyzeStage builds the structured question record.
func (o *Orchestrator) analyzeStage() pipeline.Stage {
	return pipeline.StageFunc{StageName: "analyze", Fn: func(_ context.Context, pc *pipeline.Context) error {
		pc.Question = question.Analyze(pc.Descriptor.Payload, pc.Content)
		return nil
	}}
}

// retrieveStage ranks source paragraphs against the question. An empty
// result means the model answers from general knowledge.
func (o *Orchestrator) retrieveStage() pipeline.Stage {
	return pipeline.StageFunc{StageName: "retrieve", Fn: func(_ context.Context, pc *pipeline.Context) error {
		pc.Passages = o.ranker.Retrieve(pc.Question.Source, pc.Question.Text)
		o.logger.Debug("passages retrieved",
			zap.String("run_id", pc.RunID),
			zap.Int("count", len(pc.Passages)))
		return nil
	}}
}

// generateStage produces the answer.
func (o *Orchestrator) generateStage() pipeline.Stage {
	return pipeline.StageFunc{StageName: "generate", Fn: func(ctx context.Context, pc *pipeline.Context) error {
		pc.RawAnswer, pc.NeedsVisual = o.generator.Generate(ctx, pc.Question.Text, pc.Passages)
		return nil
	}}
}

// verifyStage cross-checks the answer against its evidence.
func (o *Orchestrator) verifyStage() pipeline.Stage {
	return pipeline.StageFunc{StageName: "verify", Fn: func(ctx context.Context, pc *pipeline.Context) error {
		pc.Verification = o.verifier.Verify(ctx, pc.RawAnswer, pc.Passages)
		return nil
	}}
}

// visualStage attaches the placeholder when a visual is implied.
func (o *Orchestrator) visualStage() pipeline.Stage {
	return pipeline.StageFunc{StageName: "visualize", Fn: func(_ context.Context, pc *pipeline.Context) error {
		pc.VisualOutput = visual.Maybe(pc.NeedsVisual)
		return nil
	}}
}

// formatStage assembles the final response payload.
func (o *Orchestrator) formatStage() pipeline.Stage {
	return pipeline.StageFunc{StageName: "format", Fn: func(_ context.Context, pc *pipeline.Context) error {
		pc.Response = respond.Format(pc.RawAnswer, pc.VisualOutput, pc.Verification, pc.Passages, pc.TTSRequested)
		return nil
	}}
}

// synthesizeStage converts the final text to speech when requested.
// Synthesis failure is logged and surfaced as an absent audio path, never
// an error.
func (o *Orchestrator) synthesizeStage() pipeline.Stage {
	return pipeline.StageFunc{StageName: "synthesize", Fn: func(ctx context.Context, pc *pipeline.Context) error {
		if !pc.TTSRequested || o.synthesizer == nil {
			return nil
		}

		path, err := o.synthesizer.Synthesize(ctx, pc.Response.TTSText)
		if err != nil {
			o.logger.Warn("speech synthesis failed",
				zap.String("run_id", pc.RunID),
				zap.Error(err))
			return nil
		}

		pc.AudioPath = path
		pc.Response.AudioPath = path
		return nil
	}}
}
