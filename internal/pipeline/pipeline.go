package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Stage is one step of the pipeline: a transformation of the shared context
// record. Stages convert their own external failures into marker values on
// the record; a non-nil error from Run is reserved for programmer errors
// and aborts the run.
type Stage interface {
	Name() string
	Run(ctx context.Context, pc *Context) error
}

// Pipeline executes an ordered list of stages strictly in sequence. No
// loops, no retries, no backtracking between stages.
type Pipeline struct {
	stages []Stage
	logger *zap.Logger
}

// New creates a Pipeline. A nil logger defaults to zap.NewNop.
func New(logger *zap.Logger, stages ...Stage) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{stages: stages, logger: logger}
}

// Run executes every stage against the context record.
func (p *Pipeline) Run(ctx context.Context, pc *Context) error {
	start := time.Now()
	p.logger.Debug("pipeline start",
		zap.String("run_id", pc.RunID),
		zap.Int("stages", len(p.stages)))

	for _, s := range p.stages {
		stageStart := time.Now()
		if err := s.Run(ctx, pc); err != nil {
			p.logger.Error("stage failed",
				zap.String("run_id", pc.RunID),
				zap.String("stage", s.Name()),
				zap.Error(err))
			return fmt.Errorf("stage %s: %w", s.Name(), err)
		}
		p.logger.Debug("stage complete",
			zap.String("run_id", pc.RunID),
			zap.String("stage", s.Name()),
			zap.Duration("took", time.Since(stageStart)))
	}

	p.logger.Debug("pipeline complete",
		zap.String("run_id", pc.RunID),
		zap.Duration("took", time.Since(start)))
	return nil
}

// StageFunc adapts a function to the Stage interface.
type StageFunc struct {
	StageName string
	Fn        func(ctx context.Context, pc *Context) error
}

// Name returns the stage name.
func (s StageFunc) Name() string { return s.StageName }

// Run invokes the wrapped function.
func (s StageFunc) Run(ctx context.Context, pc *Context) error { return s.Fn(ctx, pc) }
