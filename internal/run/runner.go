package run

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Step is a single stage of the training run. Steps execute sequentially
// and communicate through the shared State.
type Step interface {
	// ID returns the unique identifier for this step.
	ID() string

	// Name returns the human-readable name for this step.
	Name() string

	// Execute runs the step with the given context and run state.
	Execute(ctx context.Context, state *State) error
}

// Runner executes steps in order, failing fast on the first error.
type Runner struct {
	logger *slog.Logger
	steps  []Step
}

// NewRunner creates a runner over the given steps.
func NewRunner(logger *slog.Logger, steps ...Step) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger, steps: steps}
}

// Run executes every step against state. The first failing step aborts the
// run and its error is returned wrapped with the step ID.
func (r *Runner) Run(ctx context.Context, state *State) error {
	r.logger.InfoContext(ctx, "run starting",
		slog.String("run_id", state.RunID),
		slog.Int("steps", len(r.steps)))

	for _, step := range r.steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run cancelled before step %s: %w", step.ID(), err)
		}

		start := time.Now()
		r.logger.InfoContext(ctx, "step starting",
			slog.String("run_id", state.RunID),
			slog.String("step", step.ID()),
			slog.String("name", step.Name()))

		if err := step.Execute(ctx, state); err != nil {
			r.logger.ErrorContext(ctx, "step failed",
				slog.String("run_id", state.RunID),
				slog.String("step", step.ID()),
				slog.Duration("elapsed", time.Since(start)),
				slog.String("error", err.Error()))
			return fmt.Errorf("step %s: %w", step.ID(), err)
		}

		r.logger.InfoContext(ctx, "step completed",
			slog.String("run_id", state.RunID),
			slog.String("step", step.ID()),
			slog.Duration("elapsed", time.Since(start)))
	}

	r.logger.InfoContext(ctx, "run completed",
		slog.String("run_id", state.RunID),
		slog.Duration("elapsed", time.Since(state.StartedAt)))
	return nil
}
