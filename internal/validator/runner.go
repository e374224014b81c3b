package validator

import (
	"context"
	"log/slog"
	"time"
)

// Runner executes validation passes on a fixed interval. Mismatches are
// logged, not repaired: the next materialization cycle converges the table
// on its own.
type Runner struct {
	validator *Validator
	interval  time.Duration
	logger    *slog.Logger

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func NewRunner(v *Validator, interval time.Duration, lg *slog.Logger) *Runner {
	if lg == nil {
		lg = slog.Default()
	}
	return &Runner{
		validator: v,
		interval:  interval,
		logger:    lg,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Run starts the validation loop. Blocks until Stop() is called.
func (r *Runner) Run(ctx context.Context) {
	defer close(r.stoppedCh)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.InfoContext(ctx, "validator started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			r.logger.InfoContext(ctx, "validator stopping")
			return
		case <-ticker.C:
			if _, err := r.validator.Report(ctx); err != nil {
				r.logger.ErrorContext(ctx, "validation pass failed", "error", err)
			}
		}
	}
}

// Stop signals the runner to stop gracefully.
func (r *Runner) Stop() {
	close(r.stopCh)
	<-r.stoppedCh
}
