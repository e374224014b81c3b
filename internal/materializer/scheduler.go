package materializer

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Scheduler runs materialization cycles on a fixed interval. Cycles never
// overlap: if a tick fires while the previous cycle is still running, the
// tick is skipped and logged. The skipped work is not lost, the next cycle
// picks up from the same checkpoint.
type Scheduler struct {
	materializer *Materializer
	interval     time.Duration
	logger       *slog.Logger

	running   sync.Mutex
	inFlight  sync.WaitGroup
	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func NewScheduler(m *Materializer, interval time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		materializer: m,
		interval:     interval,
		logger:       logger,
		stopCh:       make(chan struct{}),
		stoppedCh:    make(chan struct{}),
	}
}

// Run starts the scheduler loop. Blocks until Stop() is called. The first
// cycle runs immediately so a restart does not wait a full interval to
// catch up.
func (s *Scheduler) Run(ctx context.Context) {
	defer close(s.stoppedCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.InfoContext(ctx, "materializer scheduler started", "interval", s.interval)

	s.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			s.logger.InfoContext(ctx, "materializer scheduler stopping")
			return
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

// Stop signals the scheduler to stop, waits for the loop to exit, and then
// drains any cycle still in flight. A running cycle is never cut off
// mid-update; callers can tear down the store once Stop returns.
func (s *Scheduler) Stop() {
	close(s.stopCh)
	<-s.stoppedCh
	s.inFlight.Wait()
}

func (s *Scheduler) runCycle(ctx context.Context) {
	if !s.running.TryLock() {
		s.logger.WarnContext(ctx, "previous materialization cycle still running, skipping tick")
		return
	}

	s.inFlight.Add(1)
	go func() {
		defer s.inFlight.Done()
		defer s.running.Unlock()
		if _, err := s.materializer.RunCycle(ctx); err != nil {
			s.logger.ErrorContext(ctx, "materialization cycle failed", "error", err)
		}
	}()
}
