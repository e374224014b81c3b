package materializer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"orderpulse.app/pulse/common/logger"
	"orderpulse.app/pulse/internal/service"
)

// CycleResult summarizes one materialization cycle.
type CycleResult struct {
	EventsScanned int
	OrdersFolded  int
	Applied       int
	Unchanged     int
	FromPosition  int64
	ToPosition    int64
}

// Materializer folds the event log into the order status table. A cycle
// runs in a single transaction: scan past the checkpoint, pick winners,
// apply them, advance the checkpoint. If anything fails the transaction
// rolls back and the next cycle rescans the same range.
type Materializer struct {
	txRunner service.TxRunner
	logger   *slog.Logger
}

func New(txRunner service.TxRunner, logger *slog.Logger) *Materializer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Materializer{txRunner: txRunner, logger: logger}
}

func (m *Materializer) RunCycle(ctx context.Context) (*CycleResult, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "pulse.materializer",
	})

	start := time.Now()
	var result CycleResult

	err := m.txRunner.WithTx(ctx, func(sp service.StoreProvider) error {
		checkpoint, err := sp.Checkpoint().Get(ctx)
		if err != nil {
			return fmt.Errorf("reading checkpoint: %w", err)
		}
		result.FromPosition = checkpoint
		result.ToPosition = checkpoint

		events, err := sp.Events().ListSince(ctx, checkpoint)
		if err != nil {
			return fmt.Errorf("scanning event log: %w", err)
		}
		if len(events) == 0 {
			return nil
		}
		result.EventsScanned = len(events)

		winners := SelectWinners(events)
		result.OrdersFolded = len(winners)

		for _, update := range winners {
			changed, err := sp.Statuses().Apply(ctx, update)
			if err != nil {
				return fmt.Errorf("applying status for order %s: %w", update.OrderID, err)
			}
			if changed {
				result.Applied++
			} else {
				result.Unchanged++
			}
		}

		// ListSince returns log order, so the last event holds the batch max.
		maxPosition := events[len(events)-1].Position
		if err := sp.Checkpoint().Set(ctx, maxPosition); err != nil {
			return fmt.Errorf("advancing checkpoint: %w", err)
		}
		result.ToPosition = maxPosition

		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.EventsScanned == 0 {
		m.logger.DebugContext(ctx, "materialization cycle: nothing to fold",
			"checkpoint", result.FromPosition)
		return &result, nil
	}

	m.logger.InfoContext(ctx, "materialization cycle complete",
		"events_scanned", result.EventsScanned,
		"orders_folded", result.OrdersFolded,
		"applied", result.Applied,
		"unchanged", result.Unchanged,
		"from_position", result.FromPosition,
		"to_position", result.ToPosition,
		"duration_ms", time.Since(start).Milliseconds())

	return &result, nil
}
