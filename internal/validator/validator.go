package validator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"orderpulse.app/pulse/common/logger"
	"orderpulse.app/pulse/internal/materializer"
	"orderpulse.app/pulse/internal/store"
)

// Mismatch is one order whose materialized row disagrees with what the
// full event log says it should be.
type Mismatch struct {
	OrderID        string `json:"order_id"`
	ExpectedStatus string `json:"expected_status"`
	ActualStatus   string `json:"actual_status,omitempty"`
	Reason         string `json:"reason"`
}

// Report is the outcome of one validation pass. Healthy means the
// materialized table matches a from-scratch fold of the log exactly.
type Report struct {
	CheckedAt       time.Time  `json:"checked_at"`
	LatestEventTS   *time.Time `json:"latest_event_ts,omitempty"`
	MaxLastUpdateTS *time.Time `json:"max_last_update_ts,omitempty"`
	Mismatches      []Mismatch `json:"mismatches,omitempty"`
	EventsScanned   int        `json:"events_scanned"`
	ExpectedOrders  int        `json:"expected_orders"`
	TrackedOrders   int        `json:"tracked_orders"`
	OrphanedOrders  int64      `json:"orphaned_orders"`
	Healthy         bool       `json:"healthy"`
}

// Validator recomputes order statuses from the full log and diffs the
// result against the materialized table. It only reads; repairs are the
// materializer's job on its next cycle.
type Validator struct {
	events   store.EventLogStore
	statuses store.OrderStatusStore
	logger   *slog.Logger
}

func New(events store.EventLogStore, statuses store.OrderStatusStore, lg *slog.Logger) *Validator {
	if lg == nil {
		lg = slog.Default()
	}
	return &Validator{events: events, statuses: statuses, logger: lg}
}

func (v *Validator) Report(ctx context.Context) (*Report, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "pulse.validator",
	})

	events, err := v.events.ListSince(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("scanning event log: %w", err)
	}

	records, err := v.statuses.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing status records: %w", err)
	}

	winners := materializer.SelectWinners(events)

	report := &Report{
		CheckedAt:      time.Now().UTC(),
		EventsScanned:  len(events),
		ExpectedOrders: len(winners),
		TrackedOrders:  len(records),
	}

	byOrder := make(map[string]int, len(records))
	for i, rec := range records {
		byOrder[rec.OrderID] = i
	}

	seen := make(map[string]bool, len(winners))
	for _, winner := range winners {
		seen[winner.OrderID] = true
		idx, ok := byOrder[winner.OrderID]
		if !ok {
			report.Mismatches = append(report.Mismatches, Mismatch{
				OrderID:        winner.OrderID,
				ExpectedStatus: winner.NewStatus,
				Reason:         "order has events but no materialized row",
			})
			continue
		}
		rec := records[idx]
		if rec.CurrentStatus != winner.NewStatus {
			reason := "materialized status diverges from log"
			if winner.EventTS.After(rec.LastUpdateTS) {
				reason = "materialized row is stale"
			}
			report.Mismatches = append(report.Mismatches, Mismatch{
				OrderID:        winner.OrderID,
				ExpectedStatus: winner.NewStatus,
				ActualStatus:   rec.CurrentStatus,
				Reason:         reason,
			})
		}
	}

	// Rows with no source events should be impossible: only the
	// materializer writes this table.
	for _, rec := range records {
		if !seen[rec.OrderID] {
			report.Mismatches = append(report.Mismatches, Mismatch{
				OrderID:      rec.OrderID,
				ActualStatus: rec.CurrentStatus,
				Reason:       "materialized row has no source events",
			})
		}
	}

	orphans, err := v.statuses.CountOrphans(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting orphans: %w", err)
	}
	report.OrphanedOrders = orphans

	stats, err := v.events.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading event stats: %w", err)
	}
	report.LatestEventTS = stats.LatestEventTS

	// Returns nil, not an error, when the table is empty.
	maxTS, err := v.statuses.MaxLastUpdateTS(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading max last_update_ts: %w", err)
	}
	report.MaxLastUpdateTS = maxTS

	report.Healthy = len(report.Mismatches) == 0

	if report.Healthy {
		v.logger.InfoContext(ctx, "validation passed",
			"events_scanned", report.EventsScanned,
			"tracked_orders", report.TrackedOrders,
			"orphaned_orders", report.OrphanedOrders)
	} else {
		v.logger.WarnContext(ctx, "validation found mismatches",
			"mismatches", len(report.Mismatches),
			"events_scanned", report.EventsScanned,
			"tracked_orders", report.TrackedOrders)
	}

	return report, nil
}
