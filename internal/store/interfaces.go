package store

import (
	"context"
	"errors"
	"time"

	"orderpulse.app/pulse/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// EventLogStore defines the contract for the append-only event log.
// There is deliberately no update or delete: the log only grows.
type EventLogStore interface {
	// Append writes one event and returns it with its log position set.
	// No dedup: appending the same logical event twice yields two rows.
	Append(ctx context.Context, event *model.Event) (*model.Event, error)
	// ListSince returns events with position strictly greater than the
	// given position, in log order.
	ListSince(ctx context.Context, position int64) ([]model.Event, error)
	Stats(ctx context.Context) (*model.EventLogStats, error)
}

// OrderStatusStore defines the contract for the materialized table.
type OrderStatusStore interface {
	GetByOrderID(ctx context.Context, orderID string) (*model.OrderStatusRecord, error)
	// Apply upserts the winning event for one order atomically. Returns
	// true if a row was inserted or updated, false if the idempotence
	// guard turned it into a no-op.
	Apply(ctx context.Context, update model.StatusUpdate) (bool, error)
	ListRecent(ctx context.Context, limit int32) ([]model.OrderStatusRecord, error)
	ListAll(ctx context.Context) ([]model.OrderStatusRecord, error)
	Count(ctx context.Context) (int64, error)
	MaxLastUpdateTS(ctx context.Context) (*time.Time, error)
	Distribution(ctx context.Context) ([]model.StatusCount, error)
	// CountOrphans counts status records whose order_id has no row in the
	// order master.
	CountOrphans(ctx context.Context) (int64, error)
}

// OrderStore defines the contract for the order master.
type OrderStore interface {
	Upsert(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, orderID string) (*model.Order, error)
	Count(ctx context.Context) (int64, error)
}

// CheckpointStore tracks the last log position the materializer has folded.
// Advancing it is an optimization only: re-scanning already-applied events
// is always safe because Apply is idempotent.
type CheckpointStore interface {
	Get(ctx context.Context) (int64, error)
	Set(ctx context.Context, position int64) error
}
