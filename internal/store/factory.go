package store

import "orderpulse.app/pulse/core/db/sqlc"

// Stores bundles all store implementations over one Queries instance.
// Build it from db.Queries() for pool-backed access, or from a
// transaction-scoped Queries inside db.WithTx.
type Stores struct {
	events     EventLogStore
	statuses   OrderStatusStore
	orders     OrderStore
	checkpoint CheckpointStore
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{
		events:     newEventLogStore(queries),
		statuses:   newOrderStatusStore(queries),
		orders:     newOrderStore(queries),
		checkpoint: newCheckpointStore(queries),
	}
}

func (s *Stores) Events() EventLogStore {
	return s.events
}

func (s *Stores) Statuses() OrderStatusStore {
	return s.statuses
}

func (s *Stores) Orders() OrderStore {
	return s.orders
}

func (s *Stores) Checkpoint() CheckpointStore {
	return s.checkpoint
}
