package service_test

import (
	"context"
	"time"

	"orderpulse.app/pulse/internal/model"
	"orderpulse.app/pulse/internal/queue"
	"orderpulse.app/pulse/internal/service"
	"orderpulse.app/pulse/internal/store"
)

type mockEventLogStore struct {
	appendFn    func(ctx context.Context, event *model.Event) (*model.Event, error)
	listSinceFn func(ctx context.Context, position int64) ([]model.Event, error)
	statsFn     func(ctx context.Context) (*model.EventLogStats, error)
}

func (m *mockEventLogStore) Append(ctx context.Context, event *model.Event) (*model.Event, error) {
	if m.appendFn != nil {
		return m.appendFn(ctx, event)
	}
	return event, nil
}

func (m *mockEventLogStore) ListSince(ctx context.Context, position int64) ([]model.Event, error) {
	if m.listSinceFn != nil {
		return m.listSinceFn(ctx, position)
	}
	return nil, nil
}

func (m *mockEventLogStore) Stats(ctx context.Context) (*model.EventLogStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx)
	}
	return &model.EventLogStats{}, nil
}

type mockOrderStatusStore struct {
	getByOrderIDFn func(ctx context.Context, orderID string) (*model.OrderStatusRecord, error)
	applyFn        func(ctx context.Context, update model.StatusUpdate) (bool, error)
	listRecentFn   func(ctx context.Context, limit int32) ([]model.OrderStatusRecord, error)
	listAllFn      func(ctx context.Context) ([]model.OrderStatusRecord, error)
	countFn        func(ctx context.Context) (int64, error)
	maxTSFn        func(ctx context.Context) (*time.Time, error)
	distributionFn func(ctx context.Context) ([]model.StatusCount, error)
	countOrphansFn func(ctx context.Context) (int64, error)
}

func (m *mockOrderStatusStore) GetByOrderID(ctx context.Context, orderID string) (*model.OrderStatusRecord, error) {
	if m.getByOrderIDFn != nil {
		return m.getByOrderIDFn(ctx, orderID)
	}
	return nil, store.ErrNotFound
}

func (m *mockOrderStatusStore) Apply(ctx context.Context, update model.StatusUpdate) (bool, error) {
	if m.applyFn != nil {
		return m.applyFn(ctx, update)
	}
	return true, nil
}

func (m *mockOrderStatusStore) ListRecent(ctx context.Context, limit int32) ([]model.OrderStatusRecord, error) {
	if m.listRecentFn != nil {
		return m.listRecentFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockOrderStatusStore) ListAll(ctx context.Context) ([]model.OrderStatusRecord, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}

func (m *mockOrderStatusStore) Count(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockOrderStatusStore) MaxLastUpdateTS(ctx context.Context) (*time.Time, error) {
	if m.maxTSFn != nil {
		return m.maxTSFn(ctx)
	}
	return nil, nil
}

func (m *mockOrderStatusStore) Distribution(ctx context.Context) ([]model.StatusCount, error) {
	if m.distributionFn != nil {
		return m.distributionFn(ctx)
	}
	return nil, nil
}

func (m *mockOrderStatusStore) CountOrphans(ctx context.Context) (int64, error) {
	if m.countOrphansFn != nil {
		return m.countOrphansFn(ctx)
	}
	return 0, nil
}

type mockOrderStore struct {
	upsertFn  func(ctx context.Context, order *model.Order) (*model.Order, error)
	getByIDFn func(ctx context.Context, orderID string) (*model.Order, error)
	countFn   func(ctx context.Context) (int64, error)
}

func (m *mockOrderStore) Upsert(ctx context.Context, order *model.Order) (*model.Order, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, order)
	}
	return order, nil
}

func (m *mockOrderStore) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, orderID)
	}
	return nil, store.ErrNotFound
}

func (m *mockOrderStore) Count(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type mockCheckpointStore struct {
	getFn func(ctx context.Context) (int64, error)
	setFn func(ctx context.Context, position int64) error
}

func (m *mockCheckpointStore) Get(ctx context.Context) (int64, error) {
	if m.getFn != nil {
		return m.getFn(ctx)
	}
	return 0, nil
}

func (m *mockCheckpointStore) Set(ctx context.Context, position int64) error {
	if m.setFn != nil {
		return m.setFn(ctx, position)
	}
	return nil
}

type mockQueueProducer struct {
	enqueueFn func(ctx context.Context, msg queue.EventMessage) error
}

func (m *mockQueueProducer) Enqueue(ctx context.Context, msg queue.EventMessage) error {
	if m.enqueueFn != nil {
		return m.enqueueFn(ctx, msg)
	}
	return nil
}

func (m *mockQueueProducer) Close() error {
	return nil
}

type mockStoreProvider struct {
	events     store.EventLogStore
	statuses   store.OrderStatusStore
	orders     store.OrderStore
	checkpoint store.CheckpointStore
}

func (m *mockStoreProvider) Events() store.EventLogStore {
	return m.events
}

func (m *mockStoreProvider) Statuses() store.OrderStatusStore {
	return m.statuses
}

func (m *mockStoreProvider) Orders() store.OrderStore {
	return m.orders
}

func (m *mockStoreProvider) Checkpoint() store.CheckpointStore {
	return m.checkpoint
}

type mockTxRunner struct {
	withTxFn func(ctx context.Context, fn func(stores service.StoreProvider) error) error
}

func (m *mockTxRunner) WithTx(ctx context.Context, fn func(stores service.StoreProvider) error) error {
	if m.withTxFn != nil {
		return m.withTxFn(ctx, fn)
	}
	return fn(&mockStoreProvider{})
}
