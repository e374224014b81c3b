package service

import (
	"context"
	"fmt"
	"time"

	"orderpulse.app/pulse/internal/model"
	"orderpulse.app/pulse/internal/store"
)

// MonitorSummary mirrors what the operations dashboard reads: totals over
// the raw log plus freshness of the materialized table.
type MonitorSummary struct {
	LatestEventTS    *time.Time            `json:"latest_event_ts,omitempty"`
	MaxLastUpdateTS  *time.Time            `json:"max_last_update_ts,omitempty"`
	Ingest           IngestMetricsSnapshot `json:"ingest"`
	TotalEvents      int64                 `json:"total_events"`
	DistinctOrders   int64                 `json:"distinct_orders"`
	TrackedOrders    int64                 `json:"tracked_orders"`
	RegisteredOrders int64                 `json:"registered_orders"`
}

// MonitorService serves read-only queries for the dashboard. It never
// writes and never blocks the materializer.
type MonitorService interface {
	Summary(ctx context.Context) (*MonitorSummary, error)
	Distribution(ctx context.Context) ([]model.StatusCount, error)
	RecentOrders(ctx context.Context, limit int32) ([]model.OrderStatusRecord, error)
	OrderStatus(ctx context.Context, orderID string) (*model.OrderStatusRecord, error)
}

type monitorService struct {
	events   store.EventLogStore
	statuses store.OrderStatusStore
	orders   store.OrderStore
	ingest   IngestService
}

func NewMonitorService(events store.EventLogStore, statuses store.OrderStatusStore, orders store.OrderStore, ingest IngestService) MonitorService {
	return &monitorService{
		events:   events,
		statuses: statuses,
		orders:   orders,
		ingest:   ingest,
	}
}

func (s *monitorService) Summary(ctx context.Context) (*MonitorSummary, error) {
	stats, err := s.events.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading event stats: %w", err)
	}

	tracked, err := s.statuses.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting status records: %w", err)
	}

	registered, err := s.orders.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting orders: %w", err)
	}

	maxTS, err := s.statuses.MaxLastUpdateTS(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading max last_update_ts: %w", err)
	}

	return &MonitorSummary{
		TotalEvents:      stats.TotalEvents,
		DistinctOrders:   stats.DistinctOrders,
		LatestEventTS:    stats.LatestEventTS,
		TrackedOrders:    tracked,
		RegisteredOrders: registered,
		MaxLastUpdateTS:  maxTS,
		Ingest:           s.ingest.Metrics(),
	}, nil
}

func (s *monitorService) Distribution(ctx context.Context) ([]model.StatusCount, error) {
	return s.statuses.Distribution(ctx)
}

func (s *monitorService) RecentOrders(ctx context.Context, limit int32) ([]model.OrderStatusRecord, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	return s.statuses.ListRecent(ctx, limit)
}

func (s *monitorService) OrderStatus(ctx context.Context, orderID string) (*model.OrderStatusRecord, error) {
	return s.statuses.GetByOrderID(ctx, orderID)
}
