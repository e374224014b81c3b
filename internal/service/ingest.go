package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"orderpulse.app/pulse/common/id"
	"orderpulse.app/pulse/internal/model"
	"orderpulse.app/pulse/internal/partition"
	"orderpulse.app/pulse/internal/queue"
	"orderpulse.app/pulse/internal/store"
)

var (
	// ErrInvalidKey marks an event whose order identifier is missing or
	// malformed. The event is never routed; the source may resend a
	// corrected one.
	ErrInvalidKey = errors.New("invalid order key")
	// ErrValidation marks an event rejected before entering the log.
	ErrValidation = errors.New("event validation failed")
)

type IngestParams struct {
	EventTS    time.Time
	OrderID    string
	NewStatus  string
	CustomerID *string
	TraceID    *string
}

type IngestResult struct {
	EventID int64
	Lane    int
}

type IngestService interface {
	// Ingest validates an incoming event, routes it to its lane, and
	// enqueues it for the log writer. Rejections are terminal for the
	// offending event and are counted for monitoring.
	Ingest(ctx context.Context, params IngestParams) (*IngestResult, error)
	// RegisterOrder upserts a row in the order master. Events for orders
	// that were never registered still materialize; the validator reports
	// them as orphans.
	RegisterOrder(ctx context.Context, orderID string, customerID *string) (*model.Order, error)
	Metrics() IngestMetricsSnapshot
}

type ingestService struct {
	orders  store.OrderStore
	queue   queue.Producer
	logger  *slog.Logger
	metrics *ingestMetrics
	lanes   int
}

func NewIngestService(orders store.OrderStore, producer queue.Producer, lanes int, reg prometheus.Registerer, logger *slog.Logger) IngestService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ingestService{
		orders:  orders,
		queue:   producer,
		lanes:   lanes,
		metrics: newIngestMetrics(reg),
		logger:  logger,
	}
}

func (s *ingestService) Ingest(ctx context.Context, params IngestParams) (*IngestResult, error) {
	lane, err := partition.Partition(params.OrderID, s.lanes)
	if err != nil {
		if errors.Is(err, partition.ErrInvalidKey) {
			s.metrics.rejectedInvalidKey.Inc()
			s.logger.WarnContext(ctx, "event dropped: invalid order key", "new_status", params.NewStatus)
			return nil, fmt.Errorf("%w: order_id is required", ErrInvalidKey)
		}
		return nil, fmt.Errorf("partitioning event: %w", err)
	}

	if params.NewStatus == "" {
		s.metrics.rejectedValidation.Inc()
		return nil, fmt.Errorf("%w: new_status is required", ErrValidation)
	}
	if params.EventTS.IsZero() {
		s.metrics.rejectedValidation.Inc()
		return nil, fmt.Errorf("%w: event_ts is required", ErrValidation)
	}

	eventID := id.New()
	if err := s.queue.Enqueue(ctx, queue.EventMessage{
		EventID:    eventID,
		OrderID:    params.OrderID,
		CustomerID: params.CustomerID,
		NewStatus:  params.NewStatus,
		EventTS:    params.EventTS,
		Lane:       lane,
		TraceID:    params.TraceID,
		Attempt:    1,
	}); err != nil {
		return nil, fmt.Errorf("enqueueing event: %w", err)
	}

	s.metrics.accepted.Inc()
	return &IngestResult{EventID: eventID, Lane: lane}, nil
}

func (s *ingestService) RegisterOrder(ctx context.Context, orderID string, customerID *string) (*model.Order, error) {
	if _, err := partition.Partition(orderID, s.lanes); err != nil {
		return nil, fmt.Errorf("%w: order_id is required", ErrInvalidKey)
	}

	order, err := s.orders.Upsert(ctx, &model.Order{
		OrderID:    orderID,
		CustomerID: customerID,
	})
	if err != nil {
		return nil, fmt.Errorf("upserting order: %w", err)
	}
	return order, nil
}

func (s *ingestService) Metrics() IngestMetricsSnapshot {
	return s.metrics.snapshot()
}
