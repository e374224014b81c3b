package queue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// EventMessage is the wire form of a validated event on its way to the
// durable log. The lane has already been chosen by the partitioner.
type EventMessage struct {
	EventTS    time.Time
	OrderID    string
	NewStatus  string
	CustomerID *string
	TraceID    *string
	EventID    int64
	Lane       int
	Attempt    int
}

type Producer interface {
	Enqueue(ctx context.Context, msg EventMessage) error
	Close() error
}

type redisProducer struct {
	client       *redis.Client
	logger       *slog.Logger
	streamPrefix string
}

func NewRedisProducer(client *redis.Client, streamPrefix string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client:       client,
		streamPrefix: streamPrefix,
		logger:       logger,
	}
}

// LaneStream returns the Redis stream name for a lane.
func LaneStream(prefix string, lane int) string {
	return fmt.Sprintf("%s:%d", prefix, lane)
}

func (p *redisProducer) Enqueue(ctx context.Context, msg EventMessage) error {
	attempt := msg.Attempt
	if attempt <= 0 {
		attempt = 1
	}

	fields := map[string]any{
		"event_id":   msg.EventID,
		"order_id":   msg.OrderID,
		"new_status": msg.NewStatus,
		"event_ts":   msg.EventTS.Format(time.RFC3339Nano),
		"lane":       msg.Lane,
		"attempt":    attempt,
	}

	if msg.CustomerID != nil && *msg.CustomerID != "" {
		fields["customer_id"] = *msg.CustomerID
	}
	if msg.TraceID != nil && *msg.TraceID != "" {
		fields["trace_id"] = *msg.TraceID
	}

	stream := LaneStream(p.streamPrefix, msg.Lane)
	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: fields,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue event: %w", err)
	}

	p.logger.InfoContext(ctx, "enqueued event", "event_id", msg.EventID, "order_id", msg.OrderID, "new_status", msg.NewStatus, "lane", msg.Lane, "attempt", attempt)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}
