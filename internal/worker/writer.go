package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"orderpulse.app/pulse/common/logger"
	"orderpulse.app/pulse/internal/model"
	"orderpulse.app/pulse/internal/queue"
	"orderpulse.app/pulse/internal/store"
)

type Config struct {
	MaxAttempts int
}

// Writer drains one lane stream into the append-only event log. Each lane
// gets its own Writer so a slow lane never stalls the others.
type Writer struct {
	consumer *queue.RedisConsumer
	events   store.EventLogStore
	cfg      Config
	lane     int

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func New(consumer *queue.RedisConsumer, events store.EventLogStore, lane int, cfg Config) *Writer {
	return &Writer{
		consumer:  consumer,
		events:    events,
		cfg:       cfg,
		lane:      lane,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (w *Writer) Run(ctx context.Context) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "pulse.worker.writer",
		Lane:      &w.lane,
	})

	defer close(w.stoppedCh)

	slog.InfoContext(ctx, "log writer started", "stream", w.consumer.Stream())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			slog.InfoContext(ctx, "log writer stopping")
			return nil
		default:
			if err := w.processOneBatch(ctx); err != nil {
				slog.ErrorContext(ctx, "batch processing error", "error", err)
				// Brief backoff on error
				time.Sleep(time.Second)
			}
		}
	}
}

func (w *Writer) Stop() {
	close(w.stopCh)
	<-w.stoppedCh
}

func (w *Writer) processOneBatch(ctx context.Context) error {
	messages, err := w.consumer.Read(ctx)
	if err != nil {
		return fmt.Errorf("reading from stream: %w", err)
	}

	for _, msg := range messages {
		if err := w.processMessageSafe(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "message processing failed",
				"error", err,
				"message_id", msg.ID,
				"event_id", msg.EventID,
				"order_id", msg.OrderID)
			w.handleFailedMessage(ctx, msg, err)
		}
	}

	return nil
}

func (w *Writer) processMessageSafe(ctx context.Context, msg queue.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic recovered in message processing",
				"panic", r,
				"message_id", msg.ID,
				"event_id", msg.EventID)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return w.ProcessMessage(ctx, msg)
}

// ProcessMessage appends one event to the log and acknowledges the stream
// entry. Exported so it can be reused by the reclaimer.
//
// Append happens before ACK, so a crash between the two leaves the message
// pending and the reclaimer appends it again. The duplicate row is harmless:
// materialization folds by order, not by row, and applying the same winner
// twice is a no-op.
func (w *Writer) ProcessMessage(ctx context.Context, msg queue.Message) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		OrderID: &msg.OrderID,
		EventID: &msg.EventID,
	})

	event, err := w.events.Append(ctx, &model.Event{
		EventID:    msg.EventID,
		OrderID:    msg.OrderID,
		CustomerID: msg.CustomerID,
		NewStatus:  msg.NewStatus,
		EventTS:    msg.EventTS,
		Lane:       msg.Lane,
	})
	if err != nil {
		// Not ACKed: redelivery or the reclaimer will retry the append.
		return fmt.Errorf("appending event: %w", err)
	}

	if err := w.consumer.Ack(ctx, msg); err != nil {
		// Log but don't fail: the reclaimer will re-append, which is safe.
		slog.WarnContext(ctx, "failed to ACK message",
			"error", err,
			"message_id", msg.ID)
	}

	slog.InfoContext(ctx, "event appended to log",
		"position", event.Position,
		"new_status", msg.NewStatus,
		"attempt", msg.Attempt)

	return nil
}

func (w *Writer) handleFailedMessage(ctx context.Context, msg queue.Message, err error) {
	if msg.Attempt >= w.cfg.MaxAttempts {
		slog.ErrorContext(ctx, "max attempts reached, sending to DLQ",
			"message_id", msg.ID,
			"event_id", msg.EventID,
			"attempts", msg.Attempt)
		if dlqErr := w.consumer.SendDLQ(ctx, msg, err.Error()); dlqErr != nil {
			slog.ErrorContext(ctx, "failed to send to DLQ", "error", dlqErr)
		}
		return
	}

	slog.WarnContext(ctx, "requeuing failed message",
		"message_id", msg.ID,
		"event_id", msg.EventID,
		"attempt", msg.Attempt)
	if requeueErr := w.consumer.Requeue(ctx, msg, err.Error()); requeueErr != nil {
		slog.ErrorContext(ctx, "failed to requeue message", "error", requeueErr)
	}
}
