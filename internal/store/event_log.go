package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"orderpulse.app/pulse/core/db/sqlc"
	"orderpulse.app/pulse/internal/model"
)

type eventLogStore struct {
	queries *sqlc.Queries
}

func newEventLogStore(queries *sqlc.Queries) EventLogStore {
	return &eventLogStore{queries: queries}
}

func (s *eventLogStore) Append(ctx context.Context, event *model.Event) (*model.Event, error) {
	row, err := s.queries.AppendEvent(ctx, sqlc.AppendEventParams{
		EventID:    event.EventID,
		OrderID:    event.OrderID,
		CustomerID: event.CustomerID,
		NewStatus:  event.NewStatus,
		EventTs:    toTimestamptz(event.EventTS),
		Lane:       int32(event.Lane),
	})
	if err != nil {
		return nil, err
	}
	return toEventModel(row), nil
}

func (s *eventLogStore) ListSince(ctx context.Context, position int64) ([]model.Event, error) {
	rows, err := s.queries.ListEventsSincePosition(ctx, position)
	if err != nil {
		return nil, err
	}
	result := make([]model.Event, 0, len(rows))
	for _, row := range rows {
		result = append(result, *toEventModel(row))
	}
	return result, nil
}

func (s *eventLogStore) Stats(ctx context.Context) (*model.EventLogStats, error) {
	row, err := s.queries.GetEventStats(ctx)
	if err != nil {
		return nil, err
	}
	stats := &model.EventLogStats{
		TotalEvents:    row.TotalEvents,
		DistinctOrders: row.DistinctOrders,
	}
	if row.LatestEventTs.Valid {
		t := row.LatestEventTs.Time
		stats.LatestEventTS = &t
	}
	return stats, nil
}

func toEventModel(row sqlc.Event) *model.Event {
	return &model.Event{
		Position:   row.Position,
		EventID:    row.EventID,
		OrderID:    row.OrderID,
		CustomerID: row.CustomerID,
		NewStatus:  row.NewStatus,
		EventTS:    row.EventTs.Time,
		Lane:       int(row.Lane),
		ReceivedAt: row.ReceivedAt.Time,
	}
}

func toTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
