package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"orderpulse.app/pulse/core/db/sqlc"
	"orderpulse.app/pulse/internal/model"
)

type orderStatusStore struct {
	queries *sqlc.Queries
}

func newOrderStatusStore(queries *sqlc.Queries) OrderStatusStore {
	return &orderStatusStore{queries: queries}
}

func (s *orderStatusStore) GetByOrderID(ctx context.Context, orderID string) (*model.OrderStatusRecord, error) {
	row, err := s.queries.GetOrderStatus(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toOrderStatusModel(row), nil
}

// Apply runs the conditional upsert that carries the whole reconciliation
// contract: insert with previous_status NULL for a first-seen order, update
// only when the winner is strictly newer AND carries a different status,
// otherwise no-op. The single statement keeps per-order updates atomic;
// a reader never sees previous_status shifted without current_status.
func (s *orderStatusStore) Apply(ctx context.Context, update model.StatusUpdate) (bool, error) {
	affected, err := s.queries.ApplyOrderStatus(ctx, sqlc.ApplyOrderStatusParams{
		OrderID:       update.OrderID,
		CustomerID:    update.CustomerID,
		CurrentStatus: update.NewStatus,
		LastUpdateTs:  toTimestamptz(update.EventTS),
	})
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *orderStatusStore) ListRecent(ctx context.Context, limit int32) ([]model.OrderStatusRecord, error) {
	rows, err := s.queries.ListOrderStatuses(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toOrderStatusModels(rows), nil
}

func (s *orderStatusStore) ListAll(ctx context.Context) ([]model.OrderStatusRecord, error) {
	rows, err := s.queries.ListAllOrderStatuses(ctx)
	if err != nil {
		return nil, err
	}
	return toOrderStatusModels(rows), nil
}

func (s *orderStatusStore) Count(ctx context.Context) (int64, error) {
	return s.queries.CountOrderStatuses(ctx)
}

func (s *orderStatusStore) MaxLastUpdateTS(ctx context.Context) (*time.Time, error) {
	ts, err := s.queries.MaxLastUpdateTs(ctx)
	if err != nil {
		return nil, err
	}
	if !ts.Valid {
		return nil, nil
	}
	t := ts.Time
	return &t, nil
}

func (s *orderStatusStore) Distribution(ctx context.Context) ([]model.StatusCount, error) {
	rows, err := s.queries.StatusDistribution(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]model.StatusCount, 0, len(rows))
	for _, row := range rows {
		result = append(result, model.StatusCount{
			Status: row.CurrentStatus,
			Count:  row.OrderCount,
		})
	}
	return result, nil
}

func (s *orderStatusStore) CountOrphans(ctx context.Context) (int64, error) {
	return s.queries.CountOrphanedStatuses(ctx)
}

func toOrderStatusModel(row sqlc.OrderStatus) *model.OrderStatusRecord {
	return &model.OrderStatusRecord{
		OrderID:        row.OrderID,
		CustomerID:     row.CustomerID,
		PreviousStatus: row.PreviousStatus,
		CurrentStatus:  row.CurrentStatus,
		LastUpdateTS:   row.LastUpdateTs.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}

func toOrderStatusModels(rows []sqlc.OrderStatus) []model.OrderStatusRecord {
	result := make([]model.OrderStatusRecord, 0, len(rows))
	for _, row := range rows {
		result = append(result, *toOrderStatusModel(row))
	}
	return result
}
