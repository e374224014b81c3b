package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"orderpulse.app/pulse/core/db/sqlc"
	"orderpulse.app/pulse/internal/model"
)

type orderStore struct {
	queries *sqlc.Queries
}

func newOrderStore(queries *sqlc.Queries) OrderStore {
	return &orderStore{queries: queries}
}

func (s *orderStore) Upsert(ctx context.Context, order *model.Order) (*model.Order, error) {
	row, err := s.queries.UpsertOrder(ctx, sqlc.UpsertOrderParams{
		OrderID:    order.OrderID,
		CustomerID: order.CustomerID,
	})
	if err != nil {
		return nil, err
	}
	return toOrderModel(row), nil
}

func (s *orderStore) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	row, err := s.queries.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toOrderModel(row), nil
}

func (s *orderStore) Count(ctx context.Context) (int64, error) {
	return s.queries.CountOrders(ctx)
}

func toOrderModel(row sqlc.Order) *model.Order {
	return &model.Order{
		OrderID:    row.OrderID,
		CustomerID: row.CustomerID,
		CreatedAt:  row.CreatedAt.Time,
	}
}
