package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"orderpulse.app/pulse/core/db/sqlc"
)

type checkpointStore struct {
	queries *sqlc.Queries
}

func newCheckpointStore(queries *sqlc.Queries) CheckpointStore {
	return &checkpointStore{queries: queries}
}

func (s *checkpointStore) Get(ctx context.Context) (int64, error) {
	position, err := s.queries.GetCheckpoint(ctx)
	if err != nil {
		// The singleton row is seeded by migration; missing means a fresh
		// database, which is equivalent to position 0.
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return position, nil
}

func (s *checkpointStore) Set(ctx context.Context, position int64) error {
	return s.queries.SetCheckpoint(ctx, position)
}
