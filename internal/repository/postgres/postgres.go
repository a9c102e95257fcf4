package postgres

import (
	"context"
	"database/sql"

	"travana-referral-dashboard/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ShareMessageRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		ShareMessageRepository: NewShareMessageRepository(db),
	}
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
