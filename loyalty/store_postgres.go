package loyalty

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is the pgx-backed ledger Repo.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Repo = (*PostgresStore)(nil)

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Append(ctx context.Context, e *Entry) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO loyalty_entries (id, owner_id, delta, reason, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, e.ID, e.OwnerID, e.Delta, e.Reason, e.CreatedAt)
	return err
}

func (s *PostgresStore) ListForOwner(ctx context.Context, ownerID string, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, owner_id, delta, reason, created_at
		FROM loyalty_entries
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Delta, &e.Reason, &e.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

func (s *PostgresStore) Balance(ctx context.Context, ownerID string) (int, error) {
	var balance int
	err := s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(delta), 0)
		FROM loyalty_entries
		WHERE owner_id = $1
	`, ownerID).Scan(&balance)
	return balance, err
}
