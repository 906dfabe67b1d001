package notifications

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is the pgx-backed notification Repo.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Repo = (*PostgresStore)(nil)

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, n *Notification) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO notifications (id, owner_id, tenant_id, title, body, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, n.ID, n.OwnerID, n.TenantID, n.Title, n.Body, n.Read, n.CreatedAt)
	return err
}

func (s *PostgresStore) ListForOwner(ctx context.Context, ownerID string, limit int) ([]*Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, owner_id, tenant_id, title, body, read, created_at
		FROM notifications
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*Notification, 0)
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.TenantID, &n.Title, &n.Body, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

func (s *PostgresStore) MarkRead(ctx context.Context, id, ownerID string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE notifications
		SET read = TRUE
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id, ownerID string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM notifications
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
