package promotions

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is the pgx-backed coupon Repo.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Repo = (*PostgresStore)(nil)

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) GetByCode(ctx context.Context, code string) (*Coupon, error) {
	var c Coupon
	err := s.pool.QueryRow(ctx, `
		SELECT id, code, description, discount_percent, tenant_id, active, valid_from, valid_until
		FROM coupons
		WHERE lower(code) = lower($1)
	`, code).Scan(&c.ID, &c.Code, &c.Description, &c.DiscountPercent, &c.TenantID, &c.Active, &c.ValidFrom, &c.ValidUntil)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *PostgresStore) Upsert(ctx context.Context, c *Coupon) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO coupons (id, code, description, discount_percent, tenant_id, active, valid_from, valid_until)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			code = $2, description = $3, discount_percent = $4,
			tenant_id = $5, active = $6, valid_from = $7, valid_until = $8
	`, c.ID, c.Code, c.Description, c.DiscountPercent, c.TenantID, c.Active, c.ValidFrom, c.ValidUntil)
	return err
}
