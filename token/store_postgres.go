package token

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is the pgx-backed Repo. The refresh_tokens table keeps
// two nullable foreign-key columns (admin_id, user_id) with a CHECK
// constraint that exactly one is set; rows are converted to and from
// the Owner union at this boundary.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Repo = (*PostgresStore)(nil)

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func ownerColumns(owner Owner) (adminID, userID *string) {
	id := owner.ID()
	switch owner.Kind() {
	case OwnerKindAdmin:
		return &id, nil
	default:
		return nil, &id
	}
}

func ownerFromColumns(adminID, userID *string) Owner {
	if adminID != nil {
		return AdminOwner(*adminID)
	}
	if userID != nil {
		return UserOwner(*userID)
	}
	return Owner{}
}

func (s *PostgresStore) Get(ctx context.Context, value string) (*RefreshToken, error) {
	var (
		rt              RefreshToken
		adminID, userID *string
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, token, admin_id, user_id, issued_at, expires_at, revoked_at
		FROM refresh_tokens
		WHERE token = $1
	`, value).Scan(&rt.ID, &rt.Value, &adminID, &userID, &rt.IssuedAt, &rt.ExpiresAt, &rt.RevokedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	rt.Owner = ownerFromColumns(adminID, userID)
	return &rt, nil
}

func (s *PostgresStore) Create(ctx context.Context, rt *RefreshToken) error {
	adminID, userID := ownerColumns(rt.Owner)
	_, err := s.pool.Exec(ctx, `
		INSERT INTO refresh_tokens (id, token, admin_id, user_id, issued_at, expires_at, revoked_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULL)
	`, rt.ID, rt.Value, adminID, userID, rt.IssuedAt, rt.ExpiresAt)
	return err
}

// MarkRevoked flips a single still-active row. The revoked_at IS NULL
// predicate is what arbitrates concurrent rotations: only one caller
// sees an affected row.
func (s *PostgresStore) MarkRevoked(ctx context.Context, id string, now time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE refresh_tokens
		SET revoked_at = $2
		WHERE id = $1 AND revoked_at IS NULL
	`, id, now)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteByID(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM refresh_tokens
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) RevokeAllActiveForOwner(ctx context.Context, owner Owner, now time.Time) error {
	var column string
	switch owner.Kind() {
	case OwnerKindAdmin:
		column = "admin_id"
	default:
		column = "user_id"
	}
	_, err := s.pool.Exec(ctx, `
		UPDATE refresh_tokens
		SET revoked_at = $2
		WHERE `+column+` = $1 AND revoked_at IS NULL
	`, owner.ID(), now)
	return err
}
