package accounts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresUserStore is the pgx-backed UserRepo.
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

var _ UserRepo = (*PostgresUserStore)(nil)

func NewPostgresUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

const userColumns = `id, email, password_hash, first_name, last_name, role, status, tenant_id, created_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Role, &u.Status, &u.TenantID, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	return scanUser(s.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email))
}

func (s *PostgresUserStore) GetByID(ctx context.Context, id string) (*User, error) {
	return scanUser(s.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id))
}

func (s *PostgresUserStore) Create(ctx context.Context, user *User) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, last_name, role, status, tenant_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Role, user.Status, user.TenantID, user.CreatedAt)
	return err
}

// PostgresAdminStore is the pgx-backed AdminRepo.
type PostgresAdminStore struct {
	pool *pgxpool.Pool
}

var _ AdminRepo = (*PostgresAdminStore)(nil)

func NewPostgresAdminStore(pool *pgxpool.Pool) *PostgresAdminStore {
	return &PostgresAdminStore{pool: pool}
}

const adminColumns = `id, email, password_hash, first_name, last_name, role, status, created_at`

func scanAdmin(row pgx.Row) (*Admin, error) {
	var a Admin
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.FirstName, &a.LastName, &a.Role, &a.Status, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *PostgresAdminStore) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	return scanAdmin(s.pool.QueryRow(ctx, `
		SELECT `+adminColumns+`
		FROM admins
		WHERE email = $1
	`, email))
}

func (s *PostgresAdminStore) GetByID(ctx context.Context, id string) (*Admin, error) {
	return scanAdmin(s.pool.QueryRow(ctx, `
		SELECT `+adminColumns+`
		FROM admins
		WHERE id = $1
	`, id))
}

func (s *PostgresAdminStore) Create(ctx context.Context, admin *Admin) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO admins (id, email, password_hash, first_name, last_name, role, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, admin.ID, admin.Email, admin.PasswordHash, admin.FirstName, admin.LastName, admin.Role, admin.Status, admin.CreatedAt)
	return err
}
