package accounts

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repositories when no account matches.
var ErrNotFound = errors.New("account not found")

// UserRepo abstracts storage for tenant-side User accounts.
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
}

// AdminRepo abstracts storage for platform Admin accounts.
type AdminRepo interface {
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	GetByID(ctx context.Context, id string) (*Admin, error)
	Create(ctx context.Context, admin *Admin) error
}
