package tenants

import (
	"context"
	"errors"
	"time"
)

// Tenant is a managed property (hotel, residence, complex) that user
// accounts and coupons reference.
type Tenant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Domain    string    `json:"domain,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

var ErrNotFound = errors.New("tenant not found")

// Repo abstracts tenant storage.
type Repo interface {
	Get(ctx context.Context, id string) (*Tenant, error)
	Upsert(ctx context.Context, tenant *Tenant) error
}
