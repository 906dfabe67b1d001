package token

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no matching refresh-token record exists,
// or when a conditional revocation matched no still-active row.
var ErrNotFound = errors.New("refresh token not found")

// Repo abstracts durable storage for refresh-token records.
//
// MarkRevoked must be conditional: it only flips rows whose revoked_at
// is still null and reports ErrNotFound otherwise. Two concurrent
// redemptions of the same value race on it; the loser observes
// ErrNotFound. That conditional update is the only concurrency
// guarantee the session manager relies on.
type Repo interface {
	// Get loads a record by its opaque value.
	Get(ctx context.Context, value string) (*RefreshToken, error)

	// Create persists a new record.
	Create(ctx context.Context, rt *RefreshToken) error

	// MarkRevoked soft-deletes a still-active record by ID.
	MarkRevoked(ctx context.Context, id string, now time.Time) error

	// DeleteByID hard-deletes a record (lazy expiry cleanup).
	DeleteByID(ctx context.Context, id string) error

	// RevokeAllActiveForOwner soft-deletes every active record owned
	// by the given account ("log out everywhere").
	RevokeAllActiveForOwner(ctx context.Context, owner Owner, now time.Time) error
}
