package token

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// DefaultRefreshTokenTTL is how long a refresh token stays redeemable.
const DefaultRefreshTokenTTL = 7 * 24 * time.Hour

// refreshValueLength is the number of random bytes in a refresh token
// value (256 bits, hex-encoded on the wire).
const refreshValueLength = 32

// OwnerKind discriminates the two account tables a refresh token can
// belong to.
type OwnerKind string

const (
	OwnerKindAdmin OwnerKind = "admin"
	OwnerKindUser  OwnerKind = "user"
)

// Owner identifies the single account a refresh token belongs to.
// It is a tagged value rather than two nullable foreign keys, so
// "both populated" and "neither populated" cannot be represented.
type Owner struct {
	kind OwnerKind
	id   string
}

// AdminOwner tags an admin account as the token owner.
func AdminOwner(id string) Owner {
	return Owner{kind: OwnerKindAdmin, id: id}
}

// UserOwner tags a user account as the token owner.
func UserOwner(id string) Owner {
	return Owner{kind: OwnerKindUser, id: id}
}

func (o Owner) Kind() OwnerKind { return o.kind }
func (o Owner) ID() string      { return o.id }

// IsZero reports whether the owner was never set.
func (o Owner) IsZero() bool { return o.kind == "" || o.id == "" }

// RefreshToken is the durable record backing one issued session.
// Lifecycle: active -> revoked (logout or rotation) or
// active -> deleted (found expired during a redemption attempt).
// Neither transition is reversible.
type RefreshToken struct {
	ID        string
	Value     string // opaque random value, hex-encoded
	Owner     Owner
	IssuedAt  time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Revoked reports whether the record has been consumed or logged out.
func (rt *RefreshToken) Revoked() bool {
	return rt.RevokedAt != nil
}

// Expired reports whether the record is past its expiry at the given time.
func (rt *RefreshToken) Expired(now time.Time) bool {
	return !now.Before(rt.ExpiresAt)
}

// Valid reports whether the record may still be redeemed.
func (rt *RefreshToken) Valid(now time.Time) bool {
	return !rt.Revoked() && !rt.Expired(now)
}

// NewRefreshValue generates a cryptographically random refresh token value.
func NewRefreshValue() (string, error) {
	tokenBytes := make([]byte, refreshValueLength)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", errors.Wrap(err, "NewRefreshValue rand.Read")
	}
	return hex.EncodeToString(tokenBytes), nil
}

// NewRefreshToken builds an unrevoked record for the given owner,
// expiring ttl after now.
func NewRefreshToken(owner Owner, now time.Time, ttl time.Duration) (*RefreshToken, error) {
	if owner.IsZero() {
		return nil, errors.New("NewRefreshToken owner is required")
	}
	value, err := NewRefreshValue()
	if err != nil {
		return nil, err
	}
	return &RefreshToken{
		ID:        uuid.New().String(),
		Value:     value,
		Owner:     owner,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}, nil
}
