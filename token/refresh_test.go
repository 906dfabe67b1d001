package token_test

import (
	"testing"
	"time"

	"github.com/stayware/go-property-server/token"
	"github.com/stretchr/testify/require"
)

func TestOwnerConstructors(t *testing.T) {
	admin := token.AdminOwner("admin-1")
	require.Equal(t, token.OwnerKindAdmin, admin.Kind())
	require.Equal(t, "admin-1", admin.ID())
	require.False(t, admin.IsZero())

	user := token.UserOwner("user-1")
	require.Equal(t, token.OwnerKindUser, user.Kind())
	require.Equal(t, "user-1", user.ID())
	require.False(t, user.IsZero())

	require.True(t, token.Owner{}.IsZero())
	require.NotEqual(t, token.AdminOwner("x"), token.UserOwner("x"))
}

func TestNewRefreshToken(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	rt, err := token.NewRefreshToken(token.UserOwner("user-1"), now, token.DefaultRefreshTokenTTL)
	require.NoError(t, err)
	require.NotEmpty(t, rt.ID)
	require.Len(t, rt.Value, 64) // 32 random bytes, hex encoded
	require.Equal(t, now, rt.IssuedAt)
	require.Equal(t, now.Add(token.DefaultRefreshTokenTTL), rt.ExpiresAt)
	require.Nil(t, rt.RevokedAt)
	require.True(t, rt.Valid(now))
}

func TestNewRefreshTokenRequiresOwner(t *testing.T) {
	_, err := token.NewRefreshToken(token.Owner{}, time.Now(), token.DefaultRefreshTokenTTL)
	require.Error(t, err)
}

func TestRefreshTokenLifecyclePredicates(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	rt, err := token.NewRefreshToken(token.UserOwner("user-1"), now, time.Hour)
	require.NoError(t, err)

	require.True(t, rt.Valid(now))
	require.False(t, rt.Expired(now.Add(59*time.Minute)))
	require.True(t, rt.Expired(now.Add(time.Hour))) // expiry instant is expired
	require.False(t, rt.Valid(now.Add(2*time.Hour)))

	revokedAt := now.Add(time.Minute)
	rt.RevokedAt = &revokedAt
	require.True(t, rt.Revoked())
	require.False(t, rt.Valid(now.Add(2*time.Minute)))
}

func TestNewRefreshValueIsUnique(t *testing.T) {
	a, err := token.NewRefreshValue()
	require.NoError(t, err)
	b, err := token.NewRefreshValue()
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
