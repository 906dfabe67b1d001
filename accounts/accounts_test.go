package accounts_test

import (
	"testing"

	"github.com/stayware/go-property-server/accounts"
	"github.com/stretchr/testify/require"
)

func TestValidatePasswordStrength(t *testing.T) {
	t.Run("valid password", func(t *testing.T) {
		require.NoError(t, accounts.ValidatePasswordStrength("Password123"))
	})

	t.Run("too short", func(t *testing.T) {
		err := accounts.ValidatePasswordStrength("Pw1")
		require.Error(t, err)
		require.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("missing uppercase", func(t *testing.T) {
		err := accounts.ValidatePasswordStrength("password123")
		require.Error(t, err)
		require.Contains(t, err.Error(), "uppercase")
	})

	t.Run("missing lowercase", func(t *testing.T) {
		err := accounts.ValidatePasswordStrength("PASSWORD123")
		require.Error(t, err)
		require.Contains(t, err.Error(), "lowercase")
	})

	t.Run("missing number", func(t *testing.T) {
		err := accounts.ValidatePasswordStrength("PasswordOnly")
		require.Error(t, err)
		require.Contains(t, err.Error(), "number")
	})
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := accounts.HashPassword("Password123")
	require.NoError(t, err)
	require.NotEqual(t, "Password123", hash)

	require.True(t, accounts.CheckPasswordHash("Password123", hash))
	require.False(t, accounts.CheckPasswordHash("WrongPassword1", hash))
}

func TestAccountActive(t *testing.T) {
	user := accounts.User{Status: accounts.StatusActive}
	require.True(t, user.Active())
	user.Status = accounts.StatusSuspended
	require.False(t, user.Active())

	admin := accounts.Admin{Status: accounts.StatusActive}
	require.True(t, admin.Active())
	admin.Status = accounts.StatusSuspended
	require.False(t, admin.Active())
}
