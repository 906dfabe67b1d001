package token_test

import (
	"testing"
	"time"

	"github.com/stayware/go-property-server/internal/utils"
	"github.com/stayware/go-property-server/token"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	testIssuer = "com.testissuer"
)

func TestSignAndVerify(t *testing.T) {
	codec := token.NewCodec(testSecret, testIssuer)

	claims := token.AccessClaims{
		Email:    "alice@example.com",
		Role:     "user",
		TenantID: utils.Ptr("tenant-1"),
	}
	claims.Subject = "user-1"

	raw, err := codec.Sign(claims, 15*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	parsed, err := codec.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", parsed.Subject)
	require.Equal(t, "alice@example.com", parsed.Email)
	require.Equal(t, "user", parsed.Role)
	require.Equal(t, "tenant-1", utils.Value(parsed.TenantID))
	require.Equal(t, testIssuer, parsed.Issuer)
	require.False(t, parsed.PlatformAdmin)
	require.NotEmpty(t, parsed.ID)
}

func TestVerifyExpiredToken(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	codec := token.NewCodec(testSecret, testIssuer, token.WithNowFunc(func() time.Time { return now }))

	raw, err := codec.Sign(token.AccessClaims{Email: "alice@example.com"}, 15*time.Minute)
	require.NoError(t, err)

	now = now.Add(16 * time.Minute)
	_, err = codec.Verify(raw)
	require.Error(t, err)
}

func TestVerifyWrongSecret(t *testing.T) {
	signer := token.NewCodec(testSecret, testIssuer)
	verifier := token.NewCodec("other-secret", testIssuer)

	raw, err := signer.Sign(token.AccessClaims{Email: "alice@example.com"}, 15*time.Minute)
	require.NoError(t, err)

	_, err = verifier.Verify(raw)
	require.Error(t, err)
}

func TestVerifyWrongIssuer(t *testing.T) {
	signer := token.NewCodec(testSecret, "com.otherissuer")
	verifier := token.NewCodec(testSecret, testIssuer)

	raw, err := signer.Sign(token.AccessClaims{Email: "alice@example.com"}, 15*time.Minute)
	require.NoError(t, err)

	_, err = verifier.Verify(raw)
	require.Error(t, err)
}

func TestVerifyGarbage(t *testing.T) {
	codec := token.NewCodec(testSecret, testIssuer)

	_, err := codec.Verify("not.a.jwt")
	require.Error(t, err)
}
