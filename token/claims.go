package token

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the payload carried inside a signed access token.
// It is never persisted; the token is valid until its embedded expiry
// and there is no revocation list for access tokens.
type AccessClaims struct {
	Email         string  `json:"email"`
	Role          string  `json:"role"`
	TenantID      *string `json:"tenant_id,omitempty"`
	PlatformAdmin bool    `json:"platform_admin,omitempty"`

	jwt.RegisteredClaims
}
