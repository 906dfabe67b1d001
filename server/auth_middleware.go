package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/stayware/go-property-server/token"
)

type contextKey string

const principalContextKey contextKey = "principal"

// Principal is the authenticated caller attached to the request
// context by AuthMiddleware.
type Principal struct {
	ID            string
	Email         string
	Role          string
	TenantID      *string
	PlatformAdmin bool
}

// Owner maps the principal back onto the refresh-token owner union.
func (p Principal) Owner() token.Owner {
	if p.PlatformAdmin {
		return token.AdminOwner(p.ID)
	}
	return token.UserOwner(p.ID)
}

// PrincipalFromContext returns the authenticated caller, if any.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(Principal)
	return p, ok
}

// AuthMiddleware verifies the bearer access token and attaches the
// resulting Principal to the request context.
func (s *Server) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "missing or malformed authorization header")
			return
		}

		claims, err := s.codec.Verify(raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired access token")
			return
		}

		principal := Principal{
			ID:            claims.Subject,
			Email:         claims.Email,
			Role:          claims.Role,
			TenantID:      claims.TenantID,
			PlatformAdmin: claims.PlatformAdmin,
		}

		ctx := context.WithValue(r.Context(), principalContextKey, principal)
		next(w, r.WithContext(ctx))
	}
}

// AdminMiddleware gates a route to platform admins. Must run after
// AuthMiddleware.
func (s *Server) AdminMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok || !principal.PlatformAdmin {
			writeError(w, http.StatusForbidden, "forbidden", "platform admin access required")
			return
		}
		next(w, r)
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
