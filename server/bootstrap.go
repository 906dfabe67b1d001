package server

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stayware/go-property-server/accounts"
	"github.com/stayware/go-property-server/tenants"
)

// InitialiseSystem creates the system tenant and the platform admin
// account on first start. Both steps are idempotent. When no admin
// password is configured, a random one is generated and logged once.
func (s *Server) InitialiseSystem(ctx context.Context) error {
	if err := s.initialiseSystemTenant(ctx); err != nil {
		return errors.Wrap(err, "[Server InitialiseSystem] failed to bootstrap system tenant")
	}

	generatedPassword, err := s.createPlatformAdmin(ctx)
	if err != nil {
		return errors.Wrap(err, "[Server InitialiseSystem] failed to bootstrap platform admin")
	}

	if generatedPassword != "" {
		s.log.Info().
			Str("email", s.config.GetPlatformAdminEmail()).
			Str("password", generatedPassword).
			Msg("platform admin created, change the password after first login")
	}
	return nil
}

// initialiseSystemTenant creates the system tenant if it doesn't exist
func (s *Server) initialiseSystemTenant(ctx context.Context) error {
	systemTenantID := s.config.GetSystemTenantID()

	_, err := s.repos.Tenants.Get(ctx, systemTenantID)
	if err == nil {
		return nil
	}
	if !stderrors.Is(err, tenants.ErrNotFound) {
		return errors.Wrap(err, "[server initialiseSystemTenant] failed to look up system tenant")
	}

	systemTenant := &tenants.Tenant{
		ID:        systemTenantID,
		Name:      s.config.GetSystemTenantName(),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repos.Tenants.Upsert(ctx, systemTenant); err != nil {
		return errors.Wrap(err, "[server initialiseSystemTenant] failed to create system tenant")
	}
	return nil
}

// createPlatformAdmin creates the platform admin account if none
// exists. Returns the generated password on first creation (empty
// string if the account already exists or a password was configured).
func (s *Server) createPlatformAdmin(ctx context.Context) (string, error) {
	email := s.config.GetPlatformAdminEmail()

	_, err := s.repos.Admins.GetByEmail(ctx, email)
	if err == nil {
		return "", nil
	}
	if !stderrors.Is(err, accounts.ErrNotFound) {
		return "", errors.Wrap(err, "[server createPlatformAdmin] failed to look up platform admin")
	}

	password := s.config.GetPlatformAdminPassword()
	generated := ""
	if password == "" {
		passwordBytes := make([]byte, 16)
		if _, err := rand.Read(passwordBytes); err != nil {
			return "", errors.Wrap(err, "[server createPlatformAdmin] failed to generate password")
		}
		password = base64.URLEncoding.EncodeToString(passwordBytes)
		generated = password
	}

	passwordHash, err := accounts.HashPassword(password)
	if err != nil {
		return "", errors.Wrap(err, "[server createPlatformAdmin] failed to hash password")
	}

	admin := &accounts.Admin{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    "Platform",
		LastName:     "Administrator",
		Role:         accounts.RolePlatformAdmin,
		Status:       accounts.StatusActive,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repos.Admins.Create(ctx, admin); err != nil {
		return "", errors.Wrap(err, "[server createPlatformAdmin] failed to create platform admin")
	}
	return generated, nil
}
