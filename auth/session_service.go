// Package auth holds the session manager: the single authority for
// turning a credential-proving request into a token pair, and for
// invalidating token pairs again.
package auth

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stayware/go-property-server/accounts"
	"github.com/stayware/go-property-server/internal/apperrors"
	"github.com/stayware/go-property-server/token"
)

const (
	defaultAccessTokenTTL = 15 * time.Minute
)

// Repos holds all repository dependencies for the SessionService.
type Repos struct {
	Users  accounts.UserRepo  // Credential store for tenant users
	Admins accounts.AdminRepo // Credential store for platform admins
	Tokens token.Repo         // Durable refresh-token records
}

// SessionService orchestrates registration, login, refresh and logout
// against the credential stores and the token repository. It holds no
// mutable state between calls; all state lives in the repositories.
type SessionService struct {
	repos      Repos
	codec      *token.Codec
	accessTTL  time.Duration
	refreshTTL time.Duration
	nowTime    func() time.Time // nowTime function (injectable for testing)
}

// SessionServiceOption defines a function type to modify the SessionService instance.
type SessionServiceOption func(*SessionService)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) SessionServiceOption {
	return func(s *SessionService) {
		s.nowTime = nowFunc
	}
}

// WithAccessTokenTTL overrides the access-token lifetime.
func WithAccessTokenTTL(ttl time.Duration) SessionServiceOption {
	return func(s *SessionService) {
		s.accessTTL = ttl
	}
}

// WithRefreshTokenTTL overrides the refresh-token lifetime.
func WithRefreshTokenTTL(ttl time.Duration) SessionServiceOption {
	return func(s *SessionService) {
		s.refreshTTL = ttl
	}
}

// NewSessionService initializes a SessionService with required dependencies.
// Optional configuration can be provided via options (e.g. WithNowTime for testing).
func NewSessionService(repos Repos, codec *token.Codec, options ...SessionServiceOption) (*SessionService, error) {
	if repos.Users == nil {
		return nil, errors.New("[NewSessionService] Users repo is required")
	}
	if repos.Admins == nil {
		return nil, errors.New("[NewSessionService] Admins repo is required")
	}
	if repos.Tokens == nil {
		return nil, errors.New("[NewSessionService] Tokens repo is required")
	}
	if codec == nil {
		return nil, errors.New("[NewSessionService] codec is required")
	}

	service := &SessionService{
		repos:      repos,
		codec:      codec,
		accessTTL:  defaultAccessTokenTTL,
		refreshTTL: token.DefaultRefreshTokenTTL,
		nowTime:    time.Now,
	}

	for _, opt := range options {
		opt(service)
	}

	return service, nil
}

// TokenPair is the unit returned to callers on every successful auth
// operation.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UserProfile is the public slice of a user account. It never carries
// the password hash.
type UserProfile struct {
	ID        string            `json:"id"`
	Email     string            `json:"email"`
	FirstName string            `json:"firstName"`
	LastName  string            `json:"lastName"`
	Role      accounts.RoleType `json:"role"`
	TenantID  *string           `json:"tenantId,omitempty"`
}

// AdminProfile is the public slice of a platform admin account.
type AdminProfile struct {
	ID              string            `json:"id"`
	Email           string            `json:"email"`
	FirstName       string            `json:"firstName"`
	LastName        string            `json:"lastName"`
	Role            accounts.RoleType `json:"role"`
	IsPlatformAdmin bool              `json:"isPlatformAdmin"`
}

// UserSession is a token pair plus the user profile it was issued for.
// The pair is embedded so the wire shape stays flat.
type UserSession struct {
	TokenPair
	User UserProfile `json:"user"`
}

// AdminSession is a token pair plus the admin profile it was issued for.
type AdminSession struct {
	TokenPair
	Admin AdminProfile `json:"admin"`
}

func userProfile(u *accounts.User) UserProfile {
	return UserProfile{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		TenantID:  u.TenantID,
	}
}

func adminProfile(a *accounts.Admin) AdminProfile {
	return AdminProfile{
		ID:              a.ID,
		Email:           a.Email,
		FirstName:       a.FirstName,
		LastName:        a.LastName,
		Role:            a.Role,
		IsPlatformAdmin: true,
	}
}

// Register creates a tenant user account and issues its first token pair.
func (s *SessionService) Register(ctx context.Context, email, password, firstName, lastName string) (*UserSession, error) {
	if err := accounts.ValidatePasswordStrength(password); err != nil {
		return nil, apperrors.BadRequest("weak_password", err.Error())
	}

	_, err := s.repos.Users.GetByEmail(ctx, email)
	if err == nil {
		return nil, apperrors.ErrEmailTaken
	}
	if !stderrors.Is(err, accounts.ErrNotFound) {
		return nil, apperrors.RewriteStorage(err, "SessionService.Register")
	}

	passwordHash, err := accounts.HashPassword(password)
	if err != nil {
		return nil, errors.Wrap(err, "[SessionService.Register] HashPassword")
	}

	user := &accounts.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         accounts.RoleUser,
		Status:       accounts.StatusActive,
		CreatedAt:    s.nowTime(),
	}
	if err := s.repos.Users.Create(ctx, user); err != nil {
		return nil, apperrors.RewriteStorage(err, "SessionService.Register")
	}

	// Tenant reference is normally absent at registration; carried
	// through unchanged if the account has one.
	pair, err := s.issue(ctx, issuance{
		owner:    token.UserOwner(user.ID),
		email:    user.Email,
		role:     user.Role,
		tenantID: user.TenantID,
	})
	if err != nil {
		return nil, err
	}

	return &UserSession{TokenPair: *pair, User: userProfile(user)}, nil
}

// Login authenticates a tenant user. Account-not-found, suspended
// account and wrong password all fail with the same error.
func (s *SessionService) Login(ctx context.Context, email, password string) (*UserSession, error) {
	user, err := s.repos.Users.GetByEmail(ctx, email)
	if stderrors.Is(err, accounts.ErrNotFound) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, apperrors.RewriteStorage(err, "SessionService.Login")
	}

	if !user.Active() {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !accounts.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	pair, err := s.issue(ctx, issuance{
		owner:    token.UserOwner(user.ID),
		email:    user.Email,
		role:     user.Role,
		tenantID: user.TenantID,
	})
	if err != nil {
		return nil, err
	}

	return &UserSession{TokenPair: *pair, User: userProfile(user)}, nil
}

// LoginAdmin authenticates a platform admin against the disjoint admin
// table. Failure modes mirror Login exactly.
func (s *SessionService) LoginAdmin(ctx context.Context, email, password string) (*AdminSession, error) {
	admin, err := s.repos.Admins.GetByEmail(ctx, email)
	if stderrors.Is(err, accounts.ErrNotFound) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, apperrors.RewriteStorage(err, "SessionService.LoginAdmin")
	}

	if !admin.Active() {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !accounts.CheckPasswordHash(password, admin.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	pair, err := s.issue(ctx, issuance{
		owner:         token.AdminOwner(admin.ID),
		email:         admin.Email,
		role:          admin.Role,
		platformAdmin: true,
	})
	if err != nil {
		return nil, err
	}

	return &AdminSession{TokenPair: *pair, Admin: adminProfile(admin)}, nil
}

// Refresh redeems a refresh token for a brand-new pair, revoking the
// consumed record (rotation). A token may be redeemed exactly once:
// replay of an already-rotated value fails because the record is now
// revoked. An expired record is deleted on the spot; there is no
// background sweep.
func (s *SessionService) Refresh(ctx context.Context, refreshTokenValue string) (*TokenPair, error) {
	rt, err := s.repos.Tokens.Get(ctx, refreshTokenValue)
	if stderrors.Is(err, token.ErrNotFound) {
		return nil, apperrors.ErrInvalidRefreshToken
	}
	if err != nil {
		return nil, apperrors.RewriteStorage(err, "SessionService.Refresh")
	}

	now := s.nowTime()
	if rt.Expired(now) {
		_ = s.repos.Tokens.DeleteByID(ctx, rt.ID)
		return nil, apperrors.ErrInvalidRefreshToken
	}
	if rt.Revoked() {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	in, err := s.issuanceForOwner(ctx, rt.Owner)
	if err != nil {
		return nil, err
	}

	pair, err := s.issue(ctx, in)
	if err != nil {
		return nil, err
	}

	// Consume the redeemed record. The conditional update is the race
	// arbiter: if a concurrent redemption already revoked the row, this
	// caller lost and the redemption fails. The loser discards the pair
	// it just minted; its value was never returned to anyone.
	if err := s.repos.Tokens.MarkRevoked(ctx, rt.ID, now); err != nil {
		s.discardRefreshToken(ctx, pair.RefreshToken)
		if stderrors.Is(err, token.ErrNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, apperrors.RewriteStorage(err, "SessionService.Refresh")
	}

	return pair, nil
}

// discardRefreshToken deletes a fresh record whose value never reached
// the caller. Best effort; an orphaned row would be unredeemable anyway.
func (s *SessionService) discardRefreshToken(ctx context.Context, value string) {
	rt, err := s.repos.Tokens.Get(ctx, value)
	if err != nil {
		return
	}
	_ = s.repos.Tokens.DeleteByID(ctx, rt.ID)
}

// issuanceForOwner resolves the token owner back to its account record.
// Exactly one of the two lookups applies; the owner union makes any
// other shape unrepresentable.
func (s *SessionService) issuanceForOwner(ctx context.Context, owner token.Owner) (issuance, error) {
	switch owner.Kind() {
	case token.OwnerKindAdmin:
		admin, err := s.repos.Admins.GetByID(ctx, owner.ID())
		if stderrors.Is(err, accounts.ErrNotFound) {
			return issuance{}, apperrors.ErrInvalidRefreshToken
		}
		if err != nil {
			return issuance{}, apperrors.RewriteStorage(err, "SessionService.Refresh")
		}
		return issuance{
			owner:         owner,
			email:         admin.Email,
			role:          admin.Role,
			platformAdmin: true,
		}, nil
	default:
		user, err := s.repos.Users.GetByID(ctx, owner.ID())
		if stderrors.Is(err, accounts.ErrNotFound) {
			return issuance{}, apperrors.ErrInvalidRefreshToken
		}
		if err != nil {
			return issuance{}, apperrors.RewriteStorage(err, "SessionService.Refresh")
		}
		return issuance{
			owner:    owner,
			email:    user.Email,
			role:     user.Role,
			tenantID: user.TenantID,
		}, nil
	}
}

// Logout revokes sessions for an owner. With a refresh token value it
// revokes only the matching record owned by that principal; without
// one it revokes every active record ("log out everywhere"). Revoking
// a missing or already-revoked token is not an error.
func (s *SessionService) Logout(ctx context.Context, owner token.Owner, refreshTokenValue string) error {
	now := s.nowTime()

	if refreshTokenValue == "" {
		if err := s.repos.Tokens.RevokeAllActiveForOwner(ctx, owner, now); err != nil {
			return apperrors.RewriteStorage(err, "SessionService.Logout")
		}
		return nil
	}

	rt, err := s.repos.Tokens.Get(ctx, refreshTokenValue)
	if stderrors.Is(err, token.ErrNotFound) {
		return nil
	}
	if err != nil {
		return apperrors.RewriteStorage(err, "SessionService.Logout")
	}

	// Ownership check: a principal can only revoke its own session.
	if rt.Owner != owner {
		return nil
	}

	if err := s.repos.Tokens.MarkRevoked(ctx, rt.ID, now); err != nil {
		if stderrors.Is(err, token.ErrNotFound) {
			return nil
		}
		return apperrors.RewriteStorage(err, "SessionService.Logout")
	}
	return nil
}

// issuance is the input to the shared issue routine.
type issuance struct {
	owner         token.Owner
	email         string
	role          accounts.RoleType
	tenantID      *string
	platformAdmin bool
}

// issue builds and signs the access token, generates a fresh refresh
// record for the owner and persists it. A token-store write failure
// surfaces as a BadRequest with no storage detail attached.
func (s *SessionService) issue(ctx context.Context, in issuance) (*TokenPair, error) {
	claims := token.AccessClaims{
		Email:         in.email,
		Role:          string(in.role),
		TenantID:      in.tenantID,
		PlatformAdmin: in.platformAdmin,
	}
	claims.Subject = in.owner.ID()

	accessToken, err := s.codec.Sign(claims, s.accessTTL)
	if err != nil {
		return nil, errors.Wrap(err, "[SessionService.issue] codec.Sign")
	}

	rt, err := token.NewRefreshToken(in.owner, s.nowTime(), s.refreshTTL)
	if err != nil {
		return nil, errors.Wrap(err, "[SessionService.issue] NewRefreshToken")
	}

	if err := s.repos.Tokens.Create(ctx, rt); err != nil {
		return nil, apperrors.ErrSessionCreateFailed
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: rt.Value,
	}, nil
}
