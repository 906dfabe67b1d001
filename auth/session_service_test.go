package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stayware/go-property-server/accounts"
	accountrepofake "github.com/stayware/go-property-server/accounts/repofake"
	"github.com/stayware/go-property-server/auth"
	"github.com/stayware/go-property-server/internal/apperrors"
	"github.com/stayware/go-property-server/token"
	tokenrepofake "github.com/stayware/go-property-server/token/repofake"
	"github.com/stretchr/testify/require"
)

const (
	testSecret        = "test-secret-please-change"
	testIssuer        = "com.testissuer"
	testUserEmail     = "alice@example.com"
	testUserPassword  = "Password123"
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "AdminPassword123"
)

// testFixture holds all test dependencies
type testFixture struct {
	userRepo  *accountrepofake.FakeUserRepo
	adminRepo *accountrepofake.FakeAdminRepo
	tokenRepo *tokenrepofake.FakeTokenRepo
	codec     *token.Codec
	service   *auth.SessionService

	now time.Time
}

func setupTestFixture(t *testing.T, options ...auth.SessionServiceOption) *testFixture {
	t.Helper()

	f := &testFixture{
		userRepo:  accountrepofake.NewFakeUserRepo(),
		adminRepo: accountrepofake.NewFakeAdminRepo(),
		tokenRepo: tokenrepofake.NewFakeTokenRepo(),
		now:       time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC),
	}
	f.codec = token.NewCodec(testSecret, testIssuer, token.WithNowFunc(func() time.Time { return f.now }))

	opts := append([]auth.SessionServiceOption{
		auth.WithNowTime(func() time.Time { return f.now }),
	}, options...)

	service, err := auth.NewSessionService(auth.Repos{
		Users:  f.userRepo,
		Admins: f.adminRepo,
		Tokens: f.tokenRepo,
	}, f.codec, opts...)
	require.NoError(t, err)

	f.service = service
	return f
}

func (f *testFixture) createTestUser(t *testing.T, email, password string, status accounts.Status) *accounts.User {
	t.Helper()

	passwordHash, err := accounts.HashPassword(password)
	require.NoError(t, err)

	user := &accounts.User{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    "Alice",
		LastName:     "Smith",
		Role:         accounts.RoleUser,
		Status:       status,
		CreatedAt:    f.now,
	}
	require.NoError(t, f.userRepo.Create(context.Background(), user))
	return user
}

func (f *testFixture) createTestAdmin(t *testing.T, email, password string, status accounts.Status) *accounts.Admin {
	t.Helper()

	passwordHash, err := accounts.HashPassword(password)
	require.NoError(t, err)

	admin := &accounts.Admin{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    "Ada",
		LastName:     "Admin",
		Role:         accounts.RolePlatformAdmin,
		Status:       status,
		CreatedAt:    f.now,
	}
	require.NoError(t, f.adminRepo.Create(context.Background(), admin))
	return admin
}

func TestRegisterIssuesTokenPair(t *testing.T) {
	f := setupTestFixture(t)

	session, err := f.service.Register(context.Background(), testUserEmail, testUserPassword, "Alice", "Smith")
	require.NoError(t, err)
	require.NotEmpty(t, session.AccessToken)
	require.NotEmpty(t, session.RefreshToken)
	require.Equal(t, testUserEmail, session.User.Email)
	require.Equal(t, accounts.RoleUser, session.User.Role)

	// The access token verifies against the same codec.
	claims, err := f.codec.Verify(session.AccessToken)
	require.NoError(t, err)
	require.Equal(t, session.User.ID, claims.Subject)
	require.Equal(t, testUserEmail, claims.Email)
	require.False(t, claims.PlatformAdmin)

	// The refresh record is active and owned by the new user.
	rt, err := f.tokenRepo.Get(context.Background(), session.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, token.UserOwner(session.User.ID), rt.Owner)
	require.True(t, rt.Valid(f.now))
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	f := setupTestFixture(t)

	tests := []struct {
		name     string
		password string
	}{
		{name: "too short", password: "Pw1"},
		{name: "no uppercase", password: "password123"},
		{name: "no lowercase", password: "PASSWORD123"},
		{name: "no number", password: "PasswordOnly"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.Register(context.Background(), testUserEmail, tc.password, "Alice", "Smith")
			require.Error(t, err)

			appErr, ok := apperrors.From(err)
			require.True(t, ok)
			require.Equal(t, "weak_password", appErr.Tag)
			require.Equal(t, 400, appErr.Status)
		})
	}

	// No account or session was created along the way.
	_, err := f.userRepo.GetByEmail(context.Background(), testUserEmail)
	require.ErrorIs(t, err, accounts.ErrNotFound)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUserEmail, testUserPassword, accounts.StatusActive)

	_, err := f.service.Register(context.Background(), testUserEmail, "OtherPassword1", "Bob", "Jones")
	require.ErrorIs(t, err, apperrors.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUserEmail, testUserPassword, accounts.StatusActive)

	session, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)
	require.NotEmpty(t, session.AccessToken)
	require.NotEmpty(t, session.RefreshToken)
	require.Equal(t, testUserEmail, session.User.Email)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUserEmail, testUserPassword, accounts.StatusActive)
	f.createTestUser(t, "suspended@example.com", testUserPassword, accounts.StatusSuspended)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "unknown email", email: "nobody@example.com", password: testUserPassword},
		{name: "wrong password", email: testUserEmail, password: "WrongPassword1"},
		{name: "suspended account", email: "suspended@example.com", password: testUserPassword},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.Login(context.Background(), tc.email, tc.password)
			require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		})
	}
}

func TestLoginAdmin(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestAdmin(t, testAdminEmail, testAdminPassword, accounts.StatusActive)

	session, err := f.service.LoginAdmin(context.Background(), testAdminEmail, testAdminPassword)
	require.NoError(t, err)
	require.True(t, session.Admin.IsPlatformAdmin)

	claims, err := f.codec.Verify(session.AccessToken)
	require.NoError(t, err)
	require.True(t, claims.PlatformAdmin)

	rt, err := f.tokenRepo.Get(context.Background(), session.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, token.OwnerKindAdmin, rt.Owner.Kind())
}

func TestLoginAdminDoesNotSeeUserAccounts(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUserEmail, testUserPassword, accounts.StatusActive)

	// A user account cannot log in through the admin endpoint.
	_, err := f.service.LoginAdmin(context.Background(), testUserEmail, testUserPassword)
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUserEmail, testUserPassword, accounts.StatusActive)

	session, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)

	pair, err := f.service.Refresh(context.Background(), session.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEqual(t, session.RefreshToken, pair.RefreshToken)

	// The consumed record is revoked, the new one is active.
	old, err := f.tokenRepo.Get(context.Background(), session.RefreshToken)
	require.NoError(t, err)
	require.True(t, old.Revoked())

	current, err := f.tokenRepo.Get(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	require.True(t, current.Valid(f.now))
}

func TestRefreshReplayOfRotatedToken(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUserEmail, testUserPassword, accounts.StatusActive)

	session, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)

	_, err = f.service.Refresh(context.Background(), session.RefreshToken)
	require.NoError(t, err)

	// Redeeming the same value again must fail.
	_, err = f.service.Refresh(context.Background(), session.RefreshToken)
	require.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
}

func TestRefreshUnknownToken(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.Refresh(context.Background(), "not-a-real-token")
	require.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
}

func TestRefreshExpiredTokenIsDeleted(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUserEmail, testUserPassword, accounts.StatusActive)

	session, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)

	// Jump past the refresh TTL.
	f.now = f.now.Add(token.DefaultRefreshTokenTTL + time.Hour)

	_, err = f.service.Refresh(context.Background(), session.RefreshToken)
	require.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)

	// The expired record was removed on the failed redemption.
	_, err = f.tokenRepo.Get(context.Background(), session.RefreshToken)
	require.ErrorIs(t, err, token.ErrNotFound)
}

func TestRefreshSuspendedAccount(t *testing.T) {
	f := setupTestFixture(t)
	user := f.createTestUser(t, testUserEmail, testUserPassword, accounts.StatusActive)

	session, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)

	// Suspension does not revoke tokens, but a deleted account does
	// break the owner lookup. Suspended accounts keep refreshing until
	// their sessions are revoked; this mirrors login-time checks only.
	user.Status = accounts.StatusSuspended
	_, err = f.service.Refresh(context.Background(), session.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshRaceLoserDiscardsMintedToken(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUserEmail, testUserPassword, accounts.StatusActive)

	session, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)

	owner := token.UserOwner(session.User.ID)
	require.Equal(t, 1, f.tokenRepo.ActiveCountForOwner(owner))

	// A concurrent redemption revoked the row between Get and
	// MarkRevoked; the conditional update reports not-found.
	f.tokenRepo.MarkRevokedErr = token.ErrNotFound
	_, err = f.service.Refresh(context.Background(), session.RefreshToken)
	require.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)

	// The loser cleaned up the pair it minted; no orphaned active row.
	require.Equal(t, 1, f.tokenRepo.ActiveCountForOwner(owner))
}

func TestRefreshStoreFailureKeepsOldToken(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUserEmail, testUserPassword, accounts.StatusActive)

	session, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)

	f.tokenRepo.CreateErr = context.DeadlineExceeded
	_, err = f.service.Refresh(context.Background(), session.RefreshToken)
	require.ErrorIs(t, err, apperrors.ErrSessionCreateFailed)

	// The old token survives a failed issue, so the caller can retry.
	f.tokenRepo.CreateErr = nil
	pair, err := f.service.Refresh(context.Background(), session.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, pair.RefreshToken)
}

func TestRegisterStoreFailure(t *testing.T) {
	f := setupTestFixture(t)
	f.tokenRepo.CreateErr = context.DeadlineExceeded

	_, err := f.service.Register(context.Background(), testUserEmail, testUserPassword, "Alice", "Smith")
	require.ErrorIs(t, err, apperrors.ErrSessionCreateFailed)
}

func TestLogoutSingleSession(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUserEmail, testUserPassword, accounts.StatusActive)

	first, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)
	second, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)

	owner := token.UserOwner(first.User.ID)
	require.NoError(t, f.service.Logout(context.Background(), owner, first.RefreshToken))

	// Only the named session was revoked.
	_, err = f.service.Refresh(context.Background(), first.RefreshToken)
	require.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)

	_, err = f.service.Refresh(context.Background(), second.RefreshToken)
	require.NoError(t, err)
}

func TestLogoutAllSessions(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUserEmail, testUserPassword, accounts.StatusActive)

	first, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)
	second, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)

	owner := token.UserOwner(first.User.ID)
	require.NoError(t, f.service.Logout(context.Background(), owner, ""))

	_, err = f.service.Refresh(context.Background(), first.RefreshToken)
	require.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	_, err = f.service.Refresh(context.Background(), second.RefreshToken)
	require.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
}

func TestLogoutIsIdempotent(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUserEmail, testUserPassword, accounts.StatusActive)

	session, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)

	owner := token.UserOwner(session.User.ID)
	require.NoError(t, f.service.Logout(context.Background(), owner, session.RefreshToken))
	require.NoError(t, f.service.Logout(context.Background(), owner, session.RefreshToken))
	require.NoError(t, f.service.Logout(context.Background(), owner, "unknown-token"))
}

func TestLogoutCannotRevokeAnotherOwnersToken(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t, testUserEmail, testUserPassword, accounts.StatusActive)
	f.createTestUser(t, "mallory@example.com", testUserPassword, accounts.StatusActive)

	alice, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)
	mallory, err := f.service.Login(context.Background(), "mallory@example.com", testUserPassword)
	require.NoError(t, err)

	// Mallory passing Alice's refresh token revokes nothing.
	require.NoError(t, f.service.Logout(context.Background(), token.UserOwner(mallory.User.ID), alice.RefreshToken))

	_, err = f.service.Refresh(context.Background(), alice.RefreshToken)
	require.NoError(t, err)
}

func TestFullSessionLifecycle(t *testing.T) {
	f := setupTestFixture(t)

	registered, err := f.service.Register(context.Background(), testUserEmail, testUserPassword, "Alice", "Smith")
	require.NoError(t, err)

	loggedIn, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, loggedIn.User.ID)

	refreshed, err := f.service.Refresh(context.Background(), loggedIn.RefreshToken)
	require.NoError(t, err)

	owner := token.UserOwner(loggedIn.User.ID)
	require.NoError(t, f.service.Logout(context.Background(), owner, ""))

	// Every session, including the registration pair and the rotated
	// pair, is gone after logout-everywhere.
	for _, value := range []string{
		registered.RefreshToken,
		loggedIn.RefreshToken,
		refreshed.RefreshToken,
	} {
		_, err = f.service.Refresh(context.Background(), value)
		require.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	}
}
