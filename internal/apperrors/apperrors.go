// Package apperrors carries the caller-facing error taxonomy: every
// failure the API surfaces maps to one of Conflict, Unauthorized or
// BadRequest, each with a stable machine-readable tag.
package apperrors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	pkgerrors "github.com/pkg/errors"
)

// Error is a caller-visible failure with a stable tag and HTTP status.
type Error struct {
	Tag     string
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

func Conflict(tag, message string) *Error {
	return &Error{Tag: tag, Message: message, Status: http.StatusConflict}
}

func Unauthorized(tag, message string) *Error {
	return &Error{Tag: tag, Message: message, Status: http.StatusUnauthorized}
}

func BadRequest(tag, message string) *Error {
	return &Error{Tag: tag, Message: message, Status: http.StatusBadRequest}
}

var (
	// ErrEmailTaken is returned when registering an email that already
	// exists in the user table.
	ErrEmailTaken = Conflict("email_taken", "an account with this email already exists")

	// ErrInvalidCredentials covers account-not-found, suspended account
	// and wrong password alike. The message is deliberately identical
	// for all three so callers cannot tell them apart.
	ErrInvalidCredentials = Unauthorized("invalid_credentials", "invalid email or password")

	// ErrInvalidRefreshToken covers unknown, expired and revoked
	// refresh tokens alike.
	ErrInvalidRefreshToken = Unauthorized("invalid_refresh_token", "refresh token is invalid or expired")

	// ErrSessionCreateFailed is returned when the token store rejects a
	// write. The message never carries storage detail.
	ErrSessionCreateFailed = BadRequest("session_create_failed", "could not create session, try again")
)

// From extracts the taxonomy error from a chain, if any.
func From(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsSchemaMismatch reports whether a storage error looks like a schema
// drift problem (missing column or table) rather than a data problem.
func IsSchemaMismatch(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// undefined_column, undefined_table
		return pgErr.Code == "42703" || pgErr.Code == "42P01"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "does not exist") &&
		(strings.Contains(msg, "column") || strings.Contains(msg, "relation"))
}

// RewriteStorage turns a raw storage error into something an operator
// can act on. Schema drift gets an explicit message; the request still
// fails either way.
func RewriteStorage(err error, op string) error {
	if err == nil {
		return nil
	}
	if IsSchemaMismatch(err) {
		return pkgerrors.Wrapf(err, "[%s] credential store schema mismatch, run pending migrations", op)
	}
	return pkgerrors.Wrapf(err, "[%s] storage failure", op)
}
