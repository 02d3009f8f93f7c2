package domain

import (
	"github.com/allisson/accounts/internal/errors"
)

// Account lifecycle errors.
var (
	// ErrAccountNotFound indicates an account with the specified ID or email was not found.
	ErrAccountNotFound = errors.Wrap(errors.ErrNotFound, "account not found")

	// ErrAccountAlreadyExists indicates an account with the same email already exists.
	ErrAccountAlreadyExists = errors.Wrap(errors.ErrConflict, "account already exists")

	// ErrInvalidCredentials is returned for both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.Wrap(errors.ErrAuthentication, "invalid credentials")

	// ErrInvalidOrExpiredCode is returned for a one-time code that is wrong, already used or expired.
	ErrInvalidOrExpiredCode = errors.Wrap(errors.ErrInvalidOrExpired, "invalid or expired code")
)

// Session errors. All of them are unauthorized; the message tells the reason apart for logs.
var (
	// ErrSessionMissing indicates the request carried no session token.
	ErrSessionMissing = errors.Wrap(errors.ErrUnauthorized, "session token missing")

	// ErrSessionInvalid indicates the session token is malformed, tampered with or expired.
	ErrSessionInvalid = errors.Wrap(errors.ErrUnauthorized, "session token invalid")

	// ErrSessionAccountNotFound indicates the session token names an account that no longer exists.
	ErrSessionAccountNotFound = errors.Wrap(errors.ErrUnauthorized, "session account not found")
)
