// Package errors defines the sentinel errors shared by the account and notification
// domains. Domain packages wrap them with context and httputil maps each sentinel to
// a status code, so handlers never inspect driver or provider errors.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate key).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAuthentication indicates the supplied credentials were rejected. The message
	// must never reveal whether the account exists.
	ErrAuthentication = errors.New("authentication failed")

	// ErrInvalidOrExpired indicates a one-time code did not match or has expired.
	// Both cases are reported identically.
	ErrInvalidOrExpired = errors.New("invalid or expired")

	// ErrUnauthorized indicates the request lacks a valid session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable indicates a backing dependency (store, mail) could not be reached in time.
	// Callers may retry.
	ErrUnavailable = errors.New("unavailable")
)

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted message while preserving the error chain.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
