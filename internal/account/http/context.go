// Package http provides the account HTTP handlers and the session middleware.
package http

import (
	"context"

	"github.com/allisson/accounts/internal/account/domain"
)

// accountKey is a context key type for storing the authenticated account profile.
type accountKey struct{}

// WithAccount stores the authenticated account profile in the context.
func WithAccount(ctx context.Context, profile *domain.Profile) context.Context {
	return context.WithValue(ctx, accountKey{}, profile)
}

// GetAccount retrieves the authenticated account profile from the context.
// Returns (profile, true) if present, or (nil, false) if SessionMiddleware did not run.
func GetAccount(ctx context.Context) (*domain.Profile, bool) {
	profile, ok := ctx.Value(accountKey{}).(*domain.Profile)
	return profile, ok
}
