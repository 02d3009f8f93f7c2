// Package service provides the credential primitives used by the account lifecycle:
// password hashing, one-time code generation, session token signing and signing key loading.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	// Hash returns a self-describing hash of the plaintext password.
	Hash(plain string) (string, error)

	// Verify reports whether plain matches hash. A malformed hash never matches.
	Verify(plain, hash string) bool

	// NeedsRehash reports whether hash was produced by a legacy algorithm and should be
	// replaced after the next successful verification.
	NeedsRehash(hash string) bool
}

// CodeGenerator mints one-time codes and their storage digests.
type CodeGenerator interface {
	// NewEmailVerificationCode returns a uniformly random 6-digit numeric code.
	NewEmailVerificationCode() (string, error)

	// NewRecoveryToken returns a hex-encoded 32-byte random token.
	NewRecoveryToken() (string, error)

	// HashCode returns the hex SHA-256 digest stored in place of the plaintext code.
	HashCode(code string) string
}

// SessionService issues and verifies signed session tokens.
type SessionService interface {
	// Issue returns a signed token for accountID and the time it expires.
	Issue(accountID uuid.UUID) (token string, expiresAt time.Time, err error)

	// Verify returns the account id carried by a valid token. Every failure is
	// reported as domain.ErrSessionInvalid.
	Verify(token string) (uuid.UUID, error)
}

// KMSKeeper is the subset of *secrets.Keeper used to unwrap and wrap the session secret.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KMSService opens keepers for a KMS key URI.
type KMSService interface {
	// OpenKeeper opens a keeper for the configured KMS provider.
	// Returns an error if the KMS provider URI is invalid or connection fails.
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}
