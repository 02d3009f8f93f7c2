// Package domain defines the account entity and the credential lifecycle errors.
//
// An Account owns a password hash and up to two one-time codes: the email verification code and
// the password recovery token. Codes are stored only as digests, each paired with its expiry.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a registered user identity.
type Account struct {
	ID                             uuid.UUID  // Unique identifier (UUIDv7)
	Name                           string     // Display name
	Email                          string     // Unique login identifier, stored trimmed
	Password                       string     //nolint:gosec // password hash (not plaintext)
	IsVerified                     bool       // Set once the email verification code is consumed
	EmailVerificationCode          *string    // Digest of the pending verification code
	EmailVerificationCodeExpiresAt *time.Time // Expiry of the pending verification code
	RecoveryPasswordCode           *string    // Digest of the pending recovery token
	RecoveryPasswordCodeExpiresAt  *time.Time // Expiry of the pending recovery token
	LastLogin                      *time.Time // Time of the last successful login
	CreatedAt                      time.Time
	UpdatedAt                      time.Time
}

// Profile is the representation of an account that may leave the service.
// It has no field for the password hash or any one-time code.
type Profile struct {
	ID         uuid.UUID
	Name       string
	Email      string
	IsVerified bool
	LastLogin  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Profile returns the safe representation of the account.
func (a *Account) Profile() *Profile {
	return &Profile{
		ID:         a.ID,
		Name:       a.Name,
		Email:      a.Email,
		IsVerified: a.IsVerified,
		LastLogin:  a.LastLogin,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// SetEmailVerificationCode stores a verification code digest together with its expiry.
func (a *Account) SetEmailVerificationCode(digest string, expiresAt time.Time) {
	a.EmailVerificationCode = &digest
	a.EmailVerificationCodeExpiresAt = &expiresAt
}

// SetRecoveryPasswordCode stores a recovery token digest together with its expiry.
func (a *Account) SetRecoveryPasswordCode(digest string, expiresAt time.Time) {
	a.RecoveryPasswordCode = &digest
	a.RecoveryPasswordCodeExpiresAt = &expiresAt
}
