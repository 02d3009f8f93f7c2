// Package usecase implements the credential and token lifecycle of accounts.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/accounts/internal/account/domain"
)

// AccountRepository defines persistence operations for accounts.
// Implementations must support transaction-aware operations via context propagation.
type AccountRepository interface {
	// Create stores a new account. Returns ErrAccountAlreadyExists when the email is taken,
	// including when a concurrent signup wins the unique constraint.
	Create(ctx context.Context, account *domain.Account) error

	// GetByID retrieves an account by ID. Returns ErrAccountNotFound if not found.
	GetByID(ctx context.Context, accountID uuid.UUID) (*domain.Account, error)

	// GetByEmail retrieves an account by exact email. Returns ErrAccountNotFound if not found.
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)

	// UpdateLastLogin sets the last login time of an account.
	UpdateLastLogin(ctx context.Context, accountID uuid.UUID, lastLogin time.Time) error

	// UpdatePassword replaces the password hash of an account.
	UpdatePassword(ctx context.Context, accountID uuid.UUID, passwordHash string) error

	// SetRecoveryPasswordCode stores a recovery token digest and its expiry, replacing any pending one.
	SetRecoveryPasswordCode(ctx context.Context, accountID uuid.UUID, digest string, expiresAt time.Time) error

	// ConsumeEmailVerificationCode marks verified the single account whose pending verification
	// digest matches and has not expired at now, clearing the code in the same statement.
	// An empty email matches any account. Returns ErrInvalidOrExpiredCode when nothing matched.
	ConsumeEmailVerificationCode(
		ctx context.Context,
		email string,
		digest string,
		now time.Time,
	) (*domain.Account, error)

	// ConsumeRecoveryPasswordCode replaces the password of the single account whose pending
	// recovery digest matches and has not expired at now, clearing the token in the same statement.
	// Returns ErrInvalidOrExpiredCode when nothing matched.
	ConsumeRecoveryPasswordCode(
		ctx context.Context,
		digest string,
		passwordHash string,
		now time.Time,
	) (*domain.Account, error)

	// Delete removes an account. Returns ErrAccountNotFound if not found.
	Delete(ctx context.Context, accountID uuid.UUID) error
}

// Notifier delivers account emails. Calls happen after the state change is durable and
// their failures never undo it.
type Notifier interface {
	// SendVerificationEmail delivers the plaintext email verification code.
	SendVerificationEmail(ctx context.Context, email, name, code string) error

	// SendWelcomeEmail greets an account after its email is verified.
	SendWelcomeEmail(ctx context.Context, email, name string) error

	// SendPasswordRecoveryEmail delivers the password reset link.
	SendPasswordRecoveryEmail(ctx context.Context, email, name, resetURL string) error

	// SendPasswordResetSuccessEmail confirms a completed password reset.
	SendPasswordResetSuccessEmail(ctx context.Context, email, name string) error
}

// AccountUseCase defines the credential lifecycle operations.
type AccountUseCase interface {
	// Signup registers an unverified account, sends its verification code and signs it in.
	//
	// Returns ErrInvalidInput for missing or malformed fields and ErrAccountAlreadyExists
	// when the email is taken.
	Signup(ctx context.Context, input domain.SignupInput) (*domain.SessionOutput, error)

	// Login checks credentials and signs the account in.
	//
	// Unknown email and wrong password both return ErrInvalidCredentials.
	Login(ctx context.Context, input domain.LoginInput) (*domain.SessionOutput, error)

	// Logout ends the caller's session. Sessions are stateless so this always succeeds;
	// the transport discards the token.
	Logout(ctx context.Context) error

	// VerifyEmail consumes an email verification code and marks the account verified.
	//
	// Wrong, used and expired codes all return ErrInvalidOrExpiredCode.
	VerifyEmail(ctx context.Context, input domain.VerifyEmailInput) (*domain.Profile, error)

	// RequestPasswordRecovery emails a reset link. An unknown email succeeds silently.
	RequestPasswordRecovery(ctx context.Context, email string) error

	// ResetPassword consumes a recovery token and replaces the password.
	//
	// Wrong, used and expired tokens all return ErrInvalidOrExpiredCode.
	ResetPassword(ctx context.Context, input domain.ResetPasswordInput) error

	// CheckSession resolves a session token to the current profile of its account.
	//
	// Returns ErrSessionMissing, ErrSessionInvalid or ErrSessionAccountNotFound, all unauthorized.
	CheckSession(ctx context.Context, token string) (*domain.Profile, error)

	// Delete removes an account. Used by administrative tooling only.
	Delete(ctx context.Context, accountID uuid.UUID) error
}
