package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/accounts/internal/account/domain"
	"github.com/allisson/accounts/internal/metrics"
)

// accountUseCaseWithMetrics decorates AccountUseCase with metrics instrumentation.
type accountUseCaseWithMetrics struct {
	next    AccountUseCase
	metrics metrics.BusinessMetrics
}

// NewAccountUseCaseWithMetrics wraps an AccountUseCase with metrics recording.
func NewAccountUseCaseWithMetrics(useCase AccountUseCase, m metrics.BusinessMetrics) AccountUseCase {
	return &accountUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *accountUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, a.metrics, "account", operation, start, err)
}

// Signup records metrics for account registration.
func (a *accountUseCaseWithMetrics) Signup(
	ctx context.Context,
	input domain.SignupInput,
) (*domain.SessionOutput, error) {
	start := time.Now()
	output, err := a.next.Signup(ctx, input)
	a.record(ctx, "signup", start, err)
	return output, err
}

// Login records metrics for login attempts.
func (a *accountUseCaseWithMetrics) Login(
	ctx context.Context,
	input domain.LoginInput,
) (*domain.SessionOutput, error) {
	start := time.Now()
	output, err := a.next.Login(ctx, input)
	a.record(ctx, "login", start, err)
	return output, err
}

// Logout records metrics for logouts.
func (a *accountUseCaseWithMetrics) Logout(ctx context.Context) error {
	start := time.Now()
	err := a.next.Logout(ctx)
	a.record(ctx, "logout", start, err)
	return err
}

// VerifyEmail records metrics for email verification.
func (a *accountUseCaseWithMetrics) VerifyEmail(
	ctx context.Context,
	input domain.VerifyEmailInput,
) (*domain.Profile, error) {
	start := time.Now()
	profile, err := a.next.VerifyEmail(ctx, input)
	a.record(ctx, "verify_email", start, err)
	return profile, err
}

// RequestPasswordRecovery records metrics for recovery requests.
func (a *accountUseCaseWithMetrics) RequestPasswordRecovery(ctx context.Context, email string) error {
	start := time.Now()
	err := a.next.RequestPasswordRecovery(ctx, email)
	a.record(ctx, "request_password_recovery", start, err)
	return err
}

// ResetPassword records metrics for password resets.
func (a *accountUseCaseWithMetrics) ResetPassword(ctx context.Context, input domain.ResetPasswordInput) error {
	start := time.Now()
	err := a.next.ResetPassword(ctx, input)
	a.record(ctx, "reset_password", start, err)
	return err
}

// CheckSession records metrics for session checks.
func (a *accountUseCaseWithMetrics) CheckSession(ctx context.Context, token string) (*domain.Profile, error) {
	start := time.Now()
	profile, err := a.next.CheckSession(ctx, token)
	a.record(ctx, "check_session", start, err)
	return profile, err
}

// Delete records metrics for account deletion.
func (a *accountUseCaseWithMetrics) Delete(ctx context.Context, accountID uuid.UUID) error {
	start := time.Now()
	err := a.next.Delete(ctx, accountID)
	a.record(ctx, "delete", start, err)
	return err
}
