package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/accounts/internal/account/domain"
	accountService "github.com/allisson/accounts/internal/account/service"
	"github.com/allisson/accounts/internal/config"
	"github.com/allisson/accounts/internal/database"
	apperrors "github.com/allisson/accounts/internal/errors"
)

// dummyPassword is hashed once and verified against when the login email is unknown,
// so both failure paths cost one hash verification.
const dummyPassword = "dummy-password-for-unknown-accounts"

// accountUseCase implements AccountUseCase.
type accountUseCase struct {
	config         *config.Config
	accountRepo    AccountRepository
	passwordHasher accountService.PasswordHasher
	codeGenerator  accountService.CodeGenerator
	sessionService accountService.SessionService
	notifier       Notifier
	logger         *slog.Logger
	now            func() time.Time

	dummyHashOnce sync.Once
	dummyHash     string
}

// Signup registers an account.
//
// This method:
// 1. Validates and normalizes the input
// 2. Rejects an email that is already registered
// 3. Hashes the password and mints a verification code
// 4. Persists the unverified account with the code digest
// 5. Sends the plaintext code by email (best effort)
// 6. Issues a session token
func (a *accountUseCase) Signup(ctx context.Context, input domain.SignupInput) (*domain.SessionOutput, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	err := a.withStore(ctx, func(ctx context.Context) error {
		_, err := a.accountRepo.GetByEmail(ctx, input.Email)
		if err == nil {
			return domain.ErrAccountAlreadyExists
		}
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	passwordHash, err := a.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	code, err := a.codeGenerator.NewEmailVerificationCode()
	if err != nil {
		return nil, err
	}

	now := a.now().UTC()
	account := &domain.Account{
		ID:         uuid.Must(uuid.NewV7()),
		Name:       input.Name,
		Email:      input.Email,
		Password:   passwordHash,
		IsVerified: false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	account.SetEmailVerificationCode(a.codeGenerator.HashCode(code), now.Add(a.config.EmailVerificationCodeTTL))

	// The unique index settles concurrent signups for the same email.
	if err := a.withStore(ctx, func(ctx context.Context) error {
		return a.accountRepo.Create(ctx, account)
	}); err != nil {
		return nil, err
	}

	a.notify(ctx, "verification_email", func(ctx context.Context) error {
		return a.notifier.SendVerificationEmail(ctx, account.Email, account.Name, code)
	})

	return a.startSession(account)
}

// Login verifies credentials and issues a session token.
// A legacy password hash is replaced after a successful verification.
func (a *accountUseCase) Login(ctx context.Context, input domain.LoginInput) (*domain.SessionOutput, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var account *domain.Account
	err := a.withStore(ctx, func(ctx context.Context) error {
		var err error
		account, err = a.accountRepo.GetByEmail(ctx, input.Email)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			a.passwordHasher.Verify(input.Password, a.getDummyHash())
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !a.passwordHasher.Verify(input.Password, account.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	if a.passwordHasher.NeedsRehash(account.Password) {
		a.rehash(ctx, account, input.Password)
	}

	now := a.now().UTC()
	if err := a.withStore(ctx, func(ctx context.Context) error {
		return a.accountRepo.UpdateLastLogin(ctx, account.ID, now)
	}); err != nil {
		return nil, err
	}
	account.LastLogin = &now
	account.UpdatedAt = now

	return a.startSession(account)
}

// Logout always succeeds; there is no server-side session state to discard.
func (a *accountUseCase) Logout(ctx context.Context) error {
	return nil
}

// VerifyEmail consumes a verification code in a single conditional update and sends the
// welcome email (best effort).
func (a *accountUseCase) VerifyEmail(ctx context.Context, input domain.VerifyEmailInput) (*domain.Profile, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var account *domain.Account
	err := a.withStore(ctx, func(ctx context.Context) error {
		var err error
		account, err = a.accountRepo.ConsumeEmailVerificationCode(
			ctx,
			input.Email,
			a.codeGenerator.HashCode(input.Code),
			a.now().UTC(),
		)
		return err
	})
	if err != nil {
		return nil, err
	}

	a.notify(ctx, "welcome_email", func(ctx context.Context) error {
		return a.notifier.SendWelcomeEmail(ctx, account.Email, account.Name)
	})

	return account.Profile(), nil
}

// RequestPasswordRecovery stores a recovery token digest and emails the reset link.
// An unknown email returns nil so callers cannot probe which emails are registered.
func (a *accountUseCase) RequestPasswordRecovery(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "email: cannot be blank")
	}

	var account *domain.Account
	err := a.withStore(ctx, func(ctx context.Context) error {
		var err error
		account, err = a.accountRepo.GetByEmail(ctx, email)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			a.logger.Debug("password recovery requested for unknown email")
			return nil
		}
		return err
	}

	token, err := a.codeGenerator.NewRecoveryToken()
	if err != nil {
		return err
	}

	expiresAt := a.now().UTC().Add(a.config.PasswordRecoveryTokenTTL)
	if err := a.withStore(ctx, func(ctx context.Context) error {
		return a.accountRepo.SetRecoveryPasswordCode(ctx, account.ID, a.codeGenerator.HashCode(token), expiresAt)
	}); err != nil {
		return err
	}

	resetURL := strings.TrimRight(a.config.PublicBaseURL, "/") + "/reset-password/" + token
	a.notify(ctx, "password_recovery_email", func(ctx context.Context) error {
		return a.notifier.SendPasswordRecoveryEmail(ctx, account.Email, account.Name, resetURL)
	})

	return nil
}

// ResetPassword hashes the new password and swaps it in while consuming the recovery token.
// The caller is not signed in.
func (a *accountUseCase) ResetPassword(ctx context.Context, input domain.ResetPasswordInput) error {
	input.Token = strings.TrimSpace(input.Token)
	if err := input.Validate(); err != nil {
		return err
	}

	passwordHash, err := a.passwordHasher.Hash(input.Password)
	if err != nil {
		return err
	}

	var account *domain.Account
	err = a.withStore(ctx, func(ctx context.Context) error {
		var err error
		account, err = a.accountRepo.ConsumeRecoveryPasswordCode(
			ctx,
			a.codeGenerator.HashCode(input.Token),
			passwordHash,
			a.now().UTC(),
		)
		return err
	})
	if err != nil {
		return err
	}

	a.notify(ctx, "password_reset_success_email", func(ctx context.Context) error {
		return a.notifier.SendPasswordResetSuccessEmail(ctx, account.Email, account.Name)
	})

	return nil
}

// CheckSession resolves a session token to the current profile.
func (a *accountUseCase) CheckSession(ctx context.Context, token string) (*domain.Profile, error) {
	if token == "" {
		return nil, domain.ErrSessionMissing
	}

	accountID, err := a.sessionService.Verify(token)
	if err != nil {
		return nil, domain.ErrSessionInvalid
	}

	var account *domain.Account
	err = a.withStore(ctx, func(ctx context.Context) error {
		var err error
		account, err = a.accountRepo.GetByID(ctx, accountID)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrSessionAccountNotFound
		}
		return nil, err
	}

	return account.Profile(), nil
}

// Delete removes an account.
func (a *accountUseCase) Delete(ctx context.Context, accountID uuid.UUID) error {
	return a.withStore(ctx, func(ctx context.Context) error {
		return a.accountRepo.Delete(ctx, accountID)
	})
}

// startSession issues a session token for account.
func (a *accountUseCase) startSession(account *domain.Account) (*domain.SessionOutput, error) {
	token, expiresAt, err := a.sessionService.Issue(account.ID)
	if err != nil {
		return nil, err
	}
	return &domain.SessionOutput{
		Profile:   account.Profile(),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// rehash upgrades a legacy password hash. Failures are logged and the login proceeds.
func (a *accountUseCase) rehash(ctx context.Context, account *domain.Account, password string) {
	passwordHash, err := a.passwordHasher.Hash(password)
	if err != nil {
		a.logger.Warn("failed to rehash legacy password", slog.String("account_id", account.ID.String()),
			slog.Any("error", err))
		return
	}
	err = a.withStore(ctx, func(ctx context.Context) error {
		return a.accountRepo.UpdatePassword(ctx, account.ID, passwordHash)
	})
	if err != nil {
		a.logger.Warn("failed to store rehashed password", slog.String("account_id", account.ID.String()),
			slog.Any("error", err))
		return
	}
	account.Password = passwordHash
}

// withStore runs fn under the store timeout. Deadline and connection failures become ErrUnavailable.
func (a *accountUseCase) withStore(ctx context.Context, fn func(ctx context.Context) error) error {
	storeCtx, cancel := context.WithTimeout(ctx, a.config.StoreTimeout)
	defer cancel()

	err := fn(storeCtx)
	if err == nil {
		return nil
	}
	if database.IsUnavailable(err) || errors.Is(storeCtx.Err(), context.DeadlineExceeded) {
		return apperrors.Wrap(apperrors.ErrUnavailable, err.Error())
	}
	return err
}

// notify runs a notification after the state change is durable. It is detached from the
// request's cancellation, bounded by the notify timeout, and never fails the operation.
func (a *accountUseCase) notify(ctx context.Context, kind string, fn func(ctx context.Context) error) {
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.config.NotifyTimeout)
	defer cancel()

	if err := fn(notifyCtx); err != nil {
		a.logger.Error("failed to send notification",
			slog.String("notification", kind),
			slog.Any("error", err),
		)
	}
}

func (a *accountUseCase) getDummyHash() string {
	a.dummyHashOnce.Do(func() {
		hash, err := a.passwordHasher.Hash(dummyPassword)
		if err != nil {
			a.logger.Warn("failed to compute dummy password hash", slog.Any("error", err))
			return
		}
		a.dummyHash = hash
	})
	return a.dummyHash
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	cfg *config.Config,
	accountRepo AccountRepository,
	passwordHasher accountService.PasswordHasher,
	codeGenerator accountService.CodeGenerator,
	sessionService accountService.SessionService,
	notifier Notifier,
	logger *slog.Logger,
) AccountUseCase {
	return newAccountUseCase(cfg, accountRepo, passwordHasher, codeGenerator, sessionService, notifier, logger, time.Now)
}

func newAccountUseCase(
	cfg *config.Config,
	accountRepo AccountRepository,
	passwordHasher accountService.PasswordHasher,
	codeGenerator accountService.CodeGenerator,
	sessionService accountService.SessionService,
	notifier Notifier,
	logger *slog.Logger,
	now func() time.Time,
) *accountUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &accountUseCase{
		config:         cfg,
		accountRepo:    accountRepo,
		passwordHasher: passwordHasher,
		codeGenerator:  codeGenerator,
		sessionService: sessionService,
		notifier:       notifier,
		logger:         logger,
		now:            now,
	}
}
