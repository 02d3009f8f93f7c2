package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/accounts/internal/account/domain"
)

// memoryAccountRepository is an AccountRepository backed by a map. Consume operations run
// under the mutex so they behave like the conditional updates of the SQL stores.
type memoryAccountRepository struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*domain.Account
	err      error
}

func newMemoryAccountRepository() *memoryAccountRepository {
	return &memoryAccountRepository{accounts: make(map[uuid.UUID]*domain.Account)}
}

func (r *memoryAccountRepository) failWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func clone(account *domain.Account) *domain.Account {
	c := *account
	return &c
}

func (r *memoryAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return domain.ErrAccountAlreadyExists
		}
	}
	r.accounts[account.ID] = clone(account)
	return nil
}

func (r *memoryAccountRepository) GetByID(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	account, ok := r.accounts[accountID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return clone(account), nil
}

func (r *memoryAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, account := range r.accounts {
		if account.Email == email {
			return clone(account), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *memoryAccountRepository) UpdateLastLogin(ctx context.Context, accountID uuid.UUID, lastLogin time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[accountID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	account.LastLogin = &lastLogin
	account.UpdatedAt = lastLogin
	return nil
}

func (r *memoryAccountRepository) UpdatePassword(ctx context.Context, accountID uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[accountID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	account.Password = passwordHash
	return nil
}

func (r *memoryAccountRepository) SetRecoveryPasswordCode(
	ctx context.Context,
	accountID uuid.UUID,
	digest string,
	expiresAt time.Time,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	account, ok := r.accounts[accountID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	account.SetRecoveryPasswordCode(digest, expiresAt)
	return nil
}

func (r *memoryAccountRepository) ConsumeEmailVerificationCode(
	ctx context.Context,
	email string,
	digest string,
	now time.Time,
) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, account := range r.accounts {
		if email != "" && account.Email != email {
			continue
		}
		if account.EmailVerificationCode == nil || *account.EmailVerificationCode != digest {
			continue
		}
		if !account.EmailVerificationCodeExpiresAt.After(now) {
			continue
		}
		account.IsVerified = true
		account.EmailVerificationCode = nil
		account.EmailVerificationCodeExpiresAt = nil
		account.UpdatedAt = now
		return clone(account), nil
	}
	return nil, domain.ErrInvalidOrExpiredCode
}

func (r *memoryAccountRepository) ConsumeRecoveryPasswordCode(
	ctx context.Context,
	digest string,
	passwordHash string,
	now time.Time,
) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, account := range r.accounts {
		if account.RecoveryPasswordCode == nil || *account.RecoveryPasswordCode != digest {
			continue
		}
		if !account.RecoveryPasswordCodeExpiresAt.After(now) {
			continue
		}
		account.Password = passwordHash
		account.RecoveryPasswordCode = nil
		account.RecoveryPasswordCodeExpiresAt = nil
		account.UpdatedAt = now
		return clone(account), nil
	}
	return nil, domain.ErrInvalidOrExpiredCode
}

func (r *memoryAccountRepository) Delete(ctx context.Context, accountID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[accountID]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(r.accounts, accountID)
	return nil
}
