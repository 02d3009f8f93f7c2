// Package mocks provides mock implementations of the account use case ports for testing.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/accounts/internal/account/domain"
)

// MockAccountUseCase is a mock implementation of AccountUseCase for testing.
type MockAccountUseCase struct {
	mock.Mock
}

// Signup mocks the Signup method of AccountUseCase.
func (m *MockAccountUseCase) Signup(ctx context.Context, input domain.SignupInput) (*domain.SessionOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionOutput), args.Error(1)
}

// Login mocks the Login method of AccountUseCase.
func (m *MockAccountUseCase) Login(ctx context.Context, input domain.LoginInput) (*domain.SessionOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionOutput), args.Error(1)
}

// Logout mocks the Logout method of AccountUseCase.
func (m *MockAccountUseCase) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// VerifyEmail mocks the VerifyEmail method of AccountUseCase.
func (m *MockAccountUseCase) VerifyEmail(ctx context.Context, input domain.VerifyEmailInput) (*domain.Profile, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

// RequestPasswordRecovery mocks the RequestPasswordRecovery method of AccountUseCase.
func (m *MockAccountUseCase) RequestPasswordRecovery(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// ResetPassword mocks the ResetPassword method of AccountUseCase.
func (m *MockAccountUseCase) ResetPassword(ctx context.Context, input domain.ResetPasswordInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

// CheckSession mocks the CheckSession method of AccountUseCase.
func (m *MockAccountUseCase) CheckSession(ctx context.Context, token string) (*domain.Profile, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

// Delete mocks the Delete method of AccountUseCase.
func (m *MockAccountUseCase) Delete(ctx context.Context, accountID uuid.UUID) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// MockNotifier is a mock implementation of Notifier for testing.
type MockNotifier struct {
	mock.Mock
}

// SendVerificationEmail mocks the SendVerificationEmail method of Notifier.
func (m *MockNotifier) SendVerificationEmail(ctx context.Context, email, name, code string) error {
	args := m.Called(ctx, email, name, code)
	return args.Error(0)
}

// SendWelcomeEmail mocks the SendWelcomeEmail method of Notifier.
func (m *MockNotifier) SendWelcomeEmail(ctx context.Context, email, name string) error {
	args := m.Called(ctx, email, name)
	return args.Error(0)
}

// SendPasswordRecoveryEmail mocks the SendPasswordRecoveryEmail method of Notifier.
func (m *MockNotifier) SendPasswordRecoveryEmail(ctx context.Context, email, name, resetURL string) error {
	args := m.Called(ctx, email, name, resetURL)
	return args.Error(0)
}

// SendPasswordResetSuccessEmail mocks the SendPasswordResetSuccessEmail method of Notifier.
func (m *MockNotifier) SendPasswordResetSuccessEmail(ctx context.Context, email, name string) error {
	args := m.Called(ctx, email, name)
	return args.Error(0)
}
