package domain

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/accounts/internal/errors"
)

func TestAccount_Profile(t *testing.T) {
	lastLogin := time.Now().UTC()
	account := &Account{
		ID:         uuid.Must(uuid.NewV7()),
		Name:       "John Doe",
		Email:      "john@example.com",
		Password:   "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		IsVerified: true,
		LastLogin:  &lastLogin,
		CreatedAt:  lastLogin.Add(-time.Hour),
		UpdatedAt:  lastLogin,
	}
	account.SetEmailVerificationCode("digest", lastLogin.Add(time.Hour))

	profile := account.Profile()

	assert.Equal(t, account.ID, profile.ID)
	assert.Equal(t, "John Doe", profile.Name)
	assert.Equal(t, "john@example.com", profile.Email)
	assert.True(t, profile.IsVerified)
	assert.Equal(t, &lastLogin, profile.LastLogin)
	assert.Equal(t, account.CreatedAt, profile.CreatedAt)
	assert.Equal(t, account.UpdatedAt, profile.UpdatedAt)
}

func TestProfile_HasNoSecretFields(t *testing.T) {
	profileType := reflect.TypeOf(Profile{})
	for _, name := range []string{
		"Password",
		"EmailVerificationCode",
		"EmailVerificationCodeExpiresAt",
		"RecoveryPasswordCode",
		"RecoveryPasswordCodeExpiresAt",
	} {
		_, found := profileType.FieldByName(name)
		assert.False(t, found, "profile must not expose %s", name)
	}
}

func TestAccount_CodeSetters(t *testing.T) {
	now := time.Now().UTC()
	account := &Account{}

	t.Run("EmailVerificationCode", func(t *testing.T) {
		account.SetEmailVerificationCode("abc", now.Add(time.Hour))
		assert.Equal(t, "abc", *account.EmailVerificationCode)
		assert.Equal(t, now.Add(time.Hour), *account.EmailVerificationCodeExpiresAt)
	})

	t.Run("RecoveryPasswordCode", func(t *testing.T) {
		account.SetRecoveryPasswordCode("def", now.Add(time.Minute))
		assert.Equal(t, "def", *account.RecoveryPasswordCode)
		assert.Equal(t, now.Add(time.Minute), *account.RecoveryPasswordCodeExpiresAt)
	})
}

func TestErrors_Kinds(t *testing.T) {
	assert.ErrorIs(t, ErrAccountNotFound, apperrors.ErrNotFound)
	assert.ErrorIs(t, ErrAccountAlreadyExists, apperrors.ErrConflict)
	assert.ErrorIs(t, ErrInvalidCredentials, apperrors.ErrAuthentication)
	assert.ErrorIs(t, ErrInvalidOrExpiredCode, apperrors.ErrInvalidOrExpired)
	assert.ErrorIs(t, ErrSessionMissing, apperrors.ErrUnauthorized)
	assert.ErrorIs(t, ErrSessionInvalid, apperrors.ErrUnauthorized)
	assert.ErrorIs(t, ErrSessionAccountNotFound, apperrors.ErrUnauthorized)
}
