package domain

import (
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/accounts/internal/validation"
)

// SignupInput contains the fields needed to register an account.
type SignupInput struct {
	Name     string
	Email    string
	Password string //nolint:gosec // plaintext only until hashed
}

// Normalize trims the name and email. The password is kept byte for byte.
func (i *SignupInput) Normalize() {
	i.Name = strings.TrimSpace(i.Name)
	i.Email = strings.TrimSpace(i.Email)
}

// Validate checks that every field is present and well formed.
func (i *SignupInput) Validate() error {
	err := validation.ValidateStruct(i,
		validation.Field(&i.Name, customValidation.NameRules()...),
		validation.Field(&i.Email, customValidation.EmailRules()...),
		validation.Field(&i.Password, customValidation.PasswordRules()...),
	)
	return customValidation.WrapValidationError(err)
}

// LoginInput contains login credentials.
type LoginInput struct {
	Email    string
	Password string //nolint:gosec // plaintext credential
}

// Normalize trims the email.
func (i *LoginInput) Normalize() {
	i.Email = strings.TrimSpace(i.Email)
}

// Validate checks that both credentials are present.
func (i *LoginInput) Validate() error {
	err := validation.ValidateStruct(i,
		validation.Field(&i.Email, validation.Required),
		validation.Field(&i.Password, validation.Required),
	)
	return customValidation.WrapValidationError(err)
}

// VerifyEmailInput contains an email verification code and, optionally, the email it was sent to.
type VerifyEmailInput struct {
	Email string
	Code  string
}

// Normalize trims both fields.
func (i *VerifyEmailInput) Normalize() {
	i.Email = strings.TrimSpace(i.Email)
	i.Code = strings.TrimSpace(i.Code)
}

// Validate checks that the code is present.
func (i *VerifyEmailInput) Validate() error {
	err := validation.ValidateStruct(i,
		validation.Field(&i.Code, validation.Required),
	)
	return customValidation.WrapValidationError(err)
}

// ResetPasswordInput contains a recovery token and the replacement password.
type ResetPasswordInput struct {
	Token    string
	Password string //nolint:gosec // plaintext only until hashed
}

// Validate checks that the token and the new password are present.
func (i *ResetPasswordInput) Validate() error {
	err := validation.ValidateStruct(i,
		validation.Field(&i.Token, validation.Required),
		validation.Field(&i.Password, customValidation.PasswordRules()...),
	)
	return customValidation.WrapValidationError(err)
}

// SessionOutput is returned by operations that sign the caller in.
type SessionOutput struct {
	Profile   *Profile
	Token     string
	ExpiresAt time.Time
}
