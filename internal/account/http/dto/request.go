// Package dto provides data transfer objects for the account HTTP API.
package dto

import (
	"strings"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/accounts/internal/validation"
)

// SignupRequest contains the parameters for registering an account.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"` //nolint:gosec // request payload
}

// Validate trims the name and email, then checks the request the same way the use case does.
func (r *SignupRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, customValidation.NameRules()...),
		validation.Field(&r.Email, customValidation.EmailRules()...),
		validation.Field(&r.Password, customValidation.PasswordRules()...),
	)
}

// LoginRequest contains login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"` //nolint:gosec // request payload
}

// Validate checks if the login request is valid.
func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Password, validation.Required),
	)
}

// VerifyEmailRequest contains an email verification code and an optional email.
type VerifyEmailRequest struct {
	Email            string `json:"email"`
	VerificationCode string `json:"verificationCode"`
}

// Validate checks if the verify email request is valid.
func (r *VerifyEmailRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.VerificationCode, validation.Required, customValidation.NotBlank),
	)
}

// ForgotPasswordRequest contains the email of the account to recover.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// Validate checks if the forgot password request is valid.
func (r *ForgotPasswordRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, customValidation.NotBlank),
	)
}

// ResetPasswordRequest contains the replacement password. The token travels in the path.
type ResetPasswordRequest struct {
	Password string `json:"password"` //nolint:gosec // request payload
}

// Validate checks if the reset password request is valid.
func (r *ResetPasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password, customValidation.PasswordRules()...),
	)
}
