package dto

import "github.com/allisson/accounts/internal/account/domain"

// ToSignupInput converts a signup request to the use case input.
func ToSignupInput(req SignupRequest) domain.SignupInput {
	return domain.SignupInput{Name: req.Name, Email: req.Email, Password: req.Password}
}

// ToLoginInput converts a login request to the use case input.
func ToLoginInput(req LoginRequest) domain.LoginInput {
	return domain.LoginInput{Email: req.Email, Password: req.Password}
}

// ToVerifyEmailInput converts a verify email request to the use case input.
func ToVerifyEmailInput(req VerifyEmailRequest) domain.VerifyEmailInput {
	return domain.VerifyEmailInput{Email: req.Email, Code: req.VerificationCode}
}

// ToResetPasswordInput converts a reset password request and its path token to the use case input.
func ToResetPasswordInput(token string, req ResetPasswordRequest) domain.ResetPasswordInput {
	return domain.ResetPasswordInput{Token: token, Password: req.Password}
}
