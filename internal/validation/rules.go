// Package validation holds the jellydator/validation rules shared by the account
// request DTOs and use case inputs.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/accounts/internal/errors"
)

// Limits applied to account fields.
const (
	MaxNameLength     = 255
	MaxEmailLength    = 255
	MaxPasswordLength = 128
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// NotBlank rejects strings made only of whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool { return strings.TrimSpace(s) != "" },
	validation.NewError("validation_not_blank", "must not be blank"),
)

// Email checks the address shape. Deliverability is proven by the verification code.
var Email = validation.NewStringRuleWithError(
	emailPattern.MatchString,
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// PasswordLength caps the password in bytes, which is what the hasher consumes.
var PasswordLength = validation.NewStringRuleWithError(
	func(s string) bool { return len(s) <= MaxPasswordLength },
	validation.NewError("validation_password_length", "must be at most 128 bytes long"),
)

// NameRules validates a display name.
func NameRules() []validation.Rule {
	return []validation.Rule{validation.Required, NotBlank, validation.Length(1, MaxNameLength)}
}

// EmailRules validates an address given at signup.
func EmailRules() []validation.Rule {
	return []validation.Rule{validation.Required, Email, validation.Length(1, MaxEmailLength)}
}

// PasswordRules validates a new password. Passwords are never trimmed.
func PasswordRules() []validation.Rule {
	return []validation.Rule{validation.Required, PasswordLength}
}

// WrapValidationError turns a validation failure into an ErrInvalidInput so the
// HTTP layer maps it to 400.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}
