package repository

import (
	"database/sql/driver"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/allisson/accounts/internal/account/domain"
)

var accountColumnNames = []string{
	"id", "name", "email", "password", "is_verified",
	"email_verification_code", "email_verification_code_expires_at",
	"recovery_password_code", "recovery_password_code_expires_at",
	"last_login", "created_at", "updated_at",
}

// accountRows builds a one-row result for account; id is the driver representation of its id.
func accountRows(account *domain.Account, id driver.Value) *sqlmock.Rows {
	var code, recovery driver.Value
	var codeExpires, recoveryExpires, lastLogin driver.Value
	if account.EmailVerificationCode != nil {
		code = *account.EmailVerificationCode
		codeExpires = *account.EmailVerificationCodeExpiresAt
	}
	if account.RecoveryPasswordCode != nil {
		recovery = *account.RecoveryPasswordCode
		recoveryExpires = *account.RecoveryPasswordCodeExpiresAt
	}
	if account.LastLogin != nil {
		lastLogin = *account.LastLogin
	}
	return sqlmock.NewRows(accountColumnNames).AddRow(
		id,
		account.Name,
		account.Email,
		account.Password,
		account.IsVerified,
		code,
		codeExpires,
		recovery,
		recoveryExpires,
		lastLogin,
		account.CreatedAt,
		account.UpdatedAt,
	)
}

func fixtureAccount(now time.Time) *domain.Account {
	account := &domain.Account{
		Name:      "John Doe",
		Email:     "john@example.com",
		Password:  "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		CreatedAt: now,
		UpdatedAt: now,
	}
	account.SetEmailVerificationCode("digest", now.Add(24*time.Hour))
	return account
}
