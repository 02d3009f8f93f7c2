// Package repository implements account persistence.
//
// Provides PostgreSQL and MySQL implementations with transaction support via database.GetTx().
// PostgreSQL uses native UUID types, MySQL uses BINARY(16) types.
package repository

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	"github.com/allisson/accounts/internal/account/domain"
)

// accountColumns is the select list shared by every account query.
const accountColumns = `id, name, email, password, is_verified,
	email_verification_code, email_verification_code_expires_at,
	recovery_password_code, recovery_password_code_expires_at,
	last_login, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// accountRow holds the nullable columns while scanning.
type accountRow struct {
	account                        domain.Account
	emailVerificationCode          sql.NullString
	emailVerificationCodeExpiresAt sql.NullTime
	recoveryPasswordCode           sql.NullString
	recoveryPasswordCodeExpiresAt  sql.NullTime
	lastLogin                      sql.NullTime
}

// scanAccount reads one row in accountColumns order. id receives the raw id column so each
// driver can decode it its own way.
func scanAccount(scanner rowScanner, id any) (*domain.Account, error) {
	var row accountRow
	err := scanner.Scan(
		id,
		&row.account.Name,
		&row.account.Email,
		&row.account.Password,
		&row.account.IsVerified,
		&row.emailVerificationCode,
		&row.emailVerificationCodeExpiresAt,
		&row.recoveryPasswordCode,
		&row.recoveryPasswordCodeExpiresAt,
		&row.lastLogin,
		&row.account.CreatedAt,
		&row.account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	account := row.account
	account.EmailVerificationCode = stringPtr(row.emailVerificationCode)
	account.EmailVerificationCodeExpiresAt = timePtr(row.emailVerificationCodeExpiresAt)
	account.RecoveryPasswordCode = stringPtr(row.recoveryPasswordCode)
	account.RecoveryPasswordCodeExpiresAt = timePtr(row.recoveryPasswordCodeExpiresAt)
	account.LastLogin = timePtr(row.lastLogin)
	return &account, nil
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time.UTC()
	return &t
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}
