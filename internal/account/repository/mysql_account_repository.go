package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/accounts/internal/account/domain"
	"github.com/allisson/accounts/internal/database"
	apperrors "github.com/allisson/accounts/internal/errors"
)

// MySQLAccountRepository implements Account persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLAccountRepository struct {
	db *sql.DB
}

// NewMySQLAccountRepository creates a new MySQL Account repository.
func NewMySQLAccountRepository(db *sql.DB) *MySQLAccountRepository {
	return &MySQLAccountRepository{db: db}
}

// Create inserts a new Account. A unique violation on email maps to ErrAccountAlreadyExists.
func (m *MySQLAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	querier := database.GetTx(ctx, m.db)

	// Convert UUID to bytes for MySQL BINARY(16)
	id, err := account.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `INSERT INTO accounts (id, name, email, password, is_verified,
				email_verification_code, email_verification_code_expires_at,
				recovery_password_code, recovery_password_code_expires_at,
				last_login, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		account.Name,
		account.Email,
		account.Password,
		account.IsVerified,
		account.EmailVerificationCode,
		account.EmailVerificationCodeExpiresAt,
		account.RecoveryPasswordCode,
		account.RecoveryPasswordCodeExpiresAt,
		account.LastLogin,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrAccountAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create account")
	}
	return nil
}

// GetByID retrieves an Account by ID.
func (m *MySQLAccountRepository) GetByID(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := accountID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = ?`

	return m.getOne(querier.QueryRowContext(ctx, query, id), "failed to get account by id")
}

// GetByEmail retrieves an Account by exact email. The column collation is binary so the
// comparison is case-sensitive like PostgreSQL's.
func (m *MySQLAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = ?`

	return m.getOne(querier.QueryRowContext(ctx, query, email), "failed to get account by email")
}

// UpdateLastLogin sets last_login and updated_at.
func (m *MySQLAccountRepository) UpdateLastLogin(ctx context.Context, accountID uuid.UUID, lastLogin time.Time) error {
	querier := database.GetTx(ctx, m.db)

	id, err := accountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `UPDATE accounts SET last_login = ?, updated_at = ? WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, lastLogin, lastLogin, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update last login")
	}
	return requireOneRow(result, "failed to update last login")
}

// UpdatePassword replaces the password hash.
func (m *MySQLAccountRepository) UpdatePassword(ctx context.Context, accountID uuid.UUID, passwordHash string) error {
	querier := database.GetTx(ctx, m.db)

	id, err := accountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `UPDATE accounts SET password = ?, updated_at = NOW(6) WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update password")
	}
	return requireOneRow(result, "failed to update password")
}

// SetRecoveryPasswordCode stores a recovery digest and expiry together.
func (m *MySQLAccountRepository) SetRecoveryPasswordCode(
	ctx context.Context,
	accountID uuid.UUID,
	digest string,
	expiresAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := accountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := `UPDATE accounts
			  SET recovery_password_code = ?, recovery_password_code_expires_at = ?, updated_at = NOW(6)
			  WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, digest, expiresAt, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to set recovery password code")
	}
	return requireOneRow(result, "failed to set recovery password code")
}

// ConsumeEmailVerificationCode verifies the matching account and clears its code.
// MySQL cannot update a table it selects from in a subquery, so the candidate is looked up
// first and the conditional update repeats the match; only one concurrent caller sees a row affected.
func (m *MySQLAccountRepository) ConsumeEmailVerificationCode(
	ctx context.Context,
	email string,
	digest string,
	now time.Time,
) (*domain.Account, error) {
	querier := database.GetTx(ctx, m.db)

	var id []byte
	err := querier.QueryRowContext(
		ctx,
		`SELECT id FROM accounts
		 WHERE email_verification_code = ?
		   AND email_verification_code_expires_at > ?
		   AND (? = '' OR email = ?)
		 LIMIT 1`,
		digest, now, email, email,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvalidOrExpiredCode
		}
		return nil, apperrors.Wrap(err, "failed to find verification code")
	}

	result, err := querier.ExecContext(
		ctx,
		`UPDATE accounts
		 SET is_verified = TRUE,
			 email_verification_code = NULL,
			 email_verification_code_expires_at = NULL,
			 updated_at = ?
		 WHERE id = ? AND email_verification_code = ? AND email_verification_code_expires_at > ?`,
		now, id, digest, now,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to consume verification code")
	}

	return m.afterConsume(ctx, querier, result, id)
}

// ConsumeRecoveryPasswordCode replaces the password of the matching account and clears its token.
func (m *MySQLAccountRepository) ConsumeRecoveryPasswordCode(
	ctx context.Context,
	digest string,
	passwordHash string,
	now time.Time,
) (*domain.Account, error) {
	querier := database.GetTx(ctx, m.db)

	var id []byte
	err := querier.QueryRowContext(
		ctx,
		`SELECT id FROM accounts
		 WHERE recovery_password_code = ? AND recovery_password_code_expires_at > ?
		 LIMIT 1`,
		digest, now,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvalidOrExpiredCode
		}
		return nil, apperrors.Wrap(err, "failed to find recovery password code")
	}

	result, err := querier.ExecContext(
		ctx,
		`UPDATE accounts
		 SET password = ?,
			 recovery_password_code = NULL,
			 recovery_password_code_expires_at = NULL,
			 updated_at = ?
		 WHERE id = ? AND recovery_password_code = ? AND recovery_password_code_expires_at > ?`,
		passwordHash, now, id, digest, now,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to consume recovery password code")
	}

	return m.afterConsume(ctx, querier, result, id)
}

// Delete removes an Account.
func (m *MySQLAccountRepository) Delete(ctx context.Context, accountID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := accountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete account")
	}
	return requireOneRow(result, "failed to delete account")
}

// afterConsume re-reads the account if the conditional update won.
func (m *MySQLAccountRepository) afterConsume(
	ctx context.Context,
	querier database.Querier,
	result sql.Result,
	id []byte,
) (*domain.Account, error) {
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read affected rows")
	}
	if rows == 0 {
		return nil, domain.ErrInvalidOrExpiredCode
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = ?`
	return m.getOne(querier.QueryRowContext(ctx, query, id), "failed to reload account")
}

func (m *MySQLAccountRepository) getOne(row *sql.Row, message string) (*domain.Account, error) {
	var id []byte
	account, err := scanAccount(row, &id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, message)
	}

	// Convert bytes back to UUID
	if err := account.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	return account, nil
}
