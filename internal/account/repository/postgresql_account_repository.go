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

// PostgreSQLAccountRepository implements Account persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLAccountRepository struct {
	db *sql.DB
}

// NewPostgreSQLAccountRepository creates a new PostgreSQL Account repository.
func NewPostgreSQLAccountRepository(db *sql.DB) *PostgreSQLAccountRepository {
	return &PostgreSQLAccountRepository{db: db}
}

// Create inserts a new Account. A unique violation on email maps to ErrAccountAlreadyExists.
func (p *PostgreSQLAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO accounts (id, name, email, password, is_verified,
				email_verification_code, email_verification_code_expires_at,
				recovery_password_code, recovery_password_code_expires_at,
				last_login, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := querier.ExecContext(
		ctx,
		query,
		account.ID,
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
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrAccountAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create account")
	}
	return nil
}

// GetByID retrieves an Account by ID.
func (p *PostgreSQLAccountRepository) GetByID(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	return p.getOne(querier.QueryRowContext(ctx, query, accountID), "failed to get account by id")
}

// GetByEmail retrieves an Account by exact email.
func (p *PostgreSQLAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	return p.getOne(querier.QueryRowContext(ctx, query, email), "failed to get account by email")
}

// UpdateLastLogin sets last_login and updated_at.
func (p *PostgreSQLAccountRepository) UpdateLastLogin(
	ctx context.Context,
	accountID uuid.UUID,
	lastLogin time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE accounts SET last_login = $1, updated_at = $1 WHERE id = $2`

	result, err := querier.ExecContext(ctx, query, lastLogin, accountID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update last login")
	}
	return requireOneRow(result, "failed to update last login")
}

// UpdatePassword replaces the password hash.
func (p *PostgreSQLAccountRepository) UpdatePassword(
	ctx context.Context,
	accountID uuid.UUID,
	passwordHash string,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE accounts SET password = $1, updated_at = NOW() WHERE id = $2`

	result, err := querier.ExecContext(ctx, query, passwordHash, accountID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update password")
	}
	return requireOneRow(result, "failed to update password")
}

// SetRecoveryPasswordCode stores a recovery digest and expiry together.
func (p *PostgreSQLAccountRepository) SetRecoveryPasswordCode(
	ctx context.Context,
	accountID uuid.UUID,
	digest string,
	expiresAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE accounts
			  SET recovery_password_code = $1, recovery_password_code_expires_at = $2, updated_at = NOW()
			  WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, digest, expiresAt, accountID)
	if err != nil {
		return apperrors.Wrap(err, "failed to set recovery password code")
	}
	return requireOneRow(result, "failed to set recovery password code")
}

// ConsumeEmailVerificationCode verifies the matching account and clears its code in one statement.
// SKIP LOCKED makes a concurrent consumer of the same code find no row instead of waiting.
func (p *PostgreSQLAccountRepository) ConsumeEmailVerificationCode(
	ctx context.Context,
	email string,
	digest string,
	now time.Time,
) (*domain.Account, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE accounts
			  SET is_verified = TRUE,
				  email_verification_code = NULL,
				  email_verification_code_expires_at = NULL,
				  updated_at = $2
			  WHERE id = (
				  SELECT id FROM accounts
				  WHERE email_verification_code = $1
					AND email_verification_code_expires_at > $2
					AND ($3::text = '' OR email = $3)
				  LIMIT 1
				  FOR UPDATE SKIP LOCKED
			  )
			  AND email_verification_code = $1
			  RETURNING ` + accountColumns

	return p.consume(querier.QueryRowContext(ctx, query, digest, now, email), "failed to consume verification code")
}

// ConsumeRecoveryPasswordCode replaces the password of the matching account and clears its token
// in one statement.
func (p *PostgreSQLAccountRepository) ConsumeRecoveryPasswordCode(
	ctx context.Context,
	digest string,
	passwordHash string,
	now time.Time,
) (*domain.Account, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE accounts
			  SET password = $3,
				  recovery_password_code = NULL,
				  recovery_password_code_expires_at = NULL,
				  updated_at = $2
			  WHERE id = (
				  SELECT id FROM accounts
				  WHERE recovery_password_code = $1
					AND recovery_password_code_expires_at > $2
				  LIMIT 1
				  FOR UPDATE SKIP LOCKED
			  )
			  AND recovery_password_code = $1
			  RETURNING ` + accountColumns

	return p.consume(
		querier.QueryRowContext(ctx, query, digest, now, passwordHash),
		"failed to consume recovery password code",
	)
}

// Delete removes an Account.
func (p *PostgreSQLAccountRepository) Delete(ctx context.Context, accountID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, accountID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete account")
	}
	return requireOneRow(result, "failed to delete account")
}

func (p *PostgreSQLAccountRepository) getOne(row *sql.Row, message string) (*domain.Account, error) {
	var id uuid.UUID
	account, err := scanAccount(row, &id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, message)
	}
	account.ID = id
	return account, nil
}

func (p *PostgreSQLAccountRepository) consume(row *sql.Row, message string) (*domain.Account, error) {
	account, err := p.getOne(row, message)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return nil, domain.ErrInvalidOrExpiredCode
	}
	return account, err
}

// requireOneRow maps an update that touched no row to ErrAccountNotFound.
func requireOneRow(result sql.Result, message string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, message)
	}
	if rows == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}
