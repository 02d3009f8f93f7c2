package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// PostgreSQLOutboxEventRepository stores outbox events in PostgreSQL. Ids use the native UUID type.
type PostgreSQLOutboxEventRepository struct {
	outboxStore
}

// NewPostgreSQLOutboxEventRepository creates a PostgreSQL outbox repository.
func NewPostgreSQLOutboxEventRepository(db *sql.DB) *PostgreSQLOutboxEventRepository {
	return &PostgreSQLOutboxEventRepository{outboxStore{
		db: db,
		dialect: newOutboxDialect(
			func(n int) string { return fmt.Sprintf("$%d", n) },
			"NOW()",
			func(id uuid.UUID) (any, error) { return id, nil },
		),
	}}
}
