package repository

import (
	"database/sql"

	"github.com/google/uuid"
)

// MySQLOutboxEventRepository stores outbox events in MySQL. Ids are BINARY(16).
type MySQLOutboxEventRepository struct {
	outboxStore
}

// NewMySQLOutboxEventRepository creates a MySQL outbox repository.
func NewMySQLOutboxEventRepository(db *sql.DB) *MySQLOutboxEventRepository {
	return &MySQLOutboxEventRepository{outboxStore{
		db: db,
		dialect: newOutboxDialect(
			func(int) string { return "?" },
			"NOW(6)",
			func(id uuid.UUID) (any, error) { return id.MarshalBinary() },
		),
	}}
}
