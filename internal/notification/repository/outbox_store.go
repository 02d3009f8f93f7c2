// Package repository provides PostgreSQL and MySQL stores for the notification outbox.
//
// Both dialects share outboxStore. They differ only in placeholders, the clock
// function and how the UUID primary key is encoded.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/allisson/accounts/internal/database"
	apperrors "github.com/allisson/accounts/internal/errors"
	"github.com/allisson/accounts/internal/notification/domain"
)

const outboxColumns = "id, event_type, payload, status, retries, last_error, processed_at, created_at, updated_at"

type outboxDialect struct {
	insert  string
	pending string
	update  string
	idArg   func(uuid.UUID) (any, error)
}

type outboxStore struct {
	db      *sql.DB
	dialect outboxDialect
}

// Create inserts a new outbox event, joining the transaction in ctx when there is one.
func (s *outboxStore) Create(ctx context.Context, event *domain.OutboxEvent) error {
	id, err := s.dialect.idArg(event.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode outbox event id")
	}

	_, err = database.GetTx(ctx, s.db).ExecContext(ctx, s.dialect.insert,
		id, event.EventType, event.Payload, event.Status, event.Retries, event.LastError, event.ProcessedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create outbox event")
	}
	return nil
}

// GetPendingEvents locks and returns up to limit pending events, oldest first.
// Rows locked by another worker are skipped, so it must run inside a transaction.
func (s *outboxStore) GetPendingEvents(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	rows, err := database.GetTx(ctx, s.db).QueryContext(ctx, s.dialect.pending, domain.OutboxEventStatusPending, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get pending outbox events")
	}
	defer rows.Close() //nolint:errcheck

	var events []*domain.OutboxEvent
	for rows.Next() {
		var event domain.OutboxEvent
		// uuid.UUID scans both the postgres text form and the 16 byte mysql form.
		err := rows.Scan(&event.ID, &event.EventType, &event.Payload, &event.Status,
			&event.Retries, &event.LastError, &event.ProcessedAt, &event.CreatedAt, &event.UpdatedAt)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan outbox event")
		}
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate outbox events")
	}
	return events, nil
}

// Update stores the delivery state of an outbox event. The payload is written too,
// so a processed or failed event no longer holds the sealed email.
func (s *outboxStore) Update(ctx context.Context, event *domain.OutboxEvent) error {
	id, err := s.dialect.idArg(event.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode outbox event id")
	}

	_, err = database.GetTx(ctx, s.db).ExecContext(ctx, s.dialect.update,
		event.Status, event.Retries, event.LastError, event.ProcessedAt, event.Payload, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update outbox event")
	}
	return nil
}

func newOutboxDialect(placeholder func(n int) string, now string, idArg func(uuid.UUID) (any, error)) outboxDialect {
	return outboxDialect{
		insert: fmt.Sprintf(`INSERT INTO outbox_events (%s)
			  VALUES (%s, %s, %s, %s, %s, %s, %s, %s, %s)`,
			outboxColumns,
			placeholder(1), placeholder(2), placeholder(3), placeholder(4),
			placeholder(5), placeholder(6), placeholder(7), now, now),
		pending: fmt.Sprintf(`SELECT %s
			  FROM outbox_events
			  WHERE status = %s
			  ORDER BY created_at ASC
			  LIMIT %s
			  FOR UPDATE SKIP LOCKED`,
			outboxColumns, placeholder(1), placeholder(2)),
		update: fmt.Sprintf(`UPDATE outbox_events
			  SET status = %s, retries = %s, last_error = %s, processed_at = %s, payload = %s, updated_at = %s
			  WHERE id = %s`,
			placeholder(1), placeholder(2), placeholder(3), placeholder(4), placeholder(5), now, placeholder(6)),
		idArg: idArg,
	}
}
