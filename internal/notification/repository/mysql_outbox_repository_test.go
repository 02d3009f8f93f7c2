package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/accounts/internal/notification/domain"
)

func setupMySQLMock(t *testing.T) (*MySQLOutboxEventRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewMySQLOutboxEventRepository(db), mock
}

func TestMySQLOutboxEventRepository_CreateAndFetch(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	repo, mock := setupMySQLMock(t)

	event := &domain.OutboxEvent{
		ID:        uuid.Must(uuid.NewV7()),
		EventType: domain.EventTypePasswordRecoveryEmail,
		Payload:   `{"email":"john@example.com"}`,
		Status:    domain.OutboxEventStatusPending,
	}
	idBytes, err := event.ID.MarshalBinary()
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WithArgs(idBytes, event.EventType, event.Payload, "pending", 0, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE SKIP LOCKED")).
		WithArgs("pending", 5).
		WillReturnRows(sqlmock.NewRows(outboxColumnNames).
			AddRow(idBytes, event.EventType, event.Payload, "pending", 0, nil, nil, now, now))

	require.NoError(t, repo.Create(ctx, event))

	events, err := repo.GetPendingEvents(ctx, 5)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.ID, events[0].ID)
	assert.Equal(t, event.Payload, events[0].Payload)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLOutboxEventRepository_Update(t *testing.T) {
	repo, mock := setupMySQLMock(t)
	lastError := "smtp unavailable"
	event := &domain.OutboxEvent{
		ID:        uuid.Must(uuid.NewV7()),
		Status:    domain.OutboxEventStatusFailed,
		Retries:   3,
		LastError: &lastError,
	}
	idBytes, err := event.ID.MarshalBinary()
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("failed", 3, lastError, nil, "", idBytes).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxDialects(t *testing.T) {
	pg := NewPostgreSQLOutboxEventRepository(nil).dialect
	assert.Contains(t, pg.insert, "VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())")
	assert.Contains(t, pg.pending, "WHERE status = $1")
	assert.Contains(t, pg.pending, "LIMIT $2")
	assert.Contains(t, pg.update, "updated_at = NOW()")
	assert.Contains(t, pg.update, "payload = $5")
	assert.Contains(t, pg.update, "WHERE id = $6")

	my := NewMySQLOutboxEventRepository(nil).dialect
	assert.Contains(t, my.insert, "VALUES (?, ?, ?, ?, ?, ?, ?, NOW(6), NOW(6))")
	assert.Contains(t, my.update, "WHERE id = ?")

	id := uuid.Must(uuid.NewV7())
	encoded, err := my.idArg(id)
	require.NoError(t, err)
	assert.Len(t, encoded, 16)
}
