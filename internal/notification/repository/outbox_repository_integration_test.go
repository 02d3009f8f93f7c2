package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/accounts/internal/database"
	"github.com/allisson/accounts/internal/notification/domain"
	"github.com/allisson/accounts/internal/notification/usecase"
	"github.com/allisson/accounts/internal/testutil"
)

func newOutboxRepository(driver string, db *sql.DB) usecase.OutboxEventRepository {
	if driver == database.DriverPostgres {
		return NewPostgreSQLOutboxEventRepository(db)
	}
	return NewMySQLOutboxEventRepository(db)
}

func newPendingEvent(eventType string) *domain.OutboxEvent {
	return &domain.OutboxEvent{
		ID:        uuid.Must(uuid.NewV7()),
		EventType: eventType,
		Payload:   `{"email":"john@example.com","name":"John"}`,
		Status:    domain.OutboxEventStatusPending,
	}
}

func TestOutboxRepositoryIntegration(t *testing.T) {
	for _, driver := range testutil.Drivers {
		t.Run(driver, func(t *testing.T) {
			db := testutil.OpenDB(t, driver)
			repo := newOutboxRepository(driver, db)
			txManager := database.NewTxManager(db)
			ctx := context.Background()

			first := newPendingEvent(domain.EventTypeVerificationEmail)
			second := newPendingEvent(domain.EventTypeWelcomeEmail)
			require.NoError(t, repo.Create(ctx, first))
			require.NoError(t, repo.Create(ctx, second))
			assert.Equal(t, 2, testutil.CountRows(t, db, "outbox_events"))

			// Oldest pending event first, honoring the limit.
			err := txManager.WithTx(ctx, func(ctx context.Context) error {
				events, err := repo.GetPendingEvents(ctx, 1)
				require.NoError(t, err)
				require.Len(t, events, 1)
				assert.Equal(t, first.ID, events[0].ID)
				assert.Equal(t, first.Payload, events[0].Payload)

				events[0].MarkProcessed(time.Now().UTC())
				return repo.Update(ctx, events[0])
			})
			require.NoError(t, err)

			second.MarkAttemptFailed(errors.New("smtp timeout"), 3, true)
			require.NoError(t, repo.Update(ctx, second))

			var withPayload int
			err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM outbox_events WHERE payload <> ''").Scan(&withPayload)
			require.NoError(t, err)
			assert.Zero(t, withPayload)

			err = txManager.WithTx(ctx, func(ctx context.Context) error {
				events, err := repo.GetPendingEvents(ctx, 10)
				require.NoError(t, err)
				assert.Empty(t, events)
				return nil
			})
			require.NoError(t, err)
		})
	}
}
