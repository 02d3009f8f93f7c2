package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/accounts/internal/notification/domain"
	"github.com/allisson/accounts/internal/notification/service"
)

func newTestCodec(t *testing.T) *service.PayloadCodec {
	t.Helper()

	codec, err := service.NewLocalPayloadCodec([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = codec.Close() })
	return codec
}

func captureEvent(t *testing.T, call func(n *OutboxNotifier) error) (*domain.OutboxEvent, domain.EmailPayload) {
	t.Helper()

	repo := &MockOutboxEventRepository{}
	codec := newTestCodec(t)
	var captured *domain.OutboxEvent
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.OutboxEvent")).
		Run(func(args mock.Arguments) { captured = args.Get(1).(*domain.OutboxEvent) }).
		Return(nil).Once()

	require.NoError(t, call(NewOutboxNotifier(repo, codec)))
	require.NotNil(t, captured)
	assert.NotContains(t, captured.Payload, "john@example.com")

	payload, err := codec.Open(context.Background(), captured.Payload)
	require.NoError(t, err)
	return captured, payload
}

func TestOutboxNotifier(t *testing.T) {
	ctx := context.Background()

	t.Run("SendVerificationEmail", func(t *testing.T) {
		event, payload := captureEvent(t, func(n *OutboxNotifier) error {
			return n.SendVerificationEmail(ctx, "john@example.com", "John Doe", "123456")
		})
		assert.Equal(t, domain.EventTypeVerificationEmail, event.EventType)
		assert.Equal(t, domain.OutboxEventStatusPending, event.Status)
		assert.NotContains(t, event.Payload, "123456")
		assert.Equal(t, "123456", payload.Code)
		assert.Equal(t, "john@example.com", payload.Email)
	})

	t.Run("SendWelcomeEmail", func(t *testing.T) {
		event, payload := captureEvent(t, func(n *OutboxNotifier) error {
			return n.SendWelcomeEmail(ctx, "john@example.com", "John Doe")
		})
		assert.Equal(t, domain.EventTypeWelcomeEmail, event.EventType)
		assert.Empty(t, payload.Code)
	})

	t.Run("SendPasswordRecoveryEmail", func(t *testing.T) {
		event, payload := captureEvent(t, func(n *OutboxNotifier) error {
			return n.SendPasswordRecoveryEmail(ctx, "john@example.com", "John Doe",
				"http://localhost:5173/reset-password/deadbeefcafebabe")
		})
		assert.Equal(t, domain.EventTypePasswordRecoveryEmail, event.EventType)
		assert.NotContains(t, event.Payload, "deadbeefcafebabe")
		assert.Equal(t, "http://localhost:5173/reset-password/deadbeefcafebabe", payload.ResetURL)
	})

	t.Run("SendPasswordResetSuccessEmail", func(t *testing.T) {
		event, _ := captureEvent(t, func(n *OutboxNotifier) error {
			return n.SendPasswordResetSuccessEmail(ctx, "john@example.com", "John Doe")
		})
		assert.Equal(t, domain.EventTypePasswordResetSuccessEmail, event.EventType)
	})

	t.Run("Error_Create", func(t *testing.T) {
		repo := &MockOutboxEventRepository{}
		expectedErr := errors.New("insert failed")
		repo.On("Create", mock.Anything, mock.Anything).Return(expectedErr).Once()

		err := NewOutboxNotifier(repo, newTestCodec(t)).SendWelcomeEmail(ctx, "john@example.com", "John Doe")
		assert.ErrorIs(t, err, expectedErr)
	})
}
