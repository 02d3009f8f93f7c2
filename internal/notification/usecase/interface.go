// Package usecase queues account emails in the transactional outbox and delivers them.
package usecase

import (
	"context"

	"github.com/allisson/accounts/internal/notification/domain"
)

// OutboxEventRepository defines outbox event repository operations
type OutboxEventRepository interface {
	Create(ctx context.Context, event *domain.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	Update(ctx context.Context, event *domain.OutboxEvent) error
}

// EventProcessor handles one outbox event. An error wrapping ErrInvalidInput is permanent
// and fails the event without further retries.
type EventProcessor interface {
	Process(ctx context.Context, event *domain.OutboxEvent) error
}

// MessageRenderer builds the email for an event type.
type MessageRenderer interface {
	Render(eventType string, payload domain.EmailPayload) (*domain.Message, error)
}

// PayloadCodec seals email payloads for storage in the outbox and opens them for delivery.
type PayloadCodec interface {
	Seal(ctx context.Context, payload domain.EmailPayload) (string, error)
	Open(ctx context.Context, sealed string) (domain.EmailPayload, error)
}

// MailSender delivers a rendered message.
type MailSender interface {
	Send(ctx context.Context, message *domain.Message) error
}

// OutboxUseCase drains the outbox.
type OutboxUseCase interface {
	// Start polls the outbox every interval until ctx is canceled.
	Start(ctx context.Context) error

	// ProcessEvents processes one batch of pending events.
	ProcessEvents(ctx context.Context) error
}
