package usecase

import (
	"context"

	"github.com/google/uuid"

	apperrors "github.com/allisson/accounts/internal/errors"
	"github.com/allisson/accounts/internal/notification/domain"
)

// OutboxNotifier queues account emails in the outbox. Delivery happens later in the outbox worker,
// so a slow or failing mail provider never blocks the request that triggered the email.
// Payloads are sealed with codec before they reach the table.
type OutboxNotifier struct {
	outboxRepo OutboxEventRepository
	codec      PayloadCodec
}

// NewOutboxNotifier creates a new OutboxNotifier.
func NewOutboxNotifier(outboxRepo OutboxEventRepository, codec PayloadCodec) *OutboxNotifier {
	return &OutboxNotifier{outboxRepo: outboxRepo, codec: codec}
}

// SendVerificationEmail queues the email carrying the verification code.
func (n *OutboxNotifier) SendVerificationEmail(ctx context.Context, email, name, code string) error {
	return n.enqueue(ctx, domain.EventTypeVerificationEmail, domain.EmailPayload{Email: email, Name: name, Code: code})
}

// SendWelcomeEmail queues the welcome email.
func (n *OutboxNotifier) SendWelcomeEmail(ctx context.Context, email, name string) error {
	return n.enqueue(ctx, domain.EventTypeWelcomeEmail, domain.EmailPayload{Email: email, Name: name})
}

// SendPasswordRecoveryEmail queues the email carrying the reset link.
func (n *OutboxNotifier) SendPasswordRecoveryEmail(ctx context.Context, email, name, resetURL string) error {
	return n.enqueue(ctx, domain.EventTypePasswordRecoveryEmail,
		domain.EmailPayload{Email: email, Name: name, ResetURL: resetURL})
}

// SendPasswordResetSuccessEmail queues the reset confirmation email.
func (n *OutboxNotifier) SendPasswordResetSuccessEmail(ctx context.Context, email, name string) error {
	return n.enqueue(ctx, domain.EventTypePasswordResetSuccessEmail, domain.EmailPayload{Email: email, Name: name})
}

func (n *OutboxNotifier) enqueue(ctx context.Context, eventType string, payload domain.EmailPayload) error {
	id, err := uuid.NewV7()
	if err != nil {
		return apperrors.Wrap(err, "failed to generate event id")
	}

	sealed, err := n.codec.Seal(ctx, payload)
	if err != nil {
		return err
	}

	event := &domain.OutboxEvent{
		ID:        id,
		EventType: eventType,
		Payload:   sealed,
		Status:    domain.OutboxEventStatusPending,
	}
	return n.outboxRepo.Create(ctx, event)
}
