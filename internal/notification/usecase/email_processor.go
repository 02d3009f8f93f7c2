package usecase

import (
	"context"

	apperrors "github.com/allisson/accounts/internal/errors"
	"github.com/allisson/accounts/internal/notification/domain"
)

// emailEventProcessor renders an outbox event into an email and sends it.
type emailEventProcessor struct {
	codec    PayloadCodec
	renderer MessageRenderer
	sender   MailSender
}

// NewEmailEventProcessor creates the EventProcessor that delivers account emails.
func NewEmailEventProcessor(codec PayloadCodec, renderer MessageRenderer, sender MailSender) EventProcessor {
	return &emailEventProcessor{
		codec:    codec,
		renderer: renderer,
		sender:   sender,
	}
}

// Process opens the sealed payload, renders the template for the event type and sends the result.
func (p *emailEventProcessor) Process(ctx context.Context, event *domain.OutboxEvent) error {
	payload, err := p.codec.Open(ctx, event.Payload)
	if err != nil {
		return err
	}
	if payload.Email == "" {
		return apperrors.Wrap(domain.ErrInvalidPayload, "missing recipient")
	}

	message, err := p.renderer.Render(event.EventType, payload)
	if err != nil {
		return err
	}

	return p.sender.Send(ctx, message)
}
