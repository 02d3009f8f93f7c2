package domain

import (
	"github.com/allisson/accounts/internal/errors"
)

var (
	// ErrUnknownEventType indicates an outbox event no processor knows how to handle.
	ErrUnknownEventType = errors.Wrap(errors.ErrInvalidInput, "unknown event type")

	// ErrInvalidPayload indicates an outbox event payload that cannot be decoded.
	ErrInvalidPayload = errors.Wrap(errors.ErrInvalidInput, "invalid event payload")

	// ErrDeliveryFailed indicates a send that failed and may succeed on a later attempt.
	ErrDeliveryFailed = errors.New("mail delivery failed")

	// ErrDeliveryRejected indicates the mail provider refused the request itself.
	// Retrying the same request cannot succeed.
	ErrDeliveryRejected = errors.Wrap(errors.ErrInvalidInput, "mail rejected by provider")
)
