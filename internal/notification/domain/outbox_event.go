// Package domain defines the notification outbox entities and the account email payloads.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// OutboxEventStatus represents the status of an outbox event
type OutboxEventStatus string

const (
	OutboxEventStatusPending   OutboxEventStatus = "pending"
	OutboxEventStatusProcessed OutboxEventStatus = "processed"
	OutboxEventStatusFailed    OutboxEventStatus = "failed"
)

// Event types for the account emails.
const (
	EventTypeVerificationEmail         = "account.verification_email"
	EventTypeWelcomeEmail              = "account.welcome_email"
	EventTypePasswordRecoveryEmail     = "account.password_recovery_email"
	EventTypePasswordResetSuccessEmail = "account.password_reset_success_email"
)

// OutboxEvent is a pending email delivery stored in the transactional outbox.
type OutboxEvent struct {
	ID          uuid.UUID
	EventType   string
	Payload     string // sealed EmailPayload, emptied once the event leaves pending
	Status      OutboxEventStatus
	Retries     int
	LastError   *string
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MarkProcessed records a successful delivery at processedAt and drops the payload.
func (e *OutboxEvent) MarkProcessed(processedAt time.Time) {
	e.Status = OutboxEventStatusProcessed
	e.ProcessedAt = &processedAt
	e.LastError = nil
	e.Payload = ""
}

// MarkAttemptFailed records a failed delivery. The event stays pending for a later
// batch unless the failure is permanent or maxRetries attempts have been made.
// A failed event keeps no payload.
func (e *OutboxEvent) MarkAttemptFailed(cause error, maxRetries int, permanent bool) {
	e.Retries++
	message := cause.Error()
	e.LastError = &message

	if permanent || e.Retries >= maxRetries {
		e.Status = OutboxEventStatusFailed
		e.Payload = ""
	}
}

// EmailPayload carries what an account email template needs.
// Code and ResetURL are only set for the event types that use them.
type EmailPayload struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Code     string `json:"code,omitempty"`
	ResetURL string `json:"reset_url,omitempty"`
}

// Message is a rendered email ready to be sent.
type Message struct {
	ToEmail  string
	ToName   string
	Subject  string
	HTML     string
	Category string
}
