package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	apperrors "github.com/allisson/accounts/internal/errors"
	"github.com/allisson/accounts/internal/notification/domain"
)

// MailtrapConfig configures the Mailtrap send API client.
type MailtrapConfig struct {
	APIURL      string
	Token       string
	SenderEmail string
	SenderName  string
	RatePerSec  float64
	Burst       int
	Timeout     time.Duration
}

type mailtrapAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type mailtrapRequest struct {
	From     mailtrapAddress   `json:"from"`
	To       []mailtrapAddress `json:"to"`
	Subject  string            `json:"subject"`
	HTML     string            `json:"html"`
	Category string            `json:"category,omitempty"`
}

type mailtrapResponse struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
}

// MailtrapSender delivers messages through the Mailtrap send API.
// Sends are throttled with a token bucket to stay inside the provider quota.
type MailtrapSender struct {
	config  MailtrapConfig
	client  *http.Client
	limiter *rate.Limiter
}

// NewMailtrapSender creates a new MailtrapSender.
func NewMailtrapSender(config MailtrapConfig) *MailtrapSender {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &MailtrapSender{
		config:  config,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(config.RatePerSec), config.Burst),
	}
}

// Send posts the message to the send API. A 4xx answer other than 408 or 429 is
// domain.ErrDeliveryRejected; any other non-2xx answer is domain.ErrDeliveryFailed.
func (s *MailtrapSender) Send(ctx context.Context, message *domain.Message) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return apperrors.Wrap(err, "mail rate limiter")
	}

	body, err := json.Marshal(mailtrapRequest{
		From:     mailtrapAddress{Email: s.config.SenderEmail, Name: s.config.SenderName},
		To:       []mailtrapAddress{{Email: message.ToEmail, Name: message.ToName}},
		Subject:  message.Subject,
		HTML:     message.HTML,
		Category: message.Category,
	})
	if err != nil {
		return apperrors.Wrap(err, "failed to encode mailtrap request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.APIURL, bytes.NewReader(body))
	if err != nil {
		return apperrors.Wrap(err, "failed to build mailtrap request")
	}
	req.Header.Set("Authorization", "Bearer "+s.config.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return apperrors.Wrap(err, "failed to call mailtrap")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		cause := deliveryError(resp.StatusCode)
		var decoded mailtrapResponse
		if json.Unmarshal(respBody, &decoded) == nil && len(decoded.Errors) > 0 {
			return apperrors.Wrapf(cause, "mailtrap status %d: %v", resp.StatusCode, decoded.Errors)
		}
		return apperrors.Wrapf(cause, "mailtrap status %d", resp.StatusCode)
	}

	return nil
}

func deliveryError(status int) error {
	switch {
	case status == http.StatusRequestTimeout, status == http.StatusTooManyRequests:
		return domain.ErrDeliveryFailed
	case status >= 400 && status < 500:
		return domain.ErrDeliveryRejected
	default:
		return domain.ErrDeliveryFailed
	}
}
