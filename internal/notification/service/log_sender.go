package service

import (
	"context"
	"log/slog"

	"github.com/allisson/accounts/internal/notification/domain"
)

// LogSender writes messages to the log instead of delivering them. Used for local development.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a new LogSender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the message envelope and body.
func (s *LogSender) Send(ctx context.Context, message *domain.Message) error {
	s.logger.InfoContext(ctx, "email sent to log",
		slog.String("to", message.ToEmail),
		slog.String("subject", message.Subject),
		slog.String("category", message.Category),
		slog.String("html", message.HTML),
	)
	return nil
}
