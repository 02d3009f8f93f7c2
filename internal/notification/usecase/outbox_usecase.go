package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/allisson/accounts/internal/database"
	apperrors "github.com/allisson/accounts/internal/errors"
	"github.com/allisson/accounts/internal/notification/domain"
)

// Config controls the outbox worker loop.
type Config struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

type outboxUseCase struct {
	config         Config
	txManager      database.TxManager
	outboxRepo     OutboxEventRepository
	eventProcessor EventProcessor
	logger         *slog.Logger
	now            func() time.Time
}

// NewOutboxUseCase returns the worker that drains the outbox through eventProcessor.
func NewOutboxUseCase(
	config Config,
	txManager database.TxManager,
	outboxRepo OutboxEventRepository,
	eventProcessor EventProcessor,
	logger *slog.Logger,
) OutboxUseCase {
	return newOutboxUseCase(config, txManager, outboxRepo, eventProcessor, logger, time.Now)
}

func newOutboxUseCase(
	config Config,
	txManager database.TxManager,
	outboxRepo OutboxEventRepository,
	eventProcessor EventProcessor,
	logger *slog.Logger,
	now func() time.Time,
) *outboxUseCase {
	return &outboxUseCase{
		config:         config,
		txManager:      txManager,
		outboxRepo:     outboxRepo,
		eventProcessor: eventProcessor,
		logger:         logger,
		now:            now,
	}
}

// Start processes a batch every Interval until ctx is cancelled.
func (uc *outboxUseCase) Start(ctx context.Context) error {
	if uc.config.Interval <= 0 {
		return fmt.Errorf("outbox interval must be positive, got %s", uc.config.Interval)
	}

	uc.logger.Info("starting outbox event processor",
		slog.Duration("interval", uc.config.Interval),
		slog.Int("batch_size", uc.config.BatchSize),
		slog.Int("max_retries", uc.config.MaxRetries),
	)

	ticker := time.NewTicker(uc.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			uc.logger.Info("stopping outbox event processor")
			return ctx.Err()
		case <-ticker.C:
			if err := uc.ProcessEvents(ctx); err != nil {
				uc.logger.Error("failed to process events", slog.Any("error", err))
			}
		}
	}
}

// ProcessEvents locks a batch of pending events and delivers it in one transaction.
// Failed deliveries are retried on later batches until MaxRetries is reached. Errors
// wrapping ErrInvalidInput are permanent and fail the event at once.
func (uc *outboxUseCase) ProcessEvents(ctx context.Context) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		events, err := uc.outboxRepo.GetPendingEvents(ctx, uc.config.BatchSize)
		if err != nil {
			return err
		}
		if len(events) > 0 {
			uc.logger.Debug("processing events", slog.Int("count", len(events)))
		}

		for _, event := range events {
			uc.deliver(ctx, event)
			if err := uc.outboxRepo.Update(ctx, event); err != nil {
				return err
			}
		}
		return nil
	})
}

func (uc *outboxUseCase) deliver(ctx context.Context, event *domain.OutboxEvent) {
	err := uc.eventProcessor.Process(ctx, event)
	if err == nil {
		event.MarkProcessed(uc.now().UTC())
		return
	}

	permanent := apperrors.Is(err, apperrors.ErrInvalidInput)
	event.MarkAttemptFailed(err, uc.config.MaxRetries, permanent)

	uc.logger.Error("failed to deliver event",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.EventType),
		slog.Int("retries", event.Retries),
		slog.Bool("permanent", permanent),
		slog.String("status", string(event.Status)),
		slog.Any("error", err),
	)
}
