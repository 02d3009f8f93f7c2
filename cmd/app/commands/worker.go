package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/allisson/accounts/internal/app"
	"github.com/allisson/accounts/internal/config"
	notificationUsecase "github.com/allisson/accounts/internal/notification/usecase"
)

// RunWorker runs the outbox worker alone, without the HTTP servers.
// Blocks until receiving SIGINT/SIGTERM.
func RunWorker(ctx context.Context, version string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	container := app.NewContainer(cfg)
	logger := container.Logger()
	logger.Info("starting outbox worker", slog.String("version", version))

	defer closeContainer(container, logger)

	outboxUseCase, err := container.OutboxUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize outbox worker: %w", err)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return runWorker(ctx, outboxUseCase, logger)
}

func runWorker(ctx context.Context, outboxUseCase notificationUsecase.OutboxUseCase, logger *slog.Logger) error {
	if err := outboxUseCase.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("outbox worker error: %w", err)
	}
	logger.Info("outbox worker stopped")
	return nil
}
