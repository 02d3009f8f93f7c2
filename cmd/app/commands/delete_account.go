package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	accountUsecase "github.com/allisson/accounts/internal/account/usecase"
)

// RunDeleteAccount removes an account by ID. Supports text and JSON output.
//
// Requirements: Database must be migrated and accessible.
func RunDeleteAccount(
	ctx context.Context,
	accountUseCase accountUsecase.AccountUseCase,
	logger *slog.Logger,
	out io.Writer,
	id string,
	format string,
) error {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid account ID %q: %w", id, err)
	}

	logger.Info("deleting account", slog.String("account_id", accountID.String()))

	if err := accountUseCase.Delete(ctx, accountID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	if format == "json" {
		return writeJSON(out, map[string]any{
			"id":      accountID.String(),
			"deleted": true,
		})
	}

	_, err = fmt.Fprintf(out, "Successfully deleted account %s\n", accountID)
	return err
}
