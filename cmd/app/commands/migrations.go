package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies all pending migrations for the configured driver.
// Returns nil when the schema is already up to date.
func RunMigrations(logger *slog.Logger, dbDriver, dbConnectionString string) error {
	logger.Info("running database migrations",
		slog.String("driver", dbDriver),
	)

	m, err := migrate.New(migrationsPath(dbDriver), migrationsDatabaseURL(dbDriver, dbConnectionString))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}

func migrationsPath(dbDriver string) string {
	if dbDriver == "mysql" {
		return "file://migrations/mysql"
	}
	return "file://migrations/postgresql"
}

// migrationsDatabaseURL turns a go-sql-driver/mysql DSN into the URL form golang-migrate expects.
func migrationsDatabaseURL(dbDriver, dbConnectionString string) string {
	if dbDriver == "mysql" && !strings.HasPrefix(dbConnectionString, "mysql://") {
		return "mysql://" + dbConnectionString
	}
	return dbConnectionString
}
