// Package database provides database connection management and utilities.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// Supported values of Config.Driver.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// defaultPingTimeout bounds the connectivity check in Connect when Config.PingTimeout is zero.
const defaultPingTimeout = 5 * time.Second

// Config holds database configuration settings.
type Config struct {
	Driver             string
	ConnectionString   string
	MaxOpenConnections int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
	PingTimeout        time.Duration
}

// Connect opens a connection pool for a supported driver and checks it is reachable.
// MySQL DSNs are normalized so DATETIME columns scan into time.Time in UTC.
func Connect(cfg Config) (*sql.DB, error) {
	dsn := cfg.ConnectionString
	switch cfg.Driver {
	case DriverPostgres:
	case DriverMySQL:
		normalized, err := normalizeMySQLDSN(dsn)
		if err != nil {
			return nil, err
		}
		dsn = normalized
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingTimeout := cfg.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = defaultPingTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func normalizeMySQLDSN(dsn string) (string, error) {
	mysqlConfig, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid mysql connection string: %w", err)
	}
	mysqlConfig.ParseTime = true
	mysqlConfig.Loc = time.UTC
	return mysqlConfig.FormatDSN(), nil
}
