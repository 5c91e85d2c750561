package bundb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	_ "modernc.org/sqlite" // registers "sqlite"

	"github.com/Black-And-White-Club/hackathon-judging/config"
)

// Supported database drivers.
const (
	DriverPG     = "pg"
	DriverPGX    = "pgx"
	DriverSQLite = "sqlite"
)

// Open returns a bun.DB for the configured driver after verifying the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*bun.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	sqldb, dialectDB, err := connect(cfg)
	if err != nil {
		return nil, err
	}

	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.InfoContext(ctx, "Database connection established", slog.String("driver", cfg.Driver))
	return dialectDB, nil
}

func connect(cfg config.DatabaseConfig) (*sql.DB, *bun.DB, error) {
	switch cfg.Driver {
	case DriverPG, "":
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
		return sqldb, bun.NewDB(sqldb, pgdialect.New()), nil
	case DriverPGX:
		sqldb, err := sql.Open("pgx", cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open pgx connection: %w", err)
		}
		return sqldb, bun.NewDB(sqldb, pgdialect.New()), nil
	case DriverSQLite:
		sqldb, err := sql.Open("sqlite", cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		// A single connection serialises writers; callers inside a transaction
		// must pass the tx handle down or they will block on the pool.
		sqldb.SetMaxOpenConns(1)
		return sqldb, bun.NewDB(sqldb, sqlitedialect.New()), nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
