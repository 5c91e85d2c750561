// Package bundbtest opens migrated SQLite databases for repository and service tests.
package bundbtest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/Black-And-White-Club/hackathon-judging/config"
	"github.com/Black-And-White-Club/hackathon-judging/db/bundb"
	"github.com/uptrace/bun"
)

// NewSQLiteDB returns a bun.DB on a fresh SQLite file with every module
// migration applied. The database is closed when the test ends.
func NewSQLiteDB(t testing.TB) *bun.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", filepath.Join(t.TempDir(), "judging.db"))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	db, err := bundb.Open(ctx, config.DatabaseConfig{Driver: bundb.DriverSQLite, DSN: dsn}, logger)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := bundb.Migrate(ctx, db, logger); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}
