package bundb

import (
	"context"
	"fmt"
	"log/slog"

	criteriamigrations "github.com/Black-And-White-Club/hackathon-judging/app/modules/criteria/infrastructure/repositories/migrations"
	hackathonmigrations "github.com/Black-And-White-Club/hackathon-judging/app/modules/hackathon/infrastructure/repositories/migrations"
	judgingmigrations "github.com/Black-And-White-Club/hackathon-judging/app/modules/judging/infrastructure/repositories/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// ModuleMigrations names one module's migration set.
type ModuleMigrations struct {
	Name       string
	Migrations *migrate.Migrations
}

// Modules returns every module's migrations in the order they must run.
func Modules() []ModuleMigrations {
	return []ModuleMigrations{
		{"hackathon", hackathonmigrations.Migrations},
		{"criteria", criteriamigrations.Migrations},
		{"judging", judgingmigrations.Migrations},
	}
}

// Migrators builds one bun migrator per module, keyed by module name.
func Migrators(db *bun.DB) map[string]*migrate.Migrator {
	migrators := make(map[string]*migrate.Migrator)
	for _, mod := range Modules() {
		migrators[mod.Name] = migrate.NewMigrator(db, mod.Migrations)
	}
	return migrators
}

// Migrate initializes the migration tables and applies every pending module migration.
func Migrate(ctx context.Context, db *bun.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	modules := Modules()

	// The migration tables are shared, so any migrator can create them.
	if err := migrate.NewMigrator(db, modules[0].Migrations).Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize migration tables: %w", err)
	}

	for _, mod := range modules {
		group, err := migrate.NewMigrator(db, mod.Migrations).Migrate(ctx)
		if err != nil {
			return fmt.Errorf("failed to run %s migrations: %w", mod.Name, err)
		}
		if group.IsZero() {
			logger.DebugContext(ctx, "No new migrations", slog.String("module", mod.Name))
		} else {
			logger.InfoContext(ctx, "Applied migrations",
				slog.String("module", mod.Name),
				slog.String("group", group.String()),
			)
		}
	}
	return nil
}
