package hackathonmigrations

import (
	"context"
	"fmt"

	hackathondb "github.com/Black-And-White-Club/hackathon-judging/app/modules/hackathon/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating hackathon, user, team, project and role tables...")

		models := []any{
			(*hackathondb.Hackathon)(nil),
			(*hackathondb.User)(nil),
			(*hackathondb.Team)(nil),
			(*hackathondb.Project)(nil),
			(*hackathondb.RoleAssignment)(nil),
			(*hackathondb.RoleChange)(nil),
		}
		for _, model := range models {
			if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return err
			}
		}

		indexes := []string{
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_hackathon_roles_hackathon_user ON hackathon_roles (hackathon_id, user_id)",
			"CREATE INDEX IF NOT EXISTS idx_projects_hackathon_status ON projects (hackathon_id, status)",
			"CREATE INDEX IF NOT EXISTS idx_teams_hackathon_id ON teams (hackathon_id)",
			"CREATE INDEX IF NOT EXISTS idx_hackathon_role_changes_hackathon_id ON hackathon_role_changes (hackathon_id)",
		}
		for _, stmt := range indexes {
			if _, err := db.NewRaw(stmt).Exec(ctx); err != nil {
				return err
			}
		}

		fmt.Println("Hackathon tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping hackathon tables...")

		models := []any{
			(*hackathondb.RoleChange)(nil),
			(*hackathondb.RoleAssignment)(nil),
			(*hackathondb.Project)(nil),
			(*hackathondb.Team)(nil),
			(*hackathondb.User)(nil),
			(*hackathondb.Hackathon)(nil),
		}
		for _, model := range models {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return err
			}
		}

		fmt.Println("Hackathon tables dropped successfully!")
		return nil
	})
}
