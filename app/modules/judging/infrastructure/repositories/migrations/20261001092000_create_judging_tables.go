package judgingmigrations

import (
	"context"
	"fmt"

	judgingdb "github.com/Black-And-White-Club/hackathon-judging/app/modules/judging/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating judge_assignments and judge_scores tables...")

		if _, err := db.NewCreateTable().Model((*judgingdb.Assignment)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*judgingdb.Score)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		// The unique indexes are the conflict targets for assignment
		// materialization and score upserts.
		indexes := []string{
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_judge_assignments_judge_project ON judge_assignments (judge_id, project_id)",
			"CREATE INDEX IF NOT EXISTS idx_judge_assignments_hackathon_judge ON judge_assignments (hackathon_id, judge_id)",
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_judge_scores_assignment_criterion ON judge_scores (assignment_id, criterion_id)",
		}
		for _, stmt := range indexes {
			if _, err := db.NewRaw(stmt).Exec(ctx); err != nil {
				return err
			}
		}

		fmt.Println("Judging tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping judge_scores and judge_assignments tables...")

		if _, err := db.NewDropTable().Model((*judgingdb.Score)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*judgingdb.Assignment)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Judging tables dropped successfully!")
		return nil
	})
}
