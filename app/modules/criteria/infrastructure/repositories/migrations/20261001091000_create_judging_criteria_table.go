package criteriamigrations

import (
	"context"
	"fmt"

	criteriadb "github.com/Black-And-White-Club/hackathon-judging/app/modules/criteria/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating judging_criteria table...")

		if _, err := db.NewCreateTable().Model((*criteriadb.Criterion)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		_, err := db.NewRaw("CREATE INDEX IF NOT EXISTS idx_judging_criteria_hackathon_order ON judging_criteria (hackathon_id, display_order)").Exec(ctx)
		if err != nil {
			return err
		}

		fmt.Println("judging_criteria table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping judging_criteria table...")

		if _, err := db.NewDropTable().Model((*criteriadb.Criterion)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("judging_criteria table dropped successfully!")
		return nil
	})
}
