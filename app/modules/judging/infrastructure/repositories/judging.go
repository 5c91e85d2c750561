package judgingdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// ErrNotFound is returned when an assignment is not found.
var ErrNotFound = errors.New("assignment not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new judging repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) InsertMissingAssignments(ctx context.Context, db bun.IDB, assignments []Assignment) (int, error) {
	if len(assignments) == 0 {
		return 0, nil
	}
	db = r.resolveDB(db)
	now := time.Now().UTC()
	for i := range assignments {
		if assignments[i].ID == uuid.Nil {
			assignments[i].ID = uuid.New()
		}
		assignments[i].CreatedAt = now
		assignments[i].UpdatedAt = now
	}

	result, err := db.NewInsert().
		Model(&assignments).
		On("CONFLICT (judge_id, project_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("judgingdb.InsertMissingAssignments: %w", err)
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(inserted), nil
}

func (r *Impl) GetAssignment(ctx context.Context, db bun.IDB, assignmentID uuid.UUID) (*Assignment, error) {
	db = r.resolveDB(db)
	a := new(Assignment)
	err := db.NewSelect().
		Model(a).
		Where("ja.id = ?", assignmentID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("judgingdb.GetAssignment: %w", err)
	}
	return a, nil
}

func (r *Impl) GetAssignmentForUpdate(ctx context.Context, db bun.IDB, assignmentID uuid.UUID) (*Assignment, error) {
	db = r.resolveDB(db)
	a := new(Assignment)
	q := db.NewSelect().
		Model(a).
		Where("ja.id = ?", assignmentID)
	// SQLite has no row locks; its single writer already serializes the transaction.
	if db.Dialect().Name() == dialect.PG {
		q = q.For("UPDATE")
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("judgingdb.GetAssignmentForUpdate: %w", err)
	}
	return a, nil
}

func (r *Impl) ListAssignmentsForJudge(ctx context.Context, db bun.IDB, hackathonID, judgeID uuid.UUID) ([]Assignment, error) {
	db = r.resolveDB(db)
	var assignments []Assignment
	err := db.NewSelect().
		Model(&assignments).
		Where("ja.hackathon_id = ?", hackathonID).
		Where("ja.judge_id = ?", judgeID).
		Order("ja.created_at ASC", "ja.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("judgingdb.ListAssignmentsForJudge: %w", err)
	}
	return assignments, nil
}

func (r *Impl) SetCompletedAt(ctx context.Context, db bun.IDB, assignmentID uuid.UUID, completedAt *time.Time) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Assignment)(nil)).
		Set("completed_at = ?", completedAt).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", assignmentID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("judgingdb.SetCompletedAt: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Impl) UpsertScores(ctx context.Context, db bun.IDB, scores []Score) error {
	if len(scores) == 0 {
		return nil
	}
	db = r.resolveDB(db)
	now := time.Now().UTC()
	for i := range scores {
		if scores[i].ID == uuid.Nil {
			scores[i].ID = uuid.New()
		}
		scores[i].CreatedAt = now
		scores[i].UpdatedAt = now
	}

	_, err := db.NewInsert().
		Model(&scores).
		On("CONFLICT (assignment_id, criterion_id) DO UPDATE").
		Set("score = EXCLUDED.score").
		Set("feedback = EXCLUDED.feedback").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("judgingdb.UpsertScores: %w", err)
	}
	return nil
}

func (r *Impl) ListScores(ctx context.Context, db bun.IDB, assignmentID uuid.UUID) ([]Score, error) {
	return r.ListScoresForAssignments(ctx, db, []uuid.UUID{assignmentID})
}

func (r *Impl) ListScoresForAssignments(ctx context.Context, db bun.IDB, assignmentIDs []uuid.UUID) ([]Score, error) {
	if len(assignmentIDs) == 0 {
		return nil, nil
	}
	db = r.resolveDB(db)
	var scores []Score
	err := db.NewSelect().
		Model(&scores).
		Where("js.assignment_id IN (?)", bun.In(assignmentIDs)).
		Order("js.assignment_id ASC", "js.created_at ASC", "js.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("judgingdb.ListScoresForAssignments: %w", err)
	}
	return scores, nil
}

func (r *Impl) ListProjectScores(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) ([]ProjectScore, error) {
	db = r.resolveDB(db)
	var rows []ProjectScore
	err := db.NewSelect().
		TableExpr("judge_scores AS js").
		Join("JOIN judge_assignments AS ja ON ja.id = js.assignment_id").
		ColumnExpr("ja.project_id AS project_id").
		ColumnExpr("ja.judge_id AS judge_id").
		ColumnExpr("js.criterion_id AS criterion_id").
		ColumnExpr("js.score AS score").
		Where("ja.hackathon_id = ?", hackathonID).
		Order("ja.project_id ASC", "ja.created_at ASC", "js.criterion_id ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("judgingdb.ListProjectScores: %w", err)
	}
	return rows, nil
}

func (r *Impl) CountCompletedByJudge(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) (map[uuid.UUID]int, error) {
	db = r.resolveDB(db)
	var rows []JudgeProgress
	err := db.NewSelect().
		TableExpr("judge_assignments AS ja").
		ColumnExpr("ja.judge_id AS judge_id").
		ColumnExpr("COUNT(*) AS completed").
		Where("ja.hackathon_id = ?", hackathonID).
		Where("ja.completed_at IS NOT NULL").
		Group("ja.judge_id").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("judgingdb.CountCompletedByJudge: %w", err)
	}

	counts := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		counts[row.JudgeID] = row.Completed
	}
	return counts, nil
}
