package judgingdb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FakeRepository is a fake implementation of Repository for testing.
type FakeRepository struct {
	InsertMissingAssignmentsFn func(ctx context.Context, db bun.IDB, assignments []Assignment) (int, error)
	GetAssignmentFn            func(ctx context.Context, db bun.IDB, assignmentID uuid.UUID) (*Assignment, error)
	GetAssignmentForUpdateFn   func(ctx context.Context, db bun.IDB, assignmentID uuid.UUID) (*Assignment, error)
	ListAssignmentsForJudgeFn  func(ctx context.Context, db bun.IDB, hackathonID, judgeID uuid.UUID) ([]Assignment, error)
	SetCompletedAtFn           func(ctx context.Context, db bun.IDB, assignmentID uuid.UUID, completedAt *time.Time) error
	UpsertScoresFn             func(ctx context.Context, db bun.IDB, scores []Score) error
	ListScoresFn               func(ctx context.Context, db bun.IDB, assignmentID uuid.UUID) ([]Score, error)
	ListScoresForAssignmentsFn func(ctx context.Context, db bun.IDB, assignmentIDs []uuid.UUID) ([]Score, error)
	ListProjectScoresFn        func(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) ([]ProjectScore, error)
	CountCompletedByJudgeFn    func(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) (map[uuid.UUID]int, error)
}

var _ Repository = (*FakeRepository)(nil)

func (f *FakeRepository) InsertMissingAssignments(ctx context.Context, db bun.IDB, assignments []Assignment) (int, error) {
	if f.InsertMissingAssignmentsFn != nil {
		return f.InsertMissingAssignmentsFn(ctx, db, assignments)
	}
	return len(assignments), nil
}

func (f *FakeRepository) GetAssignment(ctx context.Context, db bun.IDB, assignmentID uuid.UUID) (*Assignment, error) {
	if f.GetAssignmentFn != nil {
		return f.GetAssignmentFn(ctx, db, assignmentID)
	}
	return nil, ErrNotFound
}

// GetAssignmentForUpdate falls back to GetAssignmentFn when unset.
func (f *FakeRepository) GetAssignmentForUpdate(ctx context.Context, db bun.IDB, assignmentID uuid.UUID) (*Assignment, error) {
	if f.GetAssignmentForUpdateFn != nil {
		return f.GetAssignmentForUpdateFn(ctx, db, assignmentID)
	}
	return f.GetAssignment(ctx, db, assignmentID)
}

func (f *FakeRepository) ListAssignmentsForJudge(ctx context.Context, db bun.IDB, hackathonID, judgeID uuid.UUID) ([]Assignment, error) {
	if f.ListAssignmentsForJudgeFn != nil {
		return f.ListAssignmentsForJudgeFn(ctx, db, hackathonID, judgeID)
	}
	return nil, nil
}

func (f *FakeRepository) SetCompletedAt(ctx context.Context, db bun.IDB, assignmentID uuid.UUID, completedAt *time.Time) error {
	if f.SetCompletedAtFn != nil {
		return f.SetCompletedAtFn(ctx, db, assignmentID, completedAt)
	}
	return nil
}

func (f *FakeRepository) UpsertScores(ctx context.Context, db bun.IDB, scores []Score) error {
	if f.UpsertScoresFn != nil {
		return f.UpsertScoresFn(ctx, db, scores)
	}
	return nil
}

func (f *FakeRepository) ListScores(ctx context.Context, db bun.IDB, assignmentID uuid.UUID) ([]Score, error) {
	if f.ListScoresFn != nil {
		return f.ListScoresFn(ctx, db, assignmentID)
	}
	return nil, nil
}

func (f *FakeRepository) ListScoresForAssignments(ctx context.Context, db bun.IDB, assignmentIDs []uuid.UUID) ([]Score, error) {
	if f.ListScoresForAssignmentsFn != nil {
		return f.ListScoresForAssignmentsFn(ctx, db, assignmentIDs)
	}
	return nil, nil
}

func (f *FakeRepository) ListProjectScores(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) ([]ProjectScore, error) {
	if f.ListProjectScoresFn != nil {
		return f.ListProjectScoresFn(ctx, db, hackathonID)
	}
	return nil, nil
}

func (f *FakeRepository) CountCompletedByJudge(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) (map[uuid.UUID]int, error) {
	if f.CountCompletedByJudgeFn != nil {
		return f.CountCompletedByJudgeFn(ctx, db, hackathonID)
	}
	return map[uuid.UUID]int{}, nil
}
