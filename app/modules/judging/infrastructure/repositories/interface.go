package judgingdb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for assignment and score persistence.
//
// Assignment creation and score writes are insert-on-conflict statements backed
// by unique indexes, so concurrent callers never produce duplicates.
type Repository interface {
	// InsertMissingAssignments inserts the given assignments, skipping any
	// (judge, project) pair that already exists. Returns the number inserted.
	InsertMissingAssignments(ctx context.Context, db bun.IDB, assignments []Assignment) (int, error)

	// GetAssignment retrieves an assignment. Returns ErrNotFound if absent.
	GetAssignment(ctx context.Context, db bun.IDB, assignmentID uuid.UUID) (*Assignment, error)

	// GetAssignmentForUpdate is GetAssignment holding a row lock until the
	// surrounding transaction ends. Score writers take it first so that
	// concurrent batches for one assignment see each other's rows.
	GetAssignmentForUpdate(ctx context.Context, db bun.IDB, assignmentID uuid.UUID) (*Assignment, error)

	ListAssignmentsForJudge(ctx context.Context, db bun.IDB, hackathonID, judgeID uuid.UUID) ([]Assignment, error)

	// SetCompletedAt sets or clears (nil) the completion timestamp.
	SetCompletedAt(ctx context.Context, db bun.IDB, assignmentID uuid.UUID, completedAt *time.Time) error

	// UpsertScores writes each score, overwriting value and feedback on conflict.
	UpsertScores(ctx context.Context, db bun.IDB, scores []Score) error

	ListScores(ctx context.Context, db bun.IDB, assignmentID uuid.UUID) ([]Score, error)
	ListScoresForAssignments(ctx context.Context, db bun.IDB, assignmentIDs []uuid.UUID) ([]Score, error)

	// ListProjectScores returns every score in the hackathon joined to its project.
	ListProjectScores(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) ([]ProjectScore, error)

	// CountCompletedByJudge returns completed assignment counts keyed by judge.
	// Judges with no completed assignments are absent from the map.
	CountCompletedByJudge(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) (map[uuid.UUID]int, error)
}
