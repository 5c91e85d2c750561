package judgingservice

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the assignment materializer and score ledger operations.
type Service interface {
	// ListAssignmentsForJudge materializes any missing assignments for the judge
	// and returns all of them ordered by project name.
	ListAssignmentsForJudge(ctx context.Context, hackathonID, judgeID uuid.UUID) ([]AssignmentDTO, error)
	// EnsureAssignments creates the judge's missing assignments and returns how many were created.
	EnsureAssignments(ctx context.Context, hackathonID, judgeID uuid.UUID) (int, error)
	GetAssignment(ctx context.Context, assignmentID, callerID uuid.UUID) (*AssignmentDTO, error)
	// SubmitScores validates and writes a batch of scores atomically.
	SubmitScores(ctx context.Context, assignmentID uuid.UUID, entries []ScoreEntry, callerID uuid.UUID) (*AssignmentDTO, error)
}
