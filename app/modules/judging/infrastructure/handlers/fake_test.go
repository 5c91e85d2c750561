package judginghandlers

import (
	"context"

	judgingservice "github.com/Black-And-White-Club/hackathon-judging/app/modules/judging/application"
	"github.com/google/uuid"
)

type FakeService struct {
	ListAssignmentsForJudgeFunc func(ctx context.Context, hackathonID, judgeID uuid.UUID) ([]judgingservice.AssignmentDTO, error)
	EnsureAssignmentsFunc       func(ctx context.Context, hackathonID, judgeID uuid.UUID) (int, error)
	GetAssignmentFunc           func(ctx context.Context, assignmentID, callerID uuid.UUID) (*judgingservice.AssignmentDTO, error)
	SubmitScoresFunc            func(ctx context.Context, assignmentID uuid.UUID, entries []judgingservice.ScoreEntry, callerID uuid.UUID) (*judgingservice.AssignmentDTO, error)
}

var _ judgingservice.Service = (*FakeService)(nil)

func (f *FakeService) ListAssignmentsForJudge(ctx context.Context, hackathonID, judgeID uuid.UUID) ([]judgingservice.AssignmentDTO, error) {
	if f.ListAssignmentsForJudgeFunc != nil {
		return f.ListAssignmentsForJudgeFunc(ctx, hackathonID, judgeID)
	}
	return nil, nil
}

func (f *FakeService) EnsureAssignments(ctx context.Context, hackathonID, judgeID uuid.UUID) (int, error) {
	if f.EnsureAssignmentsFunc != nil {
		return f.EnsureAssignmentsFunc(ctx, hackathonID, judgeID)
	}
	return 0, nil
}

func (f *FakeService) GetAssignment(ctx context.Context, assignmentID, callerID uuid.UUID) (*judgingservice.AssignmentDTO, error) {
	if f.GetAssignmentFunc != nil {
		return f.GetAssignmentFunc(ctx, assignmentID, callerID)
	}
	return nil, nil
}

func (f *FakeService) SubmitScores(ctx context.Context, assignmentID uuid.UUID, entries []judgingservice.ScoreEntry, callerID uuid.UUID) (*judgingservice.AssignmentDTO, error) {
	if f.SubmitScoresFunc != nil {
		return f.SubmitScoresFunc(ctx, assignmentID, entries, callerID)
	}
	return nil, nil
}
