package rosterhandlers

import (
	"context"

	rosterservice "github.com/Black-And-White-Club/hackathon-judging/app/modules/roster/application"
	"github.com/google/uuid"
)

type FakeService struct {
	ListJudgesFunc  func(ctx context.Context, hackathonID, callerID uuid.UUID) ([]rosterservice.JudgeDTO, error)
	AddJudgeFunc    func(ctx context.Context, hackathonID, targetUserID, callerID uuid.UUID) (*rosterservice.JudgeDTO, error)
	RemoveJudgeFunc func(ctx context.Context, hackathonID, targetUserID, callerID uuid.UUID) error
}

var _ rosterservice.Service = (*FakeService)(nil)

func (f *FakeService) ListJudges(ctx context.Context, hackathonID, callerID uuid.UUID) ([]rosterservice.JudgeDTO, error) {
	if f.ListJudgesFunc != nil {
		return f.ListJudgesFunc(ctx, hackathonID, callerID)
	}
	return nil, nil
}

func (f *FakeService) AddJudge(ctx context.Context, hackathonID, targetUserID, callerID uuid.UUID) (*rosterservice.JudgeDTO, error) {
	if f.AddJudgeFunc != nil {
		return f.AddJudgeFunc(ctx, hackathonID, targetUserID, callerID)
	}
	return nil, nil
}

func (f *FakeService) RemoveJudge(ctx context.Context, hackathonID, targetUserID, callerID uuid.UUID) error {
	if f.RemoveJudgeFunc != nil {
		return f.RemoveJudgeFunc(ctx, hackathonID, targetUserID, callerID)
	}
	return nil
}
