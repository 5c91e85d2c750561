package leaderboardhandlers

import (
	"context"

	leaderboardservice "github.com/Black-And-White-Club/hackathon-judging/app/modules/leaderboard/application"
	"github.com/google/uuid"
)

type FakeService struct {
	GetLeaderboardFunc         func(ctx context.Context, hackathonID, callerID uuid.UUID) (*leaderboardservice.LeaderboardDTO, error)
	ExportLeaderboardXLSXFunc  func(ctx context.Context, hackathonID, callerID uuid.UUID) ([]byte, error)
	RenderLeaderboardChartFunc func(ctx context.Context, hackathonID, callerID uuid.UUID) ([]byte, error)
}

var _ leaderboardservice.Service = (*FakeService)(nil)

func (f *FakeService) GetLeaderboard(ctx context.Context, hackathonID, callerID uuid.UUID) (*leaderboardservice.LeaderboardDTO, error) {
	if f.GetLeaderboardFunc != nil {
		return f.GetLeaderboardFunc(ctx, hackathonID, callerID)
	}
	return nil, nil
}

func (f *FakeService) ExportLeaderboardXLSX(ctx context.Context, hackathonID, callerID uuid.UUID) ([]byte, error) {
	if f.ExportLeaderboardXLSXFunc != nil {
		return f.ExportLeaderboardXLSXFunc(ctx, hackathonID, callerID)
	}
	return nil, nil
}

func (f *FakeService) RenderLeaderboardChart(ctx context.Context, hackathonID, callerID uuid.UUID) ([]byte, error) {
	if f.RenderLeaderboardChartFunc != nil {
		return f.RenderLeaderboardChartFunc(ctx, hackathonID, callerID)
	}
	return nil, nil
}
