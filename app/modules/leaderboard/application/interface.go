package leaderboardservice

import (
	"context"

	"github.com/google/uuid"
)

// Service computes leaderboards. Every call recomputes from the current scores.
type Service interface {
	GetLeaderboard(ctx context.Context, hackathonID, callerID uuid.UUID) (*LeaderboardDTO, error)
	// ExportLeaderboardXLSX renders the leaderboard as an Excel workbook.
	ExportLeaderboardXLSX(ctx context.Context, hackathonID, callerID uuid.UUID) ([]byte, error)
	// RenderLeaderboardChart renders weighted totals as a PNG bar chart.
	RenderLeaderboardChart(ctx context.Context, hackathonID, callerID uuid.UUID) ([]byte, error)
}
