package leaderboard

import (
	"context"

	criteriadb "github.com/Black-And-White-Club/hackathon-judging/app/modules/criteria/infrastructure/repositories"
	hackathondb "github.com/Black-And-White-Club/hackathon-judging/app/modules/hackathon/infrastructure/repositories"
	judgingdb "github.com/Black-And-White-Club/hackathon-judging/app/modules/judging/infrastructure/repositories"
	leaderboardservice "github.com/Black-And-White-Club/hackathon-judging/app/modules/leaderboard/application"
	leaderboardhandlers "github.com/Black-And-White-Club/hackathon-judging/app/modules/leaderboard/infrastructure/handlers"
	"github.com/Black-And-White-Club/hackathon-judging/app/observability"
	"github.com/go-chi/chi/v5"
)

// Module represents the leaderboard module. It owns no tables; standings are
// computed from the judging and criteria stores on every read.
type Module struct {
	Service  leaderboardservice.Service
	handlers leaderboardhandlers.Handlers
}

// NewLeaderboardModule creates and initializes a new leaderboard module.
func NewLeaderboardModule(
	ctx context.Context,
	obs observability.Observability,
	judgingRepo judgingdb.Repository,
	criteriaRepo criteriadb.Repository,
	hackathonRepo hackathondb.Repository,
) (*Module, error) {
	obs.Logger.InfoContext(ctx, "leaderboard.NewLeaderboardModule initializing")

	service := leaderboardservice.NewLeaderboardService(judgingRepo, criteriaRepo, hackathonRepo, obs.Logger, obs.Metrics, obs.Tracer)
	return &Module{
		Service:  service,
		handlers: leaderboardhandlers.NewLeaderboardHandlers(service, obs.Logger, obs.Tracer),
	}, nil
}

// RegisterRoutes mounts the leaderboard routes on an authenticated /api/hackathons router.
func (m *Module) RegisterRoutes(r chi.Router) {
	r.Get("/{hackathonID}/leaderboard", m.handlers.HandleGetLeaderboard)
	r.Get("/{hackathonID}/leaderboard.xlsx", m.handlers.HandleExportXLSX)
	r.Get("/{hackathonID}/leaderboard.png", m.handlers.HandleChartPNG)
}
