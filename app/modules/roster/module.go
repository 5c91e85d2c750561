package roster

import (
	"context"

	"github.com/Black-And-White-Club/hackathon-judging/app/eventbus"
	hackathondb "github.com/Black-And-White-Club/hackathon-judging/app/modules/hackathon/infrastructure/repositories"
	judgingqueue "github.com/Black-And-White-Club/hackathon-judging/app/modules/judging/infrastructure/queue"
	judgingdb "github.com/Black-And-White-Club/hackathon-judging/app/modules/judging/infrastructure/repositories"
	rosterservice "github.com/Black-And-White-Club/hackathon-judging/app/modules/roster/application"
	rosterhandlers "github.com/Black-And-White-Club/hackathon-judging/app/modules/roster/infrastructure/handlers"
	"github.com/Black-And-White-Club/hackathon-judging/app/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the judge roster module.
type Module struct {
	Service  rosterservice.Service
	handlers rosterhandlers.Handlers
}

// NewRosterModule creates and initializes a new roster module.
func NewRosterModule(
	ctx context.Context,
	obs observability.Observability,
	hackathonRepo hackathondb.Repository,
	judgingRepo judgingdb.Repository,
	scheduler judgingqueue.Scheduler,
	publisher eventbus.Publisher,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "roster.NewRosterModule initializing")

	service := rosterservice.NewRosterService(hackathonRepo, judgingRepo, scheduler, publisher, logger, obs.Metrics, obs.Tracer, db)
	return &Module{
		Service:  service,
		handlers: rosterhandlers.NewRosterHandlers(service, logger, obs.Tracer),
	}, nil
}

// RegisterRoutes mounts the roster routes on an authenticated /api/hackathons router.
func (m *Module) RegisterRoutes(r chi.Router) {
	r.Get("/{hackathonID}/judges", m.handlers.HandleListJudges)
	r.Post("/{hackathonID}/judges", m.handlers.HandleAddJudge)
	r.Delete("/{hackathonID}/judges/{userID}", m.handlers.HandleRemoveJudge)
}
