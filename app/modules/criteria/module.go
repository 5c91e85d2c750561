package criteria

import (
	"context"

	criteriaservice "github.com/Black-And-White-Club/hackathon-judging/app/modules/criteria/application"
	criteriahandlers "github.com/Black-And-White-Club/hackathon-judging/app/modules/criteria/infrastructure/handlers"
	criteriadb "github.com/Black-And-White-Club/hackathon-judging/app/modules/criteria/infrastructure/repositories"
	hackathondb "github.com/Black-And-White-Club/hackathon-judging/app/modules/hackathon/infrastructure/repositories"
	"github.com/Black-And-White-Club/hackathon-judging/app/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the criteria module.
type Module struct {
	Repo     criteriadb.Repository
	Service  criteriaservice.Service
	handlers criteriahandlers.Handlers
}

// NewCriteriaModule creates and initializes a new criteria module.
func NewCriteriaModule(
	ctx context.Context,
	obs observability.Observability,
	hackathonRepo hackathondb.Repository,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "criteria.NewCriteriaModule initializing")

	repo := criteriadb.NewRepository(db)
	service := criteriaservice.NewCriteriaService(repo, hackathonRepo, logger, obs.Metrics, tracer, db)
	handlers := criteriahandlers.NewCriteriaHandlers(service, logger, tracer)

	return &Module{
		Repo:     repo,
		Service:  service,
		handlers: handlers,
	}, nil
}

// RegisterRoutes mounts the criteria routes on an authenticated /api/hackathons router.
func (m *Module) RegisterRoutes(r chi.Router) {
	r.Get("/{hackathonID}/criteria", m.handlers.HandleListCriteria)
	r.Post("/{hackathonID}/criteria", m.handlers.HandleCreateCriterion)
	r.Patch("/criteria/{criterionID}", m.handlers.HandleUpdateCriterion)
	r.Delete("/criteria/{criterionID}", m.handlers.HandleDeleteCriterion)
}
