package judging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/hackathon-judging/app/eventbus"
	criteriadb "github.com/Black-And-White-Club/hackathon-judging/app/modules/criteria/infrastructure/repositories"
	hackathondb "github.com/Black-And-White-Club/hackathon-judging/app/modules/hackathon/infrastructure/repositories"
	judgingservice "github.com/Black-And-White-Club/hackathon-judging/app/modules/judging/application"
	judginghandlers "github.com/Black-And-White-Club/hackathon-judging/app/modules/judging/infrastructure/handlers"
	judgingqueue "github.com/Black-And-White-Club/hackathon-judging/app/modules/judging/infrastructure/queue"
	judgingdb "github.com/Black-And-White-Club/hackathon-judging/app/modules/judging/infrastructure/repositories"
	"github.com/Black-And-White-Club/hackathon-judging/app/observability"
	"github.com/Black-And-White-Club/hackathon-judging/config"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the judging module: the assignment materializer, the score
// ledger and the background materialization queue.
type Module struct {
	Repo      judgingdb.Repository
	Service   judgingservice.Service
	Scheduler judgingqueue.Scheduler
	queue     *judgingqueue.Service
	handlers  judginghandlers.Handlers
	logger    *slog.Logger
}

// NewJudgingModule creates and initializes a new judging module. When the queue
// is disabled, materialization for new judges runs inline.
func NewJudgingModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	hackathonRepo hackathondb.Repository,
	criteriaRepo criteriadb.Repository,
	publisher eventbus.Publisher,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "judging.NewJudgingModule initializing")

	repo := judgingdb.NewRepository(db)
	service := judgingservice.NewJudgingService(repo, criteriaRepo, hackathonRepo, publisher, logger, obs.Metrics, obs.Tracer, db)

	m := &Module{
		Repo:     repo,
		Service:  service,
		handlers: judginghandlers.NewJudgingHandlers(service, logger, obs.Tracer),
		logger:   logger,
	}

	if cfg.Queue.Enabled {
		q, err := judgingqueue.NewService(ctx, cfg.Database.DSN, cfg.Queue.MaxWorkers, service, logger, obs.Metrics)
		if err != nil {
			return nil, fmt.Errorf("failed to create judging queue: %w", err)
		}
		m.queue = q
		m.Scheduler = q
	} else {
		m.Scheduler = judgingqueue.NewInlineScheduler(service, logger)
	}
	return m, nil
}

// RegisterRoutes mounts the judging routes on an authenticated /api/hackathons router.
func (m *Module) RegisterRoutes(r chi.Router) {
	r.Get("/{hackathonID}/assignments", m.handlers.HandleListMyAssignments)
	r.Get("/assignments/{assignmentID}", m.handlers.HandleGetAssignment)
	r.Put("/assignments/{assignmentID}/scores", m.handlers.HandleSubmitScores)
}

// Start starts background workers, if any.
func (m *Module) Start(ctx context.Context) error {
	if m.queue == nil {
		return nil
	}
	return m.queue.Start(ctx)
}

// HealthCheck reports queue reachability. Inline scheduling is always healthy.
func (m *Module) HealthCheck(ctx context.Context) error {
	if m.queue == nil {
		return nil
	}
	return m.queue.HealthCheck(ctx)
}

func (m *Module) Close(ctx context.Context) error {
	m.logger.InfoContext(ctx, "Stopping judging module")
	if m.queue == nil {
		return nil
	}
	return m.queue.Stop(ctx)
}
