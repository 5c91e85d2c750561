// Package app wires configuration, storage, the event bus and the judging
// modules into a single HTTP application.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Black-And-White-Club/hackathon-judging/app/eventbus"
	"github.com/Black-And-White-Club/hackathon-judging/app/modules/auth"
	"github.com/Black-And-White-Club/hackathon-judging/app/modules/criteria"
	hackathondb "github.com/Black-And-White-Club/hackathon-judging/app/modules/hackathon/infrastructure/repositories"
	"github.com/Black-And-White-Club/hackathon-judging/app/modules/judging"
	"github.com/Black-And-White-Club/hackathon-judging/app/modules/leaderboard"
	"github.com/Black-And-White-Club/hackathon-judging/app/modules/roster"
	"github.com/Black-And-White-Club/hackathon-judging/app/observability"
	"github.com/Black-And-White-Club/hackathon-judging/app/shared/httpx"
	"github.com/Black-And-White-Club/hackathon-judging/config"
	"github.com/Black-And-White-Club/hackathon-judging/db/bundb"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
)

const shutdownTimeout = 15 * time.Second

// Modules holds all application modules.
type Modules struct {
	Auth        *auth.Module
	Criteria    *criteria.Module
	Judging     *judging.Module
	Leaderboard *leaderboard.Module
	Roster      *roster.Module
}

// App is the composed application.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	DB            *bun.DB
	EventBus      *eventbus.EventBus
	HackathonRepo hackathondb.Repository
	Modules       Modules
	router        chi.Router
}

// NewApp opens and migrates the database, then builds every module from cfg.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs, err := observability.New(config.ToObsConfig(cfg), os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}
	logger := obs.Logger

	db, err := bundb.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := bundb.Migrate(ctx, db, logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	bus, err := eventbus.New(eventbus.Config{URL: cfg.NATS.URL, NKeySeed: cfg.NATS.NKeySeed}, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}

	app := &App{
		Config:        cfg,
		Observability: obs,
		DB:            db,
		EventBus:      bus,
		HackathonRepo: hackathondb.NewRepository(db),
	}
	if err := app.initializeModules(ctx); err != nil {
		_ = bus.Close()
		_ = db.Close()
		return nil, err
	}
	app.router = app.buildRouter()
	return app, nil
}

func (app *App) initializeModules(ctx context.Context) error {
	obs := app.Observability

	authModule, err := auth.NewAuthModule(ctx, app.Config, obs)
	if err != nil {
		return fmt.Errorf("failed to initialize auth module: %w", err)
	}
	criteriaModule, err := criteria.NewCriteriaModule(ctx, obs, app.HackathonRepo, app.DB)
	if err != nil {
		return fmt.Errorf("failed to initialize criteria module: %w", err)
	}
	judgingModule, err := judging.NewJudgingModule(ctx, app.Config, obs, app.HackathonRepo, criteriaModule.Repo, app.EventBus, app.DB)
	if err != nil {
		return fmt.Errorf("failed to initialize judging module: %w", err)
	}
	leaderboardModule, err := leaderboard.NewLeaderboardModule(ctx, obs, judgingModule.Repo, criteriaModule.Repo, app.HackathonRepo)
	if err != nil {
		return fmt.Errorf("failed to initialize leaderboard module: %w", err)
	}
	rosterModule, err := roster.NewRosterModule(ctx, obs, app.HackathonRepo, judgingModule.Repo, judgingModule.Scheduler, app.EventBus, app.DB)
	if err != nil {
		return fmt.Errorf("failed to initialize roster module: %w", err)
	}

	app.Modules = Modules{
		Auth:        authModule,
		Criteria:    criteriaModule,
		Judging:     judgingModule,
		Leaderboard: leaderboardModule,
		Roster:      rosterModule,
	}
	return nil
}

func (app *App) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(app.Modules.Auth.Middleware()...)

	r.Get("/healthz", app.handleHealth)

	r.Route("/api/hackathons", func(r chi.Router) {
		app.Modules.Auth.Protect(r)
		app.Modules.Criteria.RegisterRoutes(r)
		app.Modules.Judging.RegisterRoutes(r)
		app.Modules.Leaderboard.RegisterRoutes(r)
		app.Modules.Roster.RegisterRoutes(r)
	})
	return r
}

// Router returns the HTTP handler for the API.
func (app *App) Router() http.Handler {
	return app.router
}

func (app *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := app.DB.PingContext(ctx); err != nil {
		httpx.WriteErr(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	if err := app.Modules.Judging.HealthCheck(ctx); err != nil {
		httpx.WriteErr(w, http.StatusServiceUnavailable, "queue unavailable")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Logger

	if err := app.Modules.Judging.Start(ctx); err != nil {
		return fmt.Errorf("failed to start judging module: %w", err)
	}

	servers := []*http.Server{{
		Addr:              app.Config.HTTP.Addr,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}}
	if addr := app.Config.Observability.MetricsAddress; addr != "" && app.Observability.Registry != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(app.Observability.Registry, promhttp.HandlerOpts{}))
		servers = append(servers, &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second})
	}

	errCh := make(chan error, len(servers))
	for _, srv := range servers {
		go func(srv *http.Server) {
			logger.InfoContext(ctx, "HTTP server listening", slog.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("server on %s: %w", srv.Addr, err)
			}
		}(srv)
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case runErr = <-errCh:
		logger.Error("HTTP server failed", slog.String("error", runErr.Error()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown failed", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
		}
	}
	if err := app.Close(shutdownCtx); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

// Close stops background work and releases the event bus and database.
func (app *App) Close(ctx context.Context) error {
	var errs []error
	if app.Modules.Judging != nil {
		if err := app.Modules.Judging.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("judging: %w", err))
		}
	}
	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("event bus: %w", err))
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}
	app.Observability.Logger.InfoContext(ctx, "Application shut down")
	return errors.Join(errs...)
}
