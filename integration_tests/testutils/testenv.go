package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/Black-And-White-Club/hackathon-judging/app"
	"github.com/Black-And-White-Club/hackathon-judging/config"
	"github.com/Black-And-White-Club/hackathon-judging/integration_tests/containers"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// TestEnvironment is a running application backed by a Postgres container with
// the background queue enabled.
type TestEnvironment struct {
	Ctx         context.Context
	PgContainer *postgres.PostgresContainer
	DSN         string
	App         *app.App
}

// NewTestEnvironment starts Postgres, builds the application against it and
// starts its background workers. Everything is torn down when t finishes.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	pgContainer, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		t.Fatalf("setup postgres: %v", err)
	}
	t.Cleanup(func() {
		termCtx, termCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer termCancel()
		_ = pgContainer.Terminate(termCtx)
	})

	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: "pg", DSN: dsn},
		HTTP:     config.HTTPConfig{Addr: "127.0.0.1:0", RateLimitRPS: 1000, RateLimitBurst: 1000},
		JWT:      config.JWTConfig{Secret: "integration-secret-at-least-32-chars"},
		Queue:    config.QueueConfig{Enabled: true, MaxWorkers: 2},
		Observability: config.ObservabilityConfig{
			Environment: "development",
			LogLevel:    "warn",
		},
	}

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	if err := application.Modules.Judging.Start(ctx); err != nil {
		t.Fatalf("start judging workers: %v", err)
	}
	t.Cleanup(func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer closeCancel()
		_ = application.Close(closeCtx)
	})

	return &TestEnvironment{
		Ctx:         ctx,
		PgContainer: pgContainer,
		DSN:         dsn,
		App:         application,
	}
}

// Eventually polls cond until it returns true or the timeout elapses.
func Eventually(t *testing.T, timeout time.Duration, cond func() (bool, error)) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		ok, err := cond()
		if err != nil {
			t.Fatalf("condition failed: %v", err)
		}
		if ok {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("condition not met within %s", timeout)
		}
		time.Sleep(100 * time.Millisecond)
	}
}
