package judgingqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/hackathon-judging/app/observability/metrics"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/riverqueue/river/rivertype"
)

// Scheduler hands assignment materialization off to run after the caller returns.
type Scheduler interface {
	ScheduleMaterialization(ctx context.Context, hackathonID, judgeID uuid.UUID) error
}

var (
	_ Scheduler = (*Service)(nil)
	_ Scheduler = (*InlineScheduler)(nil)
)

// Service schedules judging jobs on River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	metrics metrics.OperationMetrics
}

// NewService creates a River client with its own pgx pool. River requires pgx,
// not database/sql, so it cannot share the bun connection.
func NewService(ctx context.Context, dsn string, maxWorkers int, ensurer AssignmentEnsurer, logger *slog.Logger, m metrics.OperationMetrics) (*Service, error) {
	logger = logger.With(slog.String("component", "river_queue"))
	start := time.Now()
	m.RecordOperationAttempt(ctx, "initialize_service", "river")

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		m.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		m.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		m.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		m.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, err
	}

	if maxWorkers < 1 {
		maxWorkers = 1
	}
	workers := river.NewWorkers()
	river.AddWorker(workers, NewMaterializeAssignmentsWorker(ensurer, logger))

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			QueueName: {MaxWorkers: maxWorkers},
		},
		Workers: workers,
		Logger:  logger,
	})
	if err != nil {
		pool.Close()
		m.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	m.RecordOperationSuccess(ctx, "initialize_service", "river")
	m.RecordOperationDuration(ctx, "initialize_service", "river", time.Since(start))
	logger.InfoContext(ctx, "Judging queue service initialized")

	return &Service{client: client, pool: pool, logger: logger, metrics: m}, nil
}

// Migrate brings the River schema up to date.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return fmt.Errorf("failed to create River migrator: %w", err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{}); err != nil {
		return fmt.Errorf("failed to run River migrations: %w", err)
	}
	return nil
}

func (s *Service) Start(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Starting judging queue service")
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start River client: %w", err)
	}
	return nil
}

// Stop waits for running jobs and closes the pool.
func (s *Service) Stop(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Stopping judging queue service")
	defer s.pool.Close()
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	return nil
}

// materializeUniqueStates limits deduplication to jobs that have not finished.
// River's default also matches completed jobs, which would swallow the job for a
// judge who is removed and later added again.
var materializeUniqueStates = []rivertype.JobState{
	rivertype.JobStateAvailable,
	rivertype.JobStatePending,
	rivertype.JobStateRetryable,
	rivertype.JobStateRunning,
	rivertype.JobStateScheduled,
}

// ScheduleMaterialization enqueues a materialization job. A job for the same
// judge that is still waiting or running absorbs the new one.
func (s *Service) ScheduleMaterialization(ctx context.Context, hackathonID, judgeID uuid.UUID) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "schedule_materialization", "river")

	res, err := s.client.Insert(ctx, MaterializeAssignmentsJob{HackathonID: hackathonID, JudgeID: judgeID}, &river.InsertOpts{
		Queue:      QueueName,
		UniqueOpts: river.UniqueOpts{ByArgs: true, ByState: materializeUniqueStates},
	})
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "schedule_materialization", "river")
		return fmt.Errorf("failed to schedule materialization job: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "schedule_materialization", "river")
	s.metrics.RecordOperationDuration(ctx, "schedule_materialization", "river", time.Since(start))
	s.logger.InfoContext(ctx, "Materialization job scheduled",
		slog.Int64("job_id", res.Job.ID),
		slog.Bool("duplicate", res.UniqueSkippedAsDuplicate),
		slog.String("judge_id", judgeID.String()),
	)
	return nil
}

// HealthCheck verifies the queue tables are reachable.
func (s *Service) HealthCheck(ctx context.Context) error {
	var count int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM river_job").Scan(&count); err != nil {
		return fmt.Errorf("queue service health check failed: %w", err)
	}
	return nil
}

// InlineScheduler materializes immediately. Used when no queue is configured.
type InlineScheduler struct {
	ensurer AssignmentEnsurer
	logger  *slog.Logger
}

func NewInlineScheduler(ensurer AssignmentEnsurer, logger *slog.Logger) *InlineScheduler {
	return &InlineScheduler{ensurer: ensurer, logger: logger}
}

func (s *InlineScheduler) ScheduleMaterialization(ctx context.Context, hackathonID, judgeID uuid.UUID) error {
	created, err := s.ensurer.EnsureAssignments(ctx, hackathonID, judgeID)
	if err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "Materialized assignments inline",
		slog.String("judge_id", judgeID.String()),
		slog.Int("created", created),
	)
	return nil
}
