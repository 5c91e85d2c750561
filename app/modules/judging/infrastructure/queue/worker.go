package judgingqueue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/riverqueue/river"
)

// AssignmentEnsurer is the materialization step the worker drives.
type AssignmentEnsurer interface {
	EnsureAssignments(ctx context.Context, hackathonID, judgeID uuid.UUID) (int, error)
}

// MaterializeAssignmentsWorker runs MaterializeAssignmentsJob.
type MaterializeAssignmentsWorker struct {
	river.WorkerDefaults[MaterializeAssignmentsJob]

	ensurer AssignmentEnsurer
	logger  *slog.Logger
}

func NewMaterializeAssignmentsWorker(ensurer AssignmentEnsurer, logger *slog.Logger) *MaterializeAssignmentsWorker {
	return &MaterializeAssignmentsWorker{ensurer: ensurer, logger: logger}
}

func (w *MaterializeAssignmentsWorker) Work(ctx context.Context, job *river.Job[MaterializeAssignmentsJob]) error {
	created, err := w.ensurer.EnsureAssignments(ctx, job.Args.HackathonID, job.Args.JudgeID)
	if err != nil {
		return fmt.Errorf("materialize assignments: %w", err)
	}
	w.logger.InfoContext(ctx, "Materialize assignments job finished",
		slog.Int64("job_id", job.ID),
		slog.String("hackathon_id", job.Args.HackathonID.String()),
		slog.String("judge_id", job.Args.JudgeID.String()),
		slog.Int("created", created),
	)
	return nil
}
