package judgingdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Assignment pairs one judge with one project. Unique per (judge_id, project_id).
type Assignment struct {
	bun.BaseModel `bun:"table:judge_assignments,alias:ja"`

	ID          uuid.UUID  `bun:"id,pk,type:uuid"`
	HackathonID uuid.UUID  `bun:"hackathon_id,type:uuid,notnull"`
	JudgeID     uuid.UUID  `bun:"judge_id,type:uuid,notnull"`
	ProjectID   uuid.UUID  `bun:"project_id,type:uuid,notnull"`
	CompletedAt *time.Time `bun:"completed_at"`
	CreatedAt   time.Time  `bun:"created_at,notnull"`
	UpdatedAt   time.Time  `bun:"updated_at,notnull"`
}

// Score is a judge's value for one criterion on one assignment.
// Unique per (assignment_id, criterion_id).
type Score struct {
	bun.BaseModel `bun:"table:judge_scores,alias:js"`

	ID           uuid.UUID `bun:"id,pk,type:uuid"`
	AssignmentID uuid.UUID `bun:"assignment_id,type:uuid,notnull"`
	CriterionID  uuid.UUID `bun:"criterion_id,type:uuid,notnull"`
	Value        int       `bun:"score,notnull"`
	Feedback     *string   `bun:"feedback"`
	CreatedAt    time.Time `bun:"created_at,notnull"`
	UpdatedAt    time.Time `bun:"updated_at,notnull"`
}

// ProjectScore is one score row resolved to its project, for aggregation.
type ProjectScore struct {
	ProjectID   uuid.UUID `bun:"project_id,type:uuid"`
	JudgeID     uuid.UUID `bun:"judge_id,type:uuid"`
	CriterionID uuid.UUID `bun:"criterion_id,type:uuid"`
	Value       int       `bun:"score"`
}

// JudgeProgress is the number of completed assignments for a judge.
type JudgeProgress struct {
	JudgeID   uuid.UUID `bun:"judge_id,type:uuid"`
	Completed int       `bun:"completed"`
}
