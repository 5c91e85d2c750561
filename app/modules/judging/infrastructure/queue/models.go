package judgingqueue

import "github.com/google/uuid"

// QueueName is the dedicated river queue for judging jobs.
const QueueName = "judging"

// MaterializeAssignmentsJob creates the missing assignments of one judge.
type MaterializeAssignmentsJob struct {
	HackathonID uuid.UUID `json:"hackathon_id"`
	JudgeID     uuid.UUID `json:"judge_id"`
}

// Kind returns the job type identifier for River
func (MaterializeAssignmentsJob) Kind() string { return "materialize_assignments" }
