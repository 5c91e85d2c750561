package judgingservice

import (
	"time"

	"github.com/google/uuid"
)

// ScoreEntry is one criterion score in a submission batch.
type ScoreEntry struct {
	CriterionID uuid.UUID `json:"criterion_id"`
	Score       int       `json:"score"`
	Feedback    *string   `json:"feedback,omitempty"`
}

// SubmitScoresRequest is the body of a score submission.
type SubmitScoresRequest struct {
	Scores []ScoreEntry `json:"scores"`
}

// ScoreDTO is a stored score as seen by callers.
type ScoreDTO struct {
	CriterionID uuid.UUID `json:"criterion_id"`
	Score       int       `json:"score"`
	Feedback    *string   `json:"feedback,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AssignmentDTO is an assignment with its project context and current scores.
type AssignmentDTO struct {
	ID          uuid.UUID  `json:"id"`
	HackathonID uuid.UUID  `json:"hackathon_id"`
	JudgeID     uuid.UUID  `json:"judge_id"`
	ProjectID   uuid.UUID  `json:"project_id"`
	ProjectName string     `json:"project_name"`
	TeamID      uuid.UUID  `json:"team_id"`
	TeamName    string     `json:"team_name"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Scores      []ScoreDTO `json:"scores"`
}
