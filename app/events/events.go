// Package events defines the topics and payloads the judging core publishes.
package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	// ScoresSubmittedV1 is published after a judge's score batch is committed.
	ScoresSubmittedV1 = "judging.scores.submitted.v1"
	// AssignmentCompletedV1 is published when an assignment first becomes complete.
	AssignmentCompletedV1 = "judging.assignment.completed.v1"
	// JudgeAddedV1 is published after a user is promoted to judge.
	JudgeAddedV1 = "roster.judge_added.v1"
	// JudgeRemovedV1 is published after a judge is demoted to participant.
	JudgeRemovedV1 = "roster.judge_removed.v1"
)

type ScoresSubmittedPayloadV1 struct {
	HackathonID  uuid.UUID   `json:"hackathon_id"`
	AssignmentID uuid.UUID   `json:"assignment_id"`
	JudgeID      uuid.UUID   `json:"judge_id"`
	ProjectID    uuid.UUID   `json:"project_id"`
	CriterionIDs []uuid.UUID `json:"criterion_ids"`
	Complete     bool        `json:"complete"`
}

type AssignmentCompletedPayloadV1 struct {
	HackathonID  uuid.UUID `json:"hackathon_id"`
	AssignmentID uuid.UUID `json:"assignment_id"`
	JudgeID      uuid.UUID `json:"judge_id"`
	ProjectID    uuid.UUID `json:"project_id"`
	CompletedAt  time.Time `json:"completed_at"`
}

type JudgeRosterChangedPayloadV1 struct {
	HackathonID  uuid.UUID `json:"hackathon_id"`
	UserID       uuid.UUID `json:"user_id"`
	PreviousRole string    `json:"previous_role,omitempty"`
	NewRole      string    `json:"new_role"`
	ChangedBy    uuid.UUID `json:"changed_by"`
}
