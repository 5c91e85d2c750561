package rosterservice

import "github.com/google/uuid"

// JudgeDTO is a judge with their scoring progress.
type JudgeDTO struct {
	UserID         uuid.UUID `json:"user_id"`
	DisplayName    string    `json:"display_name"`
	Email          string    `json:"email"`
	ProjectsScored int       `json:"projects_scored"`
	TotalProjects  int       `json:"total_projects"`
}

// AddJudgeRequest is the body of an add-judge call.
type AddJudgeRequest struct {
	UserID uuid.UUID `json:"user_id"`
}
