package rosterservice

import (
	"context"

	"github.com/google/uuid"
)

// Service manages the judge roster of a hackathon. Organizer or admin only.
type Service interface {
	ListJudges(ctx context.Context, hackathonID, callerID uuid.UUID) ([]JudgeDTO, error)
	AddJudge(ctx context.Context, hackathonID, targetUserID, callerID uuid.UUID) (*JudgeDTO, error)
	RemoveJudge(ctx context.Context, hackathonID, targetUserID, callerID uuid.UUID) error
}
