package criteriaservice

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the criteria store operations.
type Service interface {
	ListCriteria(ctx context.Context, hackathonID uuid.UUID) ([]CriterionDTO, error)
	CreateCriterion(ctx context.Context, hackathonID uuid.UUID, req CreateCriterionRequest, actorID uuid.UUID) (*CriterionDTO, error)
	UpdateCriterion(ctx context.Context, criterionID uuid.UUID, req UpdateCriterionRequest, actorID uuid.UUID) (*CriterionDTO, error)
	DeleteCriterion(ctx context.Context, criterionID uuid.UUID, actorID uuid.UUID) error
}
