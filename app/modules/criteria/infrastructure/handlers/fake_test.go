package criteriahandlers

import (
	"context"

	criteriaservice "github.com/Black-And-White-Club/hackathon-judging/app/modules/criteria/application"
	"github.com/google/uuid"
)

type FakeService struct {
	ListCriteriaFunc    func(ctx context.Context, hackathonID uuid.UUID) ([]criteriaservice.CriterionDTO, error)
	CreateCriterionFunc func(ctx context.Context, hackathonID uuid.UUID, req criteriaservice.CreateCriterionRequest, actorID uuid.UUID) (*criteriaservice.CriterionDTO, error)
	UpdateCriterionFunc func(ctx context.Context, criterionID uuid.UUID, req criteriaservice.UpdateCriterionRequest, actorID uuid.UUID) (*criteriaservice.CriterionDTO, error)
	DeleteCriterionFunc func(ctx context.Context, criterionID uuid.UUID, actorID uuid.UUID) error
}

var _ criteriaservice.Service = (*FakeService)(nil)

func (f *FakeService) ListCriteria(ctx context.Context, hackathonID uuid.UUID) ([]criteriaservice.CriterionDTO, error) {
	if f.ListCriteriaFunc != nil {
		return f.ListCriteriaFunc(ctx, hackathonID)
	}
	return nil, nil
}

func (f *FakeService) CreateCriterion(ctx context.Context, hackathonID uuid.UUID, req criteriaservice.CreateCriterionRequest, actorID uuid.UUID) (*criteriaservice.CriterionDTO, error) {
	if f.CreateCriterionFunc != nil {
		return f.CreateCriterionFunc(ctx, hackathonID, req, actorID)
	}
	return nil, nil
}

func (f *FakeService) UpdateCriterion(ctx context.Context, criterionID uuid.UUID, req criteriaservice.UpdateCriterionRequest, actorID uuid.UUID) (*criteriaservice.CriterionDTO, error) {
	if f.UpdateCriterionFunc != nil {
		return f.UpdateCriterionFunc(ctx, criterionID, req, actorID)
	}
	return nil, nil
}

func (f *FakeService) DeleteCriterion(ctx context.Context, criterionID uuid.UUID, actorID uuid.UUID) error {
	if f.DeleteCriterionFunc != nil {
		return f.DeleteCriterionFunc(ctx, criterionID, actorID)
	}
	return nil
}
