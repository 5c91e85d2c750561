package criteriaservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	criteriadb "github.com/Black-And-White-Club/hackathon-judging/app/modules/criteria/infrastructure/repositories"
	hackathondb "github.com/Black-And-White-Club/hackathon-judging/app/modules/hackathon/infrastructure/repositories"
	"github.com/Black-And-White-Club/hackathon-judging/app/observability/metrics"
	"github.com/Black-And-White-Club/hackathon-judging/app/shared/apperr"
	"github.com/Black-And-White-Club/hackathon-judging/app/shared/operation"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// CriteriaService implements the Service interface.
type CriteriaService struct {
	repo          criteriadb.Repository
	hackathonRepo hackathondb.Repository
	logger        *slog.Logger
	tel           operation.Telemetry
	db            *bun.DB
}

// NewCriteriaService creates a new CriteriaService.
func NewCriteriaService(
	repo criteriadb.Repository,
	hackathonRepo hackathondb.Repository,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *CriteriaService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CriteriaService{
		repo:          repo,
		hackathonRepo: hackathonRepo,
		logger:        logger,
		tel: operation.Telemetry{
			Service: "CriteriaService",
			Logger:  logger,
			Metrics: metrics,
			Tracer:  tracer,
		},
		db: db,
	}
}

// ListCriteria returns the hackathon's criteria in display order.
func (s *CriteriaService) ListCriteria(ctx context.Context, hackathonID uuid.UUID) ([]CriterionDTO, error) {
	return operation.Run(ctx, s.tel, "ListCriteria", hackathonID.String(), func(ctx context.Context) ([]CriterionDTO, error) {
		if err := s.requireHackathon(ctx, nil, hackathonID); err != nil {
			return nil, err
		}

		criteria, err := s.repo.ListByHackathon(ctx, nil, hackathonID)
		if err != nil {
			return nil, fmt.Errorf("failed to list criteria: %w", err)
		}

		out := make([]CriterionDTO, 0, len(criteria))
		for i := range criteria {
			out = append(out, *toDTO(&criteria[i]))
		}
		return out, nil
	})
}

// CreateCriterion adds a criterion to a hackathon. Organizer or admin only.
func (s *CriteriaService) CreateCriterion(ctx context.Context, hackathonID uuid.UUID, req CreateCriterionRequest, actorID uuid.UUID) (*CriterionDTO, error) {
	return operation.Run(ctx, s.tel, "CreateCriterion", hackathonID.String(), func(ctx context.Context) (*CriterionDTO, error) {
		return operation.RunInTx(ctx, s.db, func(ctx context.Context, tx bun.IDB) (*CriterionDTO, error) {
			return s.createCriterionLogic(ctx, tx, hackathonID, req, actorID)
		})
	})
}

func (s *CriteriaService) createCriterionLogic(ctx context.Context, db bun.IDB, hackathonID uuid.UUID, req CreateCriterionRequest, actorID uuid.UUID) (*CriterionDTO, error) {
	if err := s.requireHackathon(ctx, db, hackathonID); err != nil {
		return nil, err
	}
	if err := s.requireOrganizer(ctx, db, hackathonID, actorID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if err := validateFields(&name, &req.MaxScore, &req.Weight); err != nil {
		return nil, err
	}

	displayOrder := 0
	if req.DisplayOrder != nil {
		displayOrder = *req.DisplayOrder
	} else {
		count, err := s.repo.CountByHackathon(ctx, db, hackathonID)
		if err != nil {
			return nil, fmt.Errorf("failed to count criteria: %w", err)
		}
		displayOrder = count
	}

	criterion := &criteriadb.Criterion{
		HackathonID:  hackathonID,
		Name:         name,
		Description:  req.Description,
		MaxScore:     req.MaxScore,
		Weight:       req.Weight,
		DisplayOrder: displayOrder,
	}
	if err := s.repo.Create(ctx, db, criterion); err != nil {
		return nil, fmt.Errorf("failed to create criterion: %w", err)
	}

	s.logger.InfoContext(ctx, "Criterion created",
		slog.String("hackathon_id", hackathonID.String()),
		slog.String("criterion_id", criterion.ID.String()),
	)
	return toDTO(criterion), nil
}

// UpdateCriterion applies the present fields of req.
func (s *CriteriaService) UpdateCriterion(ctx context.Context, criterionID uuid.UUID, req UpdateCriterionRequest, actorID uuid.UUID) (*CriterionDTO, error) {
	return operation.Run(ctx, s.tel, "UpdateCriterion", criterionID.String(), func(ctx context.Context) (*CriterionDTO, error) {
		return operation.RunInTx(ctx, s.db, func(ctx context.Context, tx bun.IDB) (*CriterionDTO, error) {
			return s.updateCriterionLogic(ctx, tx, criterionID, req, actorID)
		})
	})
}

func (s *CriteriaService) updateCriterionLogic(ctx context.Context, db bun.IDB, criterionID uuid.UUID, req UpdateCriterionRequest, actorID uuid.UUID) (*CriterionDTO, error) {
	criterion, err := s.getCriterion(ctx, db, criterionID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOrganizer(ctx, db, criterion.HackathonID, actorID); err != nil {
		return nil, err
	}

	var name *string
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		name = &trimmed
	}
	if err := validateFields(name, req.MaxScore, req.Weight); err != nil {
		return nil, err
	}

	if name != nil {
		criterion.Name = *name
	}
	if req.Description != nil {
		criterion.Description = req.Description
	}
	if req.MaxScore != nil {
		criterion.MaxScore = *req.MaxScore
	}
	if req.Weight != nil {
		criterion.Weight = *req.Weight
	}
	if req.DisplayOrder != nil {
		criterion.DisplayOrder = *req.DisplayOrder
	}

	if err := s.repo.Update(ctx, db, criterion); err != nil {
		if errors.Is(err, criteriadb.ErrNotFound) {
			return nil, apperr.NotFound("criterion %s not found", criterionID)
		}
		return nil, fmt.Errorf("failed to update criterion: %w", err)
	}
	return toDTO(criterion), nil
}

// DeleteCriterion removes a criterion. Existing scores for it are orphaned and
// drop out of completion checks and leaderboard math.
func (s *CriteriaService) DeleteCriterion(ctx context.Context, criterionID uuid.UUID, actorID uuid.UUID) error {
	_, err := operation.Run(ctx, s.tel, "DeleteCriterion", criterionID.String(), func(ctx context.Context) (struct{}, error) {
		return operation.RunInTx(ctx, s.db, func(ctx context.Context, tx bun.IDB) (struct{}, error) {
			criterion, err := s.getCriterion(ctx, tx, criterionID)
			if err != nil {
				return struct{}{}, err
			}
			if err := s.requireOrganizer(ctx, tx, criterion.HackathonID, actorID); err != nil {
				return struct{}{}, err
			}
			if err := s.repo.Delete(ctx, tx, criterionID); err != nil {
				if errors.Is(err, criteriadb.ErrNotFound) {
					return struct{}{}, apperr.NotFound("criterion %s not found", criterionID)
				}
				return struct{}{}, fmt.Errorf("failed to delete criterion: %w", err)
			}
			return struct{}{}, nil
		})
	})
	return err
}

func (s *CriteriaService) getCriterion(ctx context.Context, db bun.IDB, criterionID uuid.UUID) (*criteriadb.Criterion, error) {
	criterion, err := s.repo.GetByID(ctx, db, criterionID)
	if err != nil {
		if errors.Is(err, criteriadb.ErrNotFound) {
			return nil, apperr.NotFound("criterion %s not found", criterionID)
		}
		return nil, fmt.Errorf("failed to get criterion: %w", err)
	}
	return criterion, nil
}

func (s *CriteriaService) requireHackathon(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) error {
	if _, err := s.hackathonRepo.GetHackathon(ctx, db, hackathonID); err != nil {
		if errors.Is(err, hackathondb.ErrNotFound) {
			return apperr.NotFound("hackathon %s not found", hackathonID)
		}
		return fmt.Errorf("failed to get hackathon: %w", err)
	}
	return nil
}

func (s *CriteriaService) requireOrganizer(ctx context.Context, db bun.IDB, hackathonID, userID uuid.UUID) error {
	ok, err := s.hackathonRepo.IsOrganizer(ctx, db, hackathonID, userID)
	if err != nil {
		return fmt.Errorf("failed to check organizer role: %w", err)
	}
	if !ok {
		return apperr.Forbidden("only organizers can manage judging criteria")
	}
	return nil
}

// validateFields checks the non-nil fields only.
func validateFields(name *string, maxScore *int, weight *float64) error {
	if name != nil && *name == "" {
		return apperr.Validation("criterion name is required")
	}
	if maxScore != nil && *maxScore < 1 {
		return apperr.Validation("max score must be at least 1, got %d", *maxScore)
	}
	if weight != nil && (*weight <= 0 || math.IsNaN(*weight) || math.IsInf(*weight, 0)) {
		return apperr.Validation("weight must be a positive number, got %v", *weight)
	}
	return nil
}
