package rosterservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/hackathon-judging/app/eventbus"
	"github.com/Black-And-White-Club/hackathon-judging/app/events"
	hackathondomain "github.com/Black-And-White-Club/hackathon-judging/app/modules/hackathon/domain"
	hackathondb "github.com/Black-And-White-Club/hackathon-judging/app/modules/hackathon/infrastructure/repositories"
	judgingqueue "github.com/Black-And-White-Club/hackathon-judging/app/modules/judging/infrastructure/queue"
	judgingdb "github.com/Black-And-White-Club/hackathon-judging/app/modules/judging/infrastructure/repositories"
	"github.com/Black-And-White-Club/hackathon-judging/app/observability/metrics"
	"github.com/Black-And-White-Club/hackathon-judging/app/shared/apperr"
	"github.com/Black-And-White-Club/hackathon-judging/app/shared/operation"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// RosterService implements the Service interface.
type RosterService struct {
	hackathonRepo hackathondb.Repository
	judgingRepo   judgingdb.Repository
	scheduler     judgingqueue.Scheduler
	publisher     eventbus.Publisher
	logger        *slog.Logger
	tel           operation.Telemetry
	db            *bun.DB
}

// NewRosterService creates a new RosterService. publisher may be nil.
func NewRosterService(
	hackathonRepo hackathondb.Repository,
	judgingRepo judgingdb.Repository,
	scheduler judgingqueue.Scheduler,
	publisher eventbus.Publisher,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *RosterService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RosterService{
		hackathonRepo: hackathonRepo,
		judgingRepo:   judgingRepo,
		scheduler:     scheduler,
		publisher:     publisher,
		logger:        logger,
		tel: operation.Telemetry{
			Service: "RosterService",
			Logger:  logger,
			Metrics: metrics,
			Tracer:  tracer,
		},
		db: db,
	}
}

// ListJudges returns every judge with their completed and total project counts.
func (s *RosterService) ListJudges(ctx context.Context, hackathonID, callerID uuid.UUID) ([]JudgeDTO, error) {
	return operation.Run(ctx, s.tel, "ListJudges", hackathonID.String(), func(ctx context.Context) ([]JudgeDTO, error) {
		if err := s.authorize(ctx, nil, hackathonID, callerID); err != nil {
			return nil, err
		}

		judges, err := s.hackathonRepo.ListUsersByRole(ctx, nil, hackathonID, hackathondomain.RoleJudge)
		if err != nil {
			return nil, fmt.Errorf("failed to list judges: %w", err)
		}
		total, err := s.hackathonRepo.CountSubmittedProjects(ctx, nil, hackathonID)
		if err != nil {
			return nil, fmt.Errorf("failed to count submitted projects: %w", err)
		}
		completed, err := s.judgingRepo.CountCompletedByJudge(ctx, nil, hackathonID)
		if err != nil {
			return nil, fmt.Errorf("failed to count completed assignments: %w", err)
		}

		out := make([]JudgeDTO, 0, len(judges))
		for _, u := range judges {
			out = append(out, JudgeDTO{
				UserID:         u.ID,
				DisplayName:    u.DisplayName,
				Email:          u.Email,
				ProjectsScored: completed[u.ID],
				TotalProjects:  total,
			})
		}
		return out, nil
	})
}

// AddJudge promotes a user to judge and schedules their assignments.
func (s *RosterService) AddJudge(ctx context.Context, hackathonID, targetUserID, callerID uuid.UUID) (*JudgeDTO, error) {
	return operation.Run(ctx, s.tel, "AddJudge", hackathonID.String(), func(ctx context.Context) (*JudgeDTO, error) {
		var previous *hackathondomain.Role
		judge, err := operation.RunInTx(ctx, s.db, func(ctx context.Context, tx bun.IDB) (*JudgeDTO, error) {
			var err error
			var dto *JudgeDTO
			dto, previous, err = s.addJudgeLogic(ctx, tx, hackathonID, targetUserID, callerID)
			return dto, err
		})
		if err != nil {
			return nil, err
		}

		// Scheduled after commit; the inline scheduler opens its own transaction.
		if err := s.scheduler.ScheduleMaterialization(ctx, hackathonID, targetUserID); err != nil {
			s.logger.WarnContext(ctx, "Failed to schedule assignment materialization; assignments will be created on first listing",
				slog.String("hackathon_id", hackathonID.String()),
				slog.String("judge_id", targetUserID.String()),
				slog.String("error", err.Error()),
			)
		}

		payload := events.JudgeRosterChangedPayloadV1{
			HackathonID: hackathonID,
			UserID:      targetUserID,
			NewRole:     string(hackathondomain.RoleJudge),
			ChangedBy:   callerID,
		}
		if previous != nil {
			payload.PreviousRole = string(*previous)
		}
		s.publish(ctx, events.JudgeAddedV1, payload)
		return judge, nil
	})
}

func (s *RosterService) addJudgeLogic(ctx context.Context, db bun.IDB, hackathonID, targetUserID, callerID uuid.UUID) (*JudgeDTO, *hackathondomain.Role, error) {
	if err := s.authorize(ctx, db, hackathonID, callerID); err != nil {
		return nil, nil, err
	}

	user, err := s.hackathonRepo.GetUser(ctx, db, targetUserID)
	if err != nil {
		if errors.Is(err, hackathondb.ErrNotFound) {
			return nil, nil, apperr.NotFound("user %s not found", targetUserID)
		}
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}

	var previous *hackathondomain.Role
	current, err := s.hackathonRepo.GetRole(ctx, db, hackathonID, targetUserID)
	switch {
	case err == nil:
		if current.Role == hackathondomain.RoleJudge {
			return nil, nil, apperr.Conflict("user %s is already a judge", targetUserID)
		}
		role := current.Role
		previous = &role
	case errors.Is(err, hackathondb.ErrNotFound):
	default:
		return nil, nil, fmt.Errorf("failed to get role: %w", err)
	}

	if err := s.hackathonRepo.UpsertRole(ctx, db, &hackathondb.RoleAssignment{
		HackathonID: hackathonID,
		UserID:      targetUserID,
		Role:        hackathondomain.RoleJudge,
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to assign judge role: %w", err)
	}
	if err := s.hackathonRepo.AppendRoleChange(ctx, db, &hackathondb.RoleChange{
		HackathonID:  hackathonID,
		UserID:       targetUserID,
		PreviousRole: previous,
		NewRole:      hackathondomain.RoleJudge,
		ChangedBy:    callerID,
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to record role change: %w", err)
	}

	total, err := s.hackathonRepo.CountSubmittedProjects(ctx, db, hackathonID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count submitted projects: %w", err)
	}

	s.logger.InfoContext(ctx, "Judge added",
		slog.String("hackathon_id", hackathonID.String()),
		slog.String("user_id", targetUserID.String()),
	)
	return &JudgeDTO{
		UserID:        user.ID,
		DisplayName:   user.DisplayName,
		Email:         user.Email,
		TotalProjects: total,
	}, previous, nil
}

// RemoveJudge demotes a judge to participant. Their assignments and scores stay.
func (s *RosterService) RemoveJudge(ctx context.Context, hackathonID, targetUserID, callerID uuid.UUID) error {
	_, err := operation.Run(ctx, s.tel, "RemoveJudge", hackathonID.String(), func(ctx context.Context) (struct{}, error) {
		_, err := operation.RunInTx(ctx, s.db, func(ctx context.Context, tx bun.IDB) (struct{}, error) {
			return struct{}{}, s.removeJudgeLogic(ctx, tx, hackathonID, targetUserID, callerID)
		})
		if err != nil {
			return struct{}{}, err
		}

		s.publish(ctx, events.JudgeRemovedV1, events.JudgeRosterChangedPayloadV1{
			HackathonID:  hackathonID,
			UserID:       targetUserID,
			PreviousRole: string(hackathondomain.RoleJudge),
			NewRole:      string(hackathondomain.RoleParticipant),
			ChangedBy:    callerID,
		})
		return struct{}{}, nil
	})
	return err
}

func (s *RosterService) removeJudgeLogic(ctx context.Context, db bun.IDB, hackathonID, targetUserID, callerID uuid.UUID) error {
	if err := s.authorize(ctx, db, hackathonID, callerID); err != nil {
		return err
	}

	current, err := s.hackathonRepo.GetRole(ctx, db, hackathonID, targetUserID)
	if err != nil {
		if errors.Is(err, hackathondb.ErrNotFound) {
			return apperr.NotFound("user %s has no role in hackathon %s", targetUserID, hackathonID)
		}
		return fmt.Errorf("failed to get role: %w", err)
	}
	if current.Role != hackathondomain.RoleJudge {
		return apperr.Validation("user %s is not a judge (role %s)", targetUserID, current.Role)
	}

	if err := s.hackathonRepo.UpsertRole(ctx, db, &hackathondb.RoleAssignment{
		HackathonID: hackathonID,
		UserID:      targetUserID,
		Role:        hackathondomain.RoleParticipant,
	}); err != nil {
		return fmt.Errorf("failed to demote judge: %w", err)
	}
	previous := hackathondomain.RoleJudge
	if err := s.hackathonRepo.AppendRoleChange(ctx, db, &hackathondb.RoleChange{
		HackathonID:  hackathonID,
		UserID:       targetUserID,
		PreviousRole: &previous,
		NewRole:      hackathondomain.RoleParticipant,
		ChangedBy:    callerID,
	}); err != nil {
		return fmt.Errorf("failed to record role change: %w", err)
	}

	s.logger.InfoContext(ctx, "Judge removed",
		slog.String("hackathon_id", hackathonID.String()),
		slog.String("user_id", targetUserID.String()),
	)
	return nil
}

// authorize checks the hackathon exists and the caller organizes it.
func (s *RosterService) authorize(ctx context.Context, db bun.IDB, hackathonID, callerID uuid.UUID) error {
	if _, err := s.hackathonRepo.GetHackathon(ctx, db, hackathonID); err != nil {
		if errors.Is(err, hackathondb.ErrNotFound) {
			return apperr.NotFound("hackathon %s not found", hackathonID)
		}
		return fmt.Errorf("failed to get hackathon: %w", err)
	}
	ok, err := s.hackathonRepo.IsOrganizer(ctx, db, hackathonID, callerID)
	if err != nil {
		return fmt.Errorf("failed to check organizer role: %w", err)
	}
	if !ok {
		return apperr.Forbidden("only organizers can manage judges")
	}
	return nil
}

func (s *RosterService) publish(ctx context.Context, topic string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, topic, payload); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event",
			slog.String("topic", topic),
			slog.String("error", err.Error()),
		)
	}
}
