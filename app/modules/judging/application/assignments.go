package judgingservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	hackathondb "github.com/Black-And-White-Club/hackathon-judging/app/modules/hackathon/infrastructure/repositories"
	judgingdb "github.com/Black-And-White-Club/hackathon-judging/app/modules/judging/infrastructure/repositories"
	"github.com/Black-And-White-Club/hackathon-judging/app/shared/apperr"
	"github.com/Black-And-White-Club/hackathon-judging/app/shared/operation"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ListAssignmentsForJudge returns the judge's assignments, creating one for every
// submitted project that does not have one yet.
func (s *JudgingService) ListAssignmentsForJudge(ctx context.Context, hackathonID, judgeID uuid.UUID) ([]AssignmentDTO, error) {
	return operation.Run(ctx, s.tel, "ListAssignmentsForJudge", hackathonID.String(), func(ctx context.Context) ([]AssignmentDTO, error) {
		return operation.RunInTx(ctx, s.db, func(ctx context.Context, tx bun.IDB) ([]AssignmentDTO, error) {
			return s.listAssignmentsLogic(ctx, tx, hackathonID, judgeID)
		})
	})
}

func (s *JudgingService) listAssignmentsLogic(ctx context.Context, db bun.IDB, hackathonID, judgeID uuid.UUID) ([]AssignmentDTO, error) {
	if err := s.requireHackathon(ctx, db, hackathonID); err != nil {
		return nil, err
	}

	canJudge, err := s.canJudge(ctx, db, hackathonID, judgeID)
	if err != nil {
		return nil, err
	}
	if !canJudge {
		return nil, apperr.Forbidden("only judges can view judging assignments")
	}

	if _, err := s.ensureAssignmentsLogic(ctx, db, hackathonID, judgeID); err != nil {
		return nil, err
	}

	assignments, err := s.repo.ListAssignmentsForJudge(ctx, db, hackathonID, judgeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	criteria, err := s.criteriaRepo.ListByHackathon(ctx, db, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list criteria: %w", err)
	}

	out, err := s.buildDTOs(ctx, db, assignments, criteria)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ProjectName != out[j].ProjectName {
			return out[i].ProjectName < out[j].ProjectName
		}
		return out[i].ProjectID.String() < out[j].ProjectID.String()
	})
	return out, nil
}

// EnsureAssignments is the materialization step alone. Used after a judge is
// added and by the background job. A user who no longer holds a judging role
// by the time it runs gets nothing; that is not an error, so queued jobs for a
// removed judge finish without retrying.
func (s *JudgingService) EnsureAssignments(ctx context.Context, hackathonID, judgeID uuid.UUID) (int, error) {
	return operation.Run(ctx, s.tel, "EnsureAssignments", hackathonID.String(), func(ctx context.Context) (int, error) {
		return operation.RunInTx(ctx, s.db, func(ctx context.Context, tx bun.IDB) (int, error) {
			if err := s.requireHackathon(ctx, tx, hackathonID); err != nil {
				return 0, err
			}
			canJudge, err := s.canJudge(ctx, tx, hackathonID, judgeID)
			if err != nil {
				return 0, err
			}
			if !canJudge {
				s.logger.InfoContext(ctx, "Skipping materialization for non-judge",
					slog.String("hackathon_id", hackathonID.String()),
					slog.String("judge_id", judgeID.String()),
				)
				return 0, nil
			}
			return s.ensureAssignmentsLogic(ctx, tx, hackathonID, judgeID)
		})
	})
}

func (s *JudgingService) canJudge(ctx context.Context, db bun.IDB, hackathonID, userID uuid.UUID) (bool, error) {
	role, err := s.hackathonRepo.GetRole(ctx, db, hackathonID, userID)
	if err != nil {
		if errors.Is(err, hackathondb.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get role: %w", err)
	}
	return role.Role.CanJudge(), nil
}

func (s *JudgingService) ensureAssignmentsLogic(ctx context.Context, db bun.IDB, hackathonID, judgeID uuid.UUID) (int, error) {
	projects, err := s.hackathonRepo.ListSubmittedProjects(ctx, db, hackathonID)
	if err != nil {
		return 0, fmt.Errorf("failed to list submitted projects: %w", err)
	}
	if len(projects) == 0 {
		return 0, nil
	}

	assignments := make([]judgingdb.Assignment, 0, len(projects))
	for _, p := range projects {
		assignments = append(assignments, judgingdb.Assignment{
			HackathonID: hackathonID,
			JudgeID:     judgeID,
			ProjectID:   p.ID,
		})
	}

	created, err := s.repo.InsertMissingAssignments(ctx, db, assignments)
	if err != nil {
		return 0, fmt.Errorf("failed to materialize assignments: %w", err)
	}
	if created > 0 {
		s.logger.InfoContext(ctx, "Materialized judge assignments",
			slog.String("hackathon_id", hackathonID.String()),
			slog.String("judge_id", judgeID.String()),
			slog.Int("created", created),
		)
	}
	return created, nil
}

// GetAssignment returns one assignment to its judge or an organizer.
func (s *JudgingService) GetAssignment(ctx context.Context, assignmentID, callerID uuid.UUID) (*AssignmentDTO, error) {
	return operation.Run(ctx, s.tel, "GetAssignment", assignmentID.String(), func(ctx context.Context) (*AssignmentDTO, error) {
		a, err := s.getAssignment(ctx, nil, assignmentID)
		if err != nil {
			return nil, err
		}
		if a.JudgeID != callerID {
			ok, err := s.hackathonRepo.IsOrganizer(ctx, nil, a.HackathonID, callerID)
			if err != nil {
				return nil, fmt.Errorf("failed to check organizer role: %w", err)
			}
			if !ok {
				return nil, apperr.Forbidden("assignment belongs to another judge")
			}
		}

		criteria, err := s.criteriaRepo.ListByHackathon(ctx, nil, a.HackathonID)
		if err != nil {
			return nil, fmt.Errorf("failed to list criteria: %w", err)
		}
		dtos, err := s.buildDTOs(ctx, nil, []judgingdb.Assignment{*a}, criteria)
		if err != nil {
			return nil, err
		}
		return &dtos[0], nil
	})
}
