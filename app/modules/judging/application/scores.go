package judgingservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/hackathon-judging/app/events"
	criteriadb "github.com/Black-And-White-Club/hackathon-judging/app/modules/criteria/infrastructure/repositories"
	judgingdb "github.com/Black-And-White-Club/hackathon-judging/app/modules/judging/infrastructure/repositories"
	"github.com/Black-And-White-Club/hackathon-judging/app/shared/apperr"
	"github.com/Black-And-White-Club/hackathon-judging/app/shared/operation"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type submitResult struct {
	assignment   *AssignmentDTO
	criterionIDs []uuid.UUID
	completedNow bool
}

// SubmitScores writes a batch of scores for an assignment. Every entry is
// validated before anything is written; the writes and the completion update
// share one transaction.
func (s *JudgingService) SubmitScores(ctx context.Context, assignmentID uuid.UUID, entries []ScoreEntry, callerID uuid.UUID) (*AssignmentDTO, error) {
	return operation.Run(ctx, s.tel, "SubmitScores", assignmentID.String(), func(ctx context.Context) (*AssignmentDTO, error) {
		res, err := operation.RunInTx(ctx, s.db, func(ctx context.Context, tx bun.IDB) (*submitResult, error) {
			return s.submitScoresLogic(ctx, tx, assignmentID, entries, callerID)
		})
		if err != nil {
			return nil, err
		}

		a := res.assignment
		s.publish(ctx, events.ScoresSubmittedV1, events.ScoresSubmittedPayloadV1{
			HackathonID:  a.HackathonID,
			AssignmentID: a.ID,
			JudgeID:      a.JudgeID,
			ProjectID:    a.ProjectID,
			CriterionIDs: res.criterionIDs,
			Complete:     a.CompletedAt != nil,
		})
		if res.completedNow {
			s.publish(ctx, events.AssignmentCompletedV1, events.AssignmentCompletedPayloadV1{
				HackathonID:  a.HackathonID,
				AssignmentID: a.ID,
				JudgeID:      a.JudgeID,
				ProjectID:    a.ProjectID,
				CompletedAt:  *a.CompletedAt,
			})
		}
		return a, nil
	})
}

func (s *JudgingService) submitScoresLogic(ctx context.Context, db bun.IDB, assignmentID uuid.UUID, entries []ScoreEntry, callerID uuid.UUID) (*submitResult, error) {
	a, err := s.repo.GetAssignmentForUpdate(ctx, db, assignmentID)
	if err != nil {
		if errors.Is(err, judgingdb.ErrNotFound) {
			return nil, apperr.NotFound("assignment %s not found", assignmentID)
		}
		return nil, fmt.Errorf("failed to lock assignment: %w", err)
	}
	if a.JudgeID != callerID {
		return nil, apperr.Forbidden("only the assigned judge can submit scores")
	}

	criteria, err := s.criteriaRepo.ListByHackathon(ctx, db, a.HackathonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list criteria: %w", err)
	}
	if err := validateEntries(entries, criteria); err != nil {
		return nil, err
	}

	now := s.now()
	rows := make([]judgingdb.Score, 0, len(entries))
	criterionIDs := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, judgingdb.Score{
			AssignmentID: a.ID,
			CriterionID:  e.CriterionID,
			Value:        e.Score,
			Feedback:     e.Feedback,
		})
		criterionIDs = append(criterionIDs, e.CriterionID)
	}
	if err := s.repo.UpsertScores(ctx, db, rows); err != nil {
		return nil, fmt.Errorf("failed to write scores: %w", err)
	}

	stored, err := s.repo.ListScores(ctx, db, a.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload scores: %w", err)
	}

	completedNow := false
	complete := coversAll(stored, criteria)
	switch {
	case complete && a.CompletedAt == nil:
		a.CompletedAt = &now
		completedNow = true
		if err := s.repo.SetCompletedAt(ctx, db, a.ID, a.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to mark assignment complete: %w", err)
		}
	case !complete && a.CompletedAt != nil:
		a.CompletedAt = nil
		if err := s.repo.SetCompletedAt(ctx, db, a.ID, nil); err != nil {
			return nil, fmt.Errorf("failed to clear assignment completion: %w", err)
		}
	}

	dtos, err := s.buildDTOs(ctx, db, []judgingdb.Assignment{*a}, criteria)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Scores submitted",
		slog.String("assignment_id", a.ID.String()),
		slog.String("judge_id", a.JudgeID.String()),
		slog.Int("entries", len(entries)),
		slog.Bool("complete", complete),
	)
	return &submitResult{assignment: &dtos[0], criterionIDs: criterionIDs, completedNow: completedNow}, nil
}

// validateEntries rejects the whole batch on the first bad entry.
func validateEntries(entries []ScoreEntry, criteria []criteriadb.Criterion) error {
	if len(entries) == 0 {
		return apperr.Validation("at least one score is required")
	}

	byID := make(map[uuid.UUID]*criteriadb.Criterion, len(criteria))
	for i := range criteria {
		byID[criteria[i].ID] = &criteria[i]
	}

	seen := make(map[uuid.UUID]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.CriterionID]; dup {
			return apperr.Validation("criterion %s appears more than once", e.CriterionID)
		}
		seen[e.CriterionID] = struct{}{}

		c, ok := byID[e.CriterionID]
		if !ok {
			return apperr.Validation("unknown criterion %s", e.CriterionID)
		}
		if e.Score < 0 || e.Score > c.MaxScore {
			return apperr.Validation("score for %q must be between 0 and %d, got %d", c.Name, c.MaxScore, e.Score)
		}
	}
	return nil
}

// coversAll reports whether every current criterion has a stored score.
func coversAll(scores []judgingdb.Score, criteria []criteriadb.Criterion) bool {
	have := make(map[uuid.UUID]struct{}, len(scores))
	for _, sc := range scores {
		have[sc.CriterionID] = struct{}{}
	}
	for _, c := range criteria {
		if _, ok := have[c.ID]; !ok {
			return false
		}
	}
	return true
}

