package judgingservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Black-And-White-Club/hackathon-judging/app/eventbus"
	criteriadb "github.com/Black-And-White-Club/hackathon-judging/app/modules/criteria/infrastructure/repositories"
	hackathondb "github.com/Black-And-White-Club/hackathon-judging/app/modules/hackathon/infrastructure/repositories"
	judgingdb "github.com/Black-And-White-Club/hackathon-judging/app/modules/judging/infrastructure/repositories"
	"github.com/Black-And-White-Club/hackathon-judging/app/observability/metrics"
	"github.com/Black-And-White-Club/hackathon-judging/app/shared/apperr"
	"github.com/Black-And-White-Club/hackathon-judging/app/shared/operation"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// JudgingService implements the Service interface.
type JudgingService struct {
	repo          judgingdb.Repository
	criteriaRepo  criteriadb.Repository
	hackathonRepo hackathondb.Repository
	publisher     eventbus.Publisher
	logger        *slog.Logger
	tel           operation.Telemetry
	db            *bun.DB
	now           func() time.Time
}

// NewJudgingService creates a new JudgingService. publisher may be nil.
func NewJudgingService(
	repo judgingdb.Repository,
	criteriaRepo criteriadb.Repository,
	hackathonRepo hackathondb.Repository,
	publisher eventbus.Publisher,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *JudgingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &JudgingService{
		repo:          repo,
		criteriaRepo:  criteriaRepo,
		hackathonRepo: hackathonRepo,
		publisher:     publisher,
		logger:        logger,
		tel: operation.Telemetry{
			Service: "JudgingService",
			Logger:  logger,
			Metrics: metrics,
			Tracer:  tracer,
		},
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *JudgingService) requireHackathon(ctx context.Context, db bun.IDB, hackathonID uuid.UUID) error {
	if _, err := s.hackathonRepo.GetHackathon(ctx, db, hackathonID); err != nil {
		if errors.Is(err, hackathondb.ErrNotFound) {
			return apperr.NotFound("hackathon %s not found", hackathonID)
		}
		return fmt.Errorf("failed to get hackathon: %w", err)
	}
	return nil
}

func (s *JudgingService) getAssignment(ctx context.Context, db bun.IDB, assignmentID uuid.UUID) (*judgingdb.Assignment, error) {
	a, err := s.repo.GetAssignment(ctx, db, assignmentID)
	if err != nil {
		if errors.Is(err, judgingdb.ErrNotFound) {
			return nil, apperr.NotFound("assignment %s not found", assignmentID)
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return a, nil
}

// buildDTOs attaches project and team names plus the current scores to each
// assignment. Scores follow criterion display order; scores for criteria that
// no longer exist come last.
func (s *JudgingService) buildDTOs(ctx context.Context, db bun.IDB, assignments []judgingdb.Assignment, criteria []criteriadb.Criterion) ([]AssignmentDTO, error) {
	if len(assignments) == 0 {
		return []AssignmentDTO{}, nil
	}

	assignmentIDs := make([]uuid.UUID, 0, len(assignments))
	projectIDs := make([]uuid.UUID, 0, len(assignments))
	for _, a := range assignments {
		assignmentIDs = append(assignmentIDs, a.ID)
		projectIDs = append(projectIDs, a.ProjectID)
	}

	scores, err := s.repo.ListScoresForAssignments(ctx, db, assignmentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	projects, err := s.hackathonRepo.GetProjects(ctx, db, projectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	projectByID := make(map[uuid.UUID]hackathondb.Project, len(projects))
	teamIDs := make([]uuid.UUID, 0, len(projects))
	for _, p := range projects {
		projectByID[p.ID] = p
		teamIDs = append(teamIDs, p.TeamID)
	}
	teams, err := s.hackathonRepo.GetTeams(ctx, db, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}
	teamNames := make(map[uuid.UUID]string, len(teams))
	for _, t := range teams {
		teamNames[t.ID] = t.Name
	}

	order := make(map[uuid.UUID]int, len(criteria))
	for i, c := range criteria {
		order[c.ID] = i
	}
	scoresByAssignment := make(map[uuid.UUID][]ScoreDTO, len(assignments))
	for _, sc := range scores {
		scoresByAssignment[sc.AssignmentID] = append(scoresByAssignment[sc.AssignmentID], ScoreDTO{
			CriterionID: sc.CriterionID,
			Score:       sc.Value,
			Feedback:    sc.Feedback,
			UpdatedAt:   sc.UpdatedAt,
		})
	}

	out := make([]AssignmentDTO, 0, len(assignments))
	for _, a := range assignments {
		project := projectByID[a.ProjectID]
		list := scoresByAssignment[a.ID]
		if list == nil {
			list = []ScoreDTO{}
		}
		sort.SliceStable(list, func(i, j int) bool {
			return position(order, list[i].CriterionID) < position(order, list[j].CriterionID)
		})
		out = append(out, AssignmentDTO{
			ID:          a.ID,
			HackathonID: a.HackathonID,
			JudgeID:     a.JudgeID,
			ProjectID:   a.ProjectID,
			ProjectName: project.Name,
			TeamID:      project.TeamID,
			TeamName:    teamNames[project.TeamID],
			CompletedAt: a.CompletedAt,
			Scores:      list,
		})
	}
	return out, nil
}

func position(order map[uuid.UUID]int, id uuid.UUID) int {
	if i, ok := order[id]; ok {
		return i
	}
	return len(order)
}

// publish logs and swallows failures; events are sent after the write committed.
func (s *JudgingService) publish(ctx context.Context, topic string, payload any) {
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
