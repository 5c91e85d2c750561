package leaderboardservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	criteriadb "github.com/Black-And-White-Club/hackathon-judging/app/modules/criteria/infrastructure/repositories"
	hackathondomain "github.com/Black-And-White-Club/hackathon-judging/app/modules/hackathon/domain"
	hackathondb "github.com/Black-And-White-Club/hackathon-judging/app/modules/hackathon/infrastructure/repositories"
	judgingdb "github.com/Black-And-White-Club/hackathon-judging/app/modules/judging/infrastructure/repositories"
	leaderboarddomain "github.com/Black-And-White-Club/hackathon-judging/app/modules/leaderboard/domain"
	"github.com/Black-And-White-Club/hackathon-judging/app/observability/metrics"
	"github.com/Black-And-White-Club/hackathon-judging/app/shared/apperr"
	"github.com/Black-And-White-Club/hackathon-judging/app/shared/operation"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// LeaderboardService implements the Service interface.
type LeaderboardService struct {
	judgingRepo   judgingdb.Repository
	criteriaRepo  criteriadb.Repository
	hackathonRepo hackathondb.Repository
	logger        *slog.Logger
	tel           operation.Telemetry
	palette       ChartPalette
	now           func() time.Time
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(
	judgingRepo judgingdb.Repository,
	criteriaRepo criteriadb.Repository,
	hackathonRepo hackathondb.Repository,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
) *LeaderboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeaderboardService{
		judgingRepo:   judgingRepo,
		criteriaRepo:  criteriaRepo,
		hackathonRepo: hackathonRepo,
		logger:        logger,
		tel: operation.Telemetry{
			Service: "LeaderboardService",
			Logger:  logger,
			Metrics: metrics,
			Tracer:  tracer,
		},
		palette: DefaultPalette,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *LeaderboardService) GetLeaderboard(ctx context.Context, hackathonID, callerID uuid.UUID) (*LeaderboardDTO, error) {
	return operation.Run(ctx, s.tel, "GetLeaderboard", hackathonID.String(), func(ctx context.Context) (*LeaderboardDTO, error) {
		return s.compute(ctx, hackathonID, callerID)
	})
}

// compute runs the visibility gate and the aggregation. Reads are not wrapped
// in a transaction; read-committed is sufficient.
func (s *LeaderboardService) compute(ctx context.Context, hackathonID, callerID uuid.UUID) (*LeaderboardDTO, error) {
	hackathon, err := s.hackathonRepo.GetHackathon(ctx, nil, hackathonID)
	if err != nil {
		if errors.Is(err, hackathondb.ErrNotFound) {
			return nil, apperr.NotFound("hackathon %s not found", hackathonID)
		}
		return nil, fmt.Errorf("failed to get hackathon: %w", err)
	}

	isOrganizer, err := s.hackathonRepo.IsOrganizer(ctx, nil, hackathonID, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check organizer role: %w", err)
	}
	if !isOrganizer && hackathon.Status != hackathondomain.StatusCompleted {
		return nil, apperr.Forbidden("results only available after completion")
	}

	dto := &LeaderboardDTO{
		HackathonID: hackathonID,
		GeneratedAt: s.now(),
		Criteria:    []CriterionColumn{},
		Entries:     []leaderboarddomain.Standing{},
	}

	criteria, err := s.criteriaRepo.ListByHackathon(ctx, nil, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list criteria: %w", err)
	}
	if len(criteria) == 0 {
		return dto, nil
	}
	projects, err := s.hackathonRepo.ListSubmittedProjects(ctx, nil, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submitted projects: %w", err)
	}
	if len(projects) == 0 {
		return dto, nil
	}

	teamIDs := make([]uuid.UUID, 0, len(projects))
	for _, p := range projects {
		teamIDs = append(teamIDs, p.TeamID)
	}
	teams, err := s.hackathonRepo.GetTeams(ctx, nil, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}
	teamNames := make(map[uuid.UUID]string, len(teams))
	for _, t := range teams {
		teamNames[t.ID] = t.Name
	}

	rows, err := s.judgingRepo.ListProjectScores(ctx, nil, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scores: %w", err)
	}

	domainCriteria := make([]leaderboarddomain.Criterion, 0, len(criteria))
	for _, c := range criteria {
		domainCriteria = append(domainCriteria, leaderboarddomain.Criterion{ID: c.ID, Name: c.Name, Weight: c.Weight})
		dto.Criteria = append(dto.Criteria, CriterionColumn{ID: c.ID, Name: c.Name, Weight: c.Weight})
	}
	domainProjects := make([]leaderboarddomain.Project, 0, len(projects))
	for _, p := range projects {
		domainProjects = append(domainProjects, leaderboarddomain.Project{
			ID:       p.ID,
			Name:     p.Name,
			TeamID:   p.TeamID,
			TeamName: teamNames[p.TeamID],
		})
	}
	domainScores := make([]leaderboarddomain.Score, 0, len(rows))
	for _, r := range rows {
		domainScores = append(domainScores, leaderboarddomain.Score{ProjectID: r.ProjectID, CriterionID: r.CriterionID, Value: r.Value})
	}

	dto.Entries = leaderboarddomain.ComputeStandings(domainCriteria, domainProjects, domainScores)
	return dto, nil
}

func (s *LeaderboardService) ExportLeaderboardXLSX(ctx context.Context, hackathonID, callerID uuid.UUID) ([]byte, error) {
	return operation.Run(ctx, s.tel, "ExportLeaderboardXLSX", hackathonID.String(), func(ctx context.Context) ([]byte, error) {
		lb, err := s.compute(ctx, hackathonID, callerID)
		if err != nil {
			return nil, err
		}
		return GenerateLeaderboardWorkbook(lb)
	})
}

func (s *LeaderboardService) RenderLeaderboardChart(ctx context.Context, hackathonID, callerID uuid.UUID) ([]byte, error) {
	return operation.Run(ctx, s.tel, "RenderLeaderboardChart", hackathonID.String(), func(ctx context.Context) ([]byte, error) {
		lb, err := s.compute(ctx, hackathonID, callerID)
		if err != nil {
			return nil, err
		}
		return GenerateLeaderboardChart(lb.Entries, s.palette)
	})
}
