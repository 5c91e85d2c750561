// Package seed fills a database with a plausible hackathon for local runs and
// integration tests.
package seed

import (
	"context"
	"fmt"
	"time"

	criteriadb "github.com/Black-And-White-Club/hackathon-judging/app/modules/criteria/infrastructure/repositories"
	hackathondomain "github.com/Black-And-White-Club/hackathon-judging/app/modules/hackathon/domain"
	hackathondb "github.com/Black-And-White-Club/hackathon-judging/app/modules/hackathon/infrastructure/repositories"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var criterionNames = []string{"Impact", "Technical Depth", "Design", "Presentation", "Originality", "Completeness"}

// Options sizes the generated hackathon.
type Options struct {
	Teams           int
	ProjectsPerTeam int
	Judges          int
	Participants    int
	Criteria        int
	Status          hackathondomain.Status
}

// DefaultOptions returns a small hackathon in the judging phase.
func DefaultOptions() Options {
	return Options{
		Teams:           4,
		ProjectsPerTeam: 1,
		Judges:          3,
		Participants:    8,
		Criteria:        3,
		Status:          hackathondomain.StatusJudging,
	}
}

// Result holds the ids of everything that was created.
type Result struct {
	HackathonID    uuid.UUID
	OrganizerID    uuid.UUID
	JudgeIDs       []uuid.UUID
	ParticipantIDs []uuid.UUID
	ProjectIDs     []uuid.UUID
	CriterionIDs   []uuid.UUID
}

// Generator produces deterministic data for a given seed.
type Generator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewGenerator creates a generator. Without a seed the current time is used.
func NewGenerator(seed ...int64) *Generator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}
	return &Generator{faker: gofakeit.New(uint64(s)), seed: s}
}

// SeedValue returns the seed the generator was created with.
func (g *Generator) SeedValue() int64 { return g.seed }

// Seed inserts one hackathon with its organizer, judges, participants, teams,
// submitted projects and criteria in a single transaction.
func (g *Generator) Seed(ctx context.Context, db *bun.DB, opts Options) (*Result, error) {
	if opts.Status == "" {
		opts.Status = hackathondomain.StatusJudging
	}
	if opts.Criteria > len(criterionNames) {
		return nil, fmt.Errorf("at most %d criteria can be generated, got %d", len(criterionNames), opts.Criteria)
	}

	hackathons := hackathondb.NewRepository(db)
	criteria := criteriadb.NewRepository(db)
	res := &Result{}

	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		h := &hackathondb.Hackathon{
			Name:   fmt.Sprintf("%s %s Hack", g.faker.HackerAdjective(), g.faker.HackerNoun()),
			Status: opts.Status,
		}
		if err := hackathons.CreateHackathon(ctx, tx, h); err != nil {
			return err
		}
		res.HackathonID = h.ID

		organizer, err := g.createMember(ctx, tx, hackathons, h.ID, hackathondomain.RoleOrganizer)
		if err != nil {
			return err
		}
		res.OrganizerID = organizer

		for range opts.Judges {
			id, err := g.createMember(ctx, tx, hackathons, h.ID, hackathondomain.RoleJudge)
			if err != nil {
				return err
			}
			res.JudgeIDs = append(res.JudgeIDs, id)
		}
		for range opts.Participants {
			id, err := g.createMember(ctx, tx, hackathons, h.ID, hackathondomain.RoleParticipant)
			if err != nil {
				return err
			}
			res.ParticipantIDs = append(res.ParticipantIDs, id)
		}

		for range opts.Teams {
			team := &hackathondb.Team{HackathonID: h.ID, Name: g.faker.Company()}
			if err := hackathons.CreateTeam(ctx, tx, team); err != nil {
				return err
			}
			for range opts.ProjectsPerTeam {
				p := &hackathondb.Project{
					HackathonID: h.ID,
					TeamID:      team.ID,
					Name:        g.faker.AppName(),
					Status:      hackathondomain.ProjectStatusSubmitted,
				}
				if err := hackathons.CreateProject(ctx, tx, p); err != nil {
					return err
				}
				res.ProjectIDs = append(res.ProjectIDs, p.ID)
			}
		}

		for i, name := range criterionNames[:opts.Criteria] {
			description := g.faker.HackerPhrase()
			c := &criteriadb.Criterion{
				HackathonID:  h.ID,
				Name:         name,
				Description:  &description,
				MaxScore:     10,
				Weight:       float64(g.faker.Number(1, 3)),
				DisplayOrder: i,
			}
			if err := criteria.Create(ctx, tx, c); err != nil {
				return err
			}
			res.CriterionIDs = append(res.CriterionIDs, c.ID)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to seed hackathon: %w", err)
	}
	return res, nil
}

func (g *Generator) createMember(ctx context.Context, db bun.IDB, repo hackathondb.Repository, hackathonID uuid.UUID, role hackathondomain.Role) (uuid.UUID, error) {
	u := &hackathondb.User{DisplayName: g.faker.Name(), Email: g.faker.Email()}
	if err := repo.CreateUser(ctx, db, u); err != nil {
		return uuid.Nil, err
	}
	if err := repo.UpsertRole(ctx, db, &hackathondb.RoleAssignment{
		HackathonID: hackathonID,
		UserID:      u.ID,
		Role:        role,
	}); err != nil {
		return uuid.Nil, err
	}
	return u.ID, nil
}
