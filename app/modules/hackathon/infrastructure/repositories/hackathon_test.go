package hackathondb_test

import (
	"context"
	"testing"

	hackathondomain "github.com/Black-And-White-Club/hackathon-judging/app/modules/hackathon/domain"
	hackathondb "github.com/Black-And-White-Club/hackathon-judging/app/modules/hackathon/infrastructure/repositories"
	"github.com/Black-And-White-Club/hackathon-judging/db/bundb/bundbtest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_HackathonAndProjects(t *testing.T) {
	ctx := context.Background()
	db := bundbtest.NewSQLiteDB(t)
	repo := hackathondb.NewRepository(db)

	_, err := repo.GetHackathon(ctx, nil, uuid.New())
	assert.ErrorIs(t, err, hackathondb.ErrNotFound)

	h := &hackathondb.Hackathon{Name: "Autumn Hack", Status: hackathondomain.StatusJudging}
	require.NoError(t, repo.CreateHackathon(ctx, nil, h))

	got, err := repo.GetHackathon(ctx, nil, h.ID)
	require.NoError(t, err)
	assert.Equal(t, "Autumn Hack", got.Name)
	assert.Equal(t, hackathondomain.StatusJudging, got.Status)

	require.NoError(t, repo.UpdateHackathonStatus(ctx, nil, h.ID, hackathondomain.StatusCompleted))
	got, err = repo.GetHackathon(ctx, nil, h.ID)
	require.NoError(t, err)
	assert.Equal(t, hackathondomain.StatusCompleted, got.Status)
	assert.ErrorIs(t, repo.UpdateHackathonStatus(ctx, nil, uuid.New(), hackathondomain.StatusCompleted), hackathondb.ErrNotFound)

	team := &hackathondb.Team{HackathonID: h.ID, Name: "Rustaceans"}
	require.NoError(t, repo.CreateTeam(ctx, nil, team))

	mk := func(name string, status hackathondomain.ProjectStatus, archived bool) *hackathondb.Project {
		p := &hackathondb.Project{HackathonID: h.ID, TeamID: team.ID, Name: name, Status: status, Archived: archived}
		require.NoError(t, repo.CreateProject(ctx, nil, p))
		return p
	}
	zeta := mk("Zeta", hackathondomain.ProjectStatusSubmitted, false)
	alpha := mk("Alpha", hackathondomain.ProjectStatusSubmitted, false)
	mk("Draft", hackathondomain.ProjectStatusDraft, false)
	mk("Archived", hackathondomain.ProjectStatusSubmitted, true)
	mk("Withdrawn", hackathondomain.ProjectStatusWithdrawn, false)

	submitted, err := repo.ListSubmittedProjects(ctx, nil, h.ID)
	require.NoError(t, err)
	require.Len(t, submitted, 2)
	assert.Equal(t, alpha.ID, submitted[0].ID)
	assert.Equal(t, zeta.ID, submitted[1].ID)

	count, err := repo.CountSubmittedProjects(ctx, nil, h.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	teams, err := repo.GetTeams(ctx, nil, []uuid.UUID{team.ID})
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "Rustaceans", teams[0].Name)

	projects, err := repo.GetProjects(ctx, nil, []uuid.UUID{alpha.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Alpha", projects[0].Name)
}

func TestRepository_Roles(t *testing.T) {
	ctx := context.Background()
	db := bundbtest.NewSQLiteDB(t)
	repo := hackathondb.NewRepository(db)

	h := &hackathondb.Hackathon{Name: "Roles Hack", Status: hackathondomain.StatusInProgress}
	require.NoError(t, repo.CreateHackathon(ctx, nil, h))

	organizer := &hackathondb.User{DisplayName: "Olive", Email: "olive@example.com"}
	judge := &hackathondb.User{DisplayName: "Jules", Email: "jules@example.com"}
	require.NoError(t, repo.CreateUser(ctx, nil, organizer))
	require.NoError(t, repo.CreateUser(ctx, nil, judge))

	users, err := repo.GetUsers(ctx, nil, []uuid.UUID{organizer.ID, judge.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = repo.GetRole(ctx, nil, h.ID, judge.ID)
	assert.ErrorIs(t, err, hackathondb.ErrNotFound)

	require.NoError(t, repo.UpsertRole(ctx, nil, &hackathondb.RoleAssignment{HackathonID: h.ID, UserID: organizer.ID, Role: hackathondomain.RoleOrganizer}))
	require.NoError(t, repo.UpsertRole(ctx, nil, &hackathondb.RoleAssignment{HackathonID: h.ID, UserID: judge.ID, Role: hackathondomain.RoleParticipant}))

	isOrg, err := repo.IsOrganizer(ctx, nil, h.ID, organizer.ID)
	require.NoError(t, err)
	assert.True(t, isOrg)
	isOrg, err = repo.IsOrganizer(ctx, nil, h.ID, judge.ID)
	require.NoError(t, err)
	assert.False(t, isOrg)

	// Upsert overwrites in place rather than adding a second row.
	require.NoError(t, repo.UpsertRole(ctx, nil, &hackathondb.RoleAssignment{HackathonID: h.ID, UserID: judge.ID, Role: hackathondomain.RoleJudge}))
	role, err := repo.GetRole(ctx, nil, h.ID, judge.ID)
	require.NoError(t, err)
	assert.Equal(t, hackathondomain.RoleJudge, role.Role)

	judges, err := repo.ListUsersByRole(ctx, nil, h.ID, hackathondomain.RoleJudge)
	require.NoError(t, err)
	require.Len(t, judges, 1)
	assert.Equal(t, judge.ID, judges[0].ID)
	assert.Equal(t, "jules@example.com", judges[0].Email)

	prev := hackathondomain.RoleParticipant
	require.NoError(t, repo.AppendRoleChange(ctx, nil, &hackathondb.RoleChange{
		HackathonID:  h.ID,
		UserID:       judge.ID,
		PreviousRole: &prev,
		NewRole:      hackathondomain.RoleJudge,
		ChangedBy:    organizer.ID,
	}))
	changes, err := repo.ListRoleChanges(ctx, nil, h.ID)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	require.NotNil(t, changes[0].PreviousRole)
	assert.Equal(t, hackathondomain.RoleParticipant, *changes[0].PreviousRole)
	assert.Equal(t, organizer.ID, changes[0].ChangedBy)
}
