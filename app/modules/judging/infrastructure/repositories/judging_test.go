package judgingdb_test

import (
	"context"
	"testing"
	"time"

	judgingdb "github.com/Black-And-White-Club/hackathon-judging/app/modules/judging/infrastructure/repositories"
	"github.com/Black-And-White-Club/hackathon-judging/db/bundb/bundbtest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func assignmentsFor(hackathonID, judgeID uuid.UUID, projectIDs ...uuid.UUID) []judgingdb.Assignment {
	out := make([]judgingdb.Assignment, 0, len(projectIDs))
	for _, p := range projectIDs {
		out = append(out, judgingdb.Assignment{HackathonID: hackathonID, JudgeID: judgeID, ProjectID: p})
	}
	return out
}

func TestInsertMissingAssignments_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := judgingdb.NewRepository(bundbtest.NewSQLiteDB(t))
	hackathonID, judgeID := uuid.New(), uuid.New()
	p1, p2, p3 := uuid.New(), uuid.New(), uuid.New()

	created, err := repo.InsertMissingAssignments(ctx, nil, assignmentsFor(hackathonID, judgeID, p1, p2))
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	first, err := repo.ListAssignmentsForJudge(ctx, nil, hackathonID, judgeID)
	require.NoError(t, err)
	require.Len(t, first, 2)

	created, err = repo.InsertMissingAssignments(ctx, nil, assignmentsFor(hackathonID, judgeID, p1, p2, p3))
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	second, err := repo.ListAssignmentsForJudge(ctx, nil, hackathonID, judgeID)
	require.NoError(t, err)
	require.Len(t, second, 3)

	ids := map[uuid.UUID]bool{}
	for _, a := range second {
		ids[a.ID] = true
	}
	for _, a := range first {
		assert.True(t, ids[a.ID], "existing assignment ids are preserved")
	}

	created, err = repo.InsertMissingAssignments(ctx, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, created)

	other, err := repo.ListAssignmentsForJudge(ctx, nil, hackathonID, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestScores_UpsertOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := judgingdb.NewRepository(bundbtest.NewSQLiteDB(t))
	hackathonID, judgeID, projectID := uuid.New(), uuid.New(), uuid.New()

	_, err := repo.InsertMissingAssignments(ctx, nil, assignmentsFor(hackathonID, judgeID, projectID))
	require.NoError(t, err)
	list, err := repo.ListAssignmentsForJudge(ctx, nil, hackathonID, judgeID)
	require.NoError(t, err)
	a := list[0]

	c1, c2 := uuid.New(), uuid.New()
	note := "solid"
	require.NoError(t, repo.UpsertScores(ctx, nil, []judgingdb.Score{
		{AssignmentID: a.ID, CriterionID: c1, Value: 4, Feedback: &note},
		{AssignmentID: a.ID, CriterionID: c2, Value: 9},
	}))
	require.NoError(t, repo.UpsertScores(ctx, nil, []judgingdb.Score{
		{AssignmentID: a.ID, CriterionID: c1, Value: 6},
	}))

	scores, err := repo.ListScores(ctx, nil, a.ID)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	byCriterion := map[uuid.UUID]judgingdb.Score{}
	for _, s := range scores {
		byCriterion[s.CriterionID] = s
	}
	assert.Equal(t, 6, byCriterion[c1].Value)
	assert.Nil(t, byCriterion[c1].Feedback, "feedback is replaced along with the value")
	assert.Equal(t, 9, byCriterion[c2].Value)

	projectScores, err := repo.ListProjectScores(ctx, nil, hackathonID)
	require.NoError(t, err)
	require.Len(t, projectScores, 2)
	for _, ps := range projectScores {
		assert.Equal(t, projectID, ps.ProjectID)
		assert.Equal(t, judgeID, ps.JudgeID)
	}

	empty, err := repo.ListProjectScores(ctx, nil, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCompletion(t *testing.T) {
	ctx := context.Background()
	repo := judgingdb.NewRepository(bundbtest.NewSQLiteDB(t))
	hackathonID := uuid.New()
	judgeA, judgeB := uuid.New(), uuid.New()

	_, err := repo.InsertMissingAssignments(ctx, nil, assignmentsFor(hackathonID, judgeA, uuid.New(), uuid.New()))
	require.NoError(t, err)
	_, err = repo.InsertMissingAssignments(ctx, nil, assignmentsFor(hackathonID, judgeB, uuid.New()))
	require.NoError(t, err)

	listA, err := repo.ListAssignmentsForJudge(ctx, nil, hackathonID, judgeA)
	require.NoError(t, err)

	done := time.Date(2026, 10, 2, 9, 30, 0, 0, time.UTC)
	require.NoError(t, repo.SetCompletedAt(ctx, nil, listA[0].ID, &done))
	require.NoError(t, repo.SetCompletedAt(ctx, nil, listA[1].ID, &done))

	got, err := repo.GetAssignment(ctx, nil, listA[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, done.Equal(*got.CompletedAt))

	counts, err := repo.CountCompletedByJudge(ctx, nil, hackathonID)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[judgeA])
	_, ok := counts[judgeB]
	assert.False(t, ok)

	require.NoError(t, repo.SetCompletedAt(ctx, nil, listA[1].ID, nil))
	counts, err = repo.CountCompletedByJudge(ctx, nil, hackathonID)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[judgeA])

	_, err = repo.GetAssignment(ctx, nil, uuid.New())
	assert.ErrorIs(t, err, judgingdb.ErrNotFound)
	assert.ErrorIs(t, repo.SetCompletedAt(ctx, nil, uuid.New(), nil), judgingdb.ErrNotFound)
}

func TestGetAssignmentForUpdate(t *testing.T) {
	ctx := context.Background()
	db := bundbtest.NewSQLiteDB(t)
	repo := judgingdb.NewRepository(db)
	hackathonID, judgeID := uuid.New(), uuid.New()

	_, err := repo.InsertMissingAssignments(ctx, nil, assignmentsFor(hackathonID, judgeID, uuid.New()))
	require.NoError(t, err)
	list, err := repo.ListAssignmentsForJudge(ctx, nil, hackathonID, judgeID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	err = db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		got, err := repo.GetAssignmentForUpdate(ctx, tx, list[0].ID)
		require.NoError(t, err)
		assert.Equal(t, list[0].ID, got.ID)
		assert.Equal(t, judgeID, got.JudgeID)

		_, err = repo.GetAssignmentForUpdate(ctx, tx, uuid.New())
		assert.ErrorIs(t, err, judgingdb.ErrNotFound)
		return nil
	})
	require.NoError(t, err)
}
