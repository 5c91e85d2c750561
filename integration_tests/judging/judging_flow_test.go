//go:build integration

package judging_test

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/Black-And-White-Club/hackathon-judging/app/events"
	hackathondomain "github.com/Black-And-White-Club/hackathon-judging/app/modules/hackathon/domain"
	hackathondb "github.com/Black-And-White-Club/hackathon-judging/app/modules/hackathon/infrastructure/repositories"
	judgingservice "github.com/Black-And-White-Club/hackathon-judging/app/modules/judging/application"
	"github.com/Black-And-White-Club/hackathon-judging/app/shared/apperr"
	"github.com/Black-And-White-Club/hackathon-judging/db/seed"
	"github.com/Black-And-White-Club/hackathon-judging/integration_tests/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJudgingFlow(t *testing.T) {
	env := testutils.NewTestEnvironment(t)
	ctx := env.Ctx
	a := env.App

	opts := seed.DefaultOptions()
	opts.Judges = 1
	opts.Participants = 2
	opts.Teams = 3
	opts.Criteria = 2
	res, err := seed.NewGenerator(7).Seed(ctx, a.DB, opts)
	require.NoError(t, err)

	added, err := a.EventBus.Subscribe(ctx, events.JudgeAddedV1)
	require.NoError(t, err)

	newJudge := res.ParticipantIDs[0]

	t.Run("promotion schedules materialization on the queue", func(t *testing.T) {
		judge, err := a.Modules.Roster.Service.AddJudge(ctx, res.HackathonID, newJudge, res.OrganizerID)
		require.NoError(t, err)
		assert.Equal(t, len(res.ProjectIDs), judge.TotalProjects)

		testutils.Eventually(t, 20*time.Second, func() (bool, error) {
			rows, err := a.Modules.Judging.Repo.ListAssignmentsForJudge(ctx, nil, res.HackathonID, newJudge)
			return len(rows) == len(res.ProjectIDs), err
		})

		select {
		case msg := <-added:
			var payload events.JudgeRosterChangedPayloadV1
			require.NoError(t, json.Unmarshal(msg.Payload, &payload))
			assert.Equal(t, newJudge, payload.UserID)
			assert.Equal(t, string(hackathondomain.RoleParticipant), payload.PreviousRole)
			msg.Ack()
		case <-time.After(5 * time.Second):
			t.Fatal("judge added event not received")
		}

		_, err = a.Modules.Roster.Service.AddJudge(ctx, res.HackathonID, newJudge, res.OrganizerID)
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("scoring completes assignments and ranks projects", func(t *testing.T) {
		assignments, err := a.Modules.Judging.Service.ListAssignmentsForJudge(ctx, res.HackathonID, newJudge)
		require.NoError(t, err)
		require.Len(t, assignments, len(res.ProjectIDs))

		for i, asg := range assignments {
			entries := make([]judgingservice.ScoreEntry, 0, len(res.CriterionIDs))
			for _, criterionID := range res.CriterionIDs {
				entries = append(entries, judgingservice.ScoreEntry{CriterionID: criterionID, Score: i + 1})
			}
			updated, err := a.Modules.Judging.Service.SubmitScores(ctx, asg.ID, entries, newJudge)
			require.NoError(t, err)
			assert.NotNil(t, updated.CompletedAt)
		}

		// The last assignment scored highest on every criterion.
		best := assignments[len(assignments)-1].ProjectID

		_, err = a.Modules.Leaderboard.Service.GetLeaderboard(ctx, res.HackathonID, newJudge)
		assert.ErrorIs(t, err, apperr.ErrForbidden)

		lb, err := a.Modules.Leaderboard.Service.GetLeaderboard(ctx, res.HackathonID, res.OrganizerID)
		require.NoError(t, err)
		require.Len(t, lb.Entries, len(res.ProjectIDs))
		assert.Equal(t, best, lb.Entries[0].ProjectID)
		assert.InDelta(t, float64(len(assignments)), lb.Entries[0].Total, 1e-9)

		judges, err := a.Modules.Roster.Service.ListJudges(ctx, res.HackathonID, res.OrganizerID)
		require.NoError(t, err)
		for _, j := range judges {
			if j.UserID == newJudge {
				assert.Equal(t, len(res.ProjectIDs), j.ProjectsScored)
			}
		}
	})

	t.Run("concurrent batches on disjoint criteria complete the assignment", func(t *testing.T) {
		other := res.JudgeIDs[0]
		assignments, err := a.Modules.Judging.Service.ListAssignmentsForJudge(ctx, res.HackathonID, other)
		require.NoError(t, err)
		require.NotEmpty(t, assignments)
		require.Len(t, res.CriterionIDs, 2)
		target := assignments[0].ID

		var wg sync.WaitGroup
		errs := make([]error, len(res.CriterionIDs))
		for i, criterionID := range res.CriterionIDs {
			wg.Add(1)
			go func(i int, criterionID uuid.UUID) {
				defer wg.Done()
				_, errs[i] = a.Modules.Judging.Service.SubmitScores(ctx, target,
					[]judgingservice.ScoreEntry{{CriterionID: criterionID, Score: 1}}, other)
			}(i, criterionID)
		}
		wg.Wait()
		for _, err := range errs {
			require.NoError(t, err)
		}

		got, err := a.Modules.Judging.Service.GetAssignment(ctx, target, other)
		require.NoError(t, err)
		assert.Len(t, got.Scores, 2)
		assert.NotNil(t, got.CompletedAt)
	})

	t.Run("demotion keeps scores", func(t *testing.T) {
		require.NoError(t, a.Modules.Roster.Service.RemoveJudge(ctx, res.HackathonID, newJudge, res.OrganizerID))

		role, err := a.HackathonRepo.GetRole(ctx, nil, res.HackathonID, newJudge)
		require.NoError(t, err)
		assert.Equal(t, hackathondomain.RoleParticipant, role.Role)

		changes, err := a.HackathonRepo.ListRoleChanges(ctx, nil, res.HackathonID)
		require.NoError(t, err)
		var forJudge []hackathondb.RoleChange
		for _, c := range changes {
			if c.UserID == newJudge {
				forJudge = append(forJudge, c)
			}
		}
		require.Len(t, forJudge, 2)

		lb, err := a.Modules.Leaderboard.Service.GetLeaderboard(ctx, res.HackathonID, res.OrganizerID)
		require.NoError(t, err)
		assert.NotZero(t, lb.Entries[0].Total)
	})
}
