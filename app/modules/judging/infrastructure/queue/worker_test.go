package judgingqueue

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnsurer struct {
	EnsureAssignmentsFunc func(ctx context.Context, hackathonID, judgeID uuid.UUID) (int, error)
	calls                 int
}

func (f *fakeEnsurer) EnsureAssignments(ctx context.Context, hackathonID, judgeID uuid.UUID) (int, error) {
	f.calls++
	if f.EnsureAssignmentsFunc != nil {
		return f.EnsureAssignmentsFunc(ctx, hackathonID, judgeID)
	}
	return 0, nil
}

func TestMaterializeAssignmentsJobKind(t *testing.T) {
	assert.Equal(t, "materialize_assignments", MaterializeAssignmentsJob{}.Kind())
}

func TestMaterializeAssignmentsWorker_Work(t *testing.T) {
	hackathonID, judgeID := uuid.New(), uuid.New()

	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{name: "success"},
		{name: "ensurer failure is retried by river", err: errors.New("db down"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ensurer := &fakeEnsurer{
				EnsureAssignmentsFunc: func(ctx context.Context, h, j uuid.UUID) (int, error) {
					assert.Equal(t, hackathonID, h)
					assert.Equal(t, judgeID, j)
					return 3, tt.err
				},
			}
			w := NewMaterializeAssignmentsWorker(ensurer, slog.Default())
			job := &river.Job[MaterializeAssignmentsJob]{
				JobRow: &rivertype.JobRow{ID: 42},
				Args:   MaterializeAssignmentsJob{HackathonID: hackathonID, JudgeID: judgeID},
			}

			err := w.Work(context.Background(), job)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, 1, ensurer.calls)
		})
	}
}

func TestInlineScheduler(t *testing.T) {
	ensurer := &fakeEnsurer{}
	s := NewInlineScheduler(ensurer, slog.Default())
	require.NoError(t, s.ScheduleMaterialization(context.Background(), uuid.New(), uuid.New()))
	assert.Equal(t, 1, ensurer.calls)

	ensurer.EnsureAssignmentsFunc = func(ctx context.Context, h, j uuid.UUID) (int, error) {
		return 0, errors.New("boom")
	}
	assert.Error(t, s.ScheduleMaterialization(context.Background(), uuid.New(), uuid.New()))
}

func TestMaterializeUniqueStates(t *testing.T) {
	assert.NotContains(t, materializeUniqueStates, rivertype.JobStateCompleted)
	assert.NotContains(t, materializeUniqueStates, rivertype.JobStateCancelled)
	assert.NotContains(t, materializeUniqueStates, rivertype.JobStateDiscarded)
	for _, required := range []rivertype.JobState{
		rivertype.JobStateAvailable,
		rivertype.JobStatePending,
		rivertype.JobStateRunning,
		rivertype.JobStateScheduled,
	} {
		assert.Contains(t, materializeUniqueStates, required)
	}
}
