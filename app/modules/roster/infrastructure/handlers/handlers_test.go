package rosterhandlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	rosterservice "github.com/Black-And-White-Club/hackathon-judging/app/modules/roster/application"
	"github.com/Black-And-White-Club/hackathon-judging/app/shared/apperr"
	"github.com/Black-And-White-Club/hackathon-judging/app/shared/httpx"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newRouter(svc rosterservice.Service, actorID uuid.UUID) http.Handler {
	h := NewRosterHandlers(svc, slog.Default(), noop.NewTracerProvider().Tracer("test"))
	r := chi.NewRouter()
	if actorID != uuid.Nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(httpx.WithActor(req.Context(), actorID)))
			})
		})
	}
	r.Get("/{hackathonID}/judges", h.HandleListJudges)
	r.Post("/{hackathonID}/judges", h.HandleAddJudge)
	r.Delete("/{hackathonID}/judges/{userID}", h.HandleRemoveJudge)
	return r
}

func TestHandleListJudges(t *testing.T) {
	hackathonID, actorID, judgeID := uuid.New(), uuid.New(), uuid.New()
	svc := &FakeService{
		ListJudgesFunc: func(ctx context.Context, id, caller uuid.UUID) ([]rosterservice.JudgeDTO, error) {
			assert.Equal(t, hackathonID, id)
			assert.Equal(t, actorID, caller)
			return []rosterservice.JudgeDTO{{UserID: judgeID, DisplayName: "jo", ProjectsScored: 2, TotalProjects: 5}}, nil
		},
	}

	rec := httptest.NewRecorder()
	newRouter(svc, actorID).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/"+hackathonID.String()+"/judges", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []rosterservice.JudgeDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, judgeID, got[0].UserID)
	assert.Equal(t, 2, got[0].ProjectsScored)
}

func TestHandleAddJudge(t *testing.T) {
	hackathonID, actorID, targetID := uuid.New(), uuid.New(), uuid.New()
	path := "/" + hackathonID.String() + "/judges"

	tests := []struct {
		name       string
		actorID    uuid.UUID
		path       string
		body       string
		svcErr     error
		wantStatus int
	}{
		{"created", actorID, path, `{"user_id":"` + targetID.String() + `"}`, nil, http.StatusCreated},
		{"no actor", uuid.Nil, path, `{"user_id":"` + targetID.String() + `"}`, nil, http.StatusUnauthorized},
		{"bad hackathon id", actorID, "/nope/judges", `{"user_id":"` + targetID.String() + `"}`, nil, http.StatusBadRequest},
		{"missing user id", actorID, path, `{}`, nil, http.StatusBadRequest},
		{"malformed user id", actorID, path, `{"user_id":"abc"}`, nil, http.StatusBadRequest},
		{"already a judge", actorID, path, `{"user_id":"` + targetID.String() + `"}`, apperr.Conflict("already a judge"), http.StatusConflict},
		{"not organizer", actorID, path, `{"user_id":"` + targetID.String() + `"}`, apperr.Forbidden("only organizers"), http.StatusForbidden},
		{"unknown user", actorID, path, `{"user_id":"` + targetID.String() + `"}`, apperr.NotFound("user"), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &FakeService{
				AddJudgeFunc: func(ctx context.Context, id, target, caller uuid.UUID) (*rosterservice.JudgeDTO, error) {
					assert.Equal(t, hackathonID, id)
					assert.Equal(t, targetID, target)
					if tt.svcErr != nil {
						return nil, tt.svcErr
					}
					return &rosterservice.JudgeDTO{UserID: target, TotalProjects: 3}, nil
				},
			}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			newRouter(svc, tt.actorID).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusCreated {
				var dto rosterservice.JudgeDTO
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
				assert.Equal(t, targetID, dto.UserID)
			}
		})
	}
}

func TestHandleRemoveJudge(t *testing.T) {
	hackathonID, actorID, targetID := uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name       string
		path       string
		svcErr     error
		wantStatus int
	}{
		{"removed", "/" + hackathonID.String() + "/judges/" + targetID.String(), nil, http.StatusNoContent},
		{"bad user id", "/" + hackathonID.String() + "/judges/nope", nil, http.StatusBadRequest},
		{"not a judge", "/" + hackathonID.String() + "/judges/" + targetID.String(), apperr.Validation("not a judge"), http.StatusUnprocessableEntity},
		{"no role", "/" + hackathonID.String() + "/judges/" + targetID.String(), apperr.NotFound("no role"), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			svc := &FakeService{
				RemoveJudgeFunc: func(ctx context.Context, id, target, caller uuid.UUID) error {
					called = true
					assert.Equal(t, targetID, target)
					assert.Equal(t, actorID, caller)
					return tt.svcErr
				},
			}

			rec := httptest.NewRecorder()
			newRouter(svc, actorID).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus != http.StatusBadRequest, called)
		})
	}
}
