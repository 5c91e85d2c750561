package leaderboardhandlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	leaderboardservice "github.com/Black-And-White-Club/hackathon-judging/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Black-And-White-Club/hackathon-judging/app/modules/leaderboard/domain"
	"github.com/Black-And-White-Club/hackathon-judging/app/shared/apperr"
	"github.com/Black-And-White-Club/hackathon-judging/app/shared/httpx"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newRouter(svc leaderboardservice.Service, actorID uuid.UUID) http.Handler {
	h := NewLeaderboardHandlers(svc, slog.Default(), noop.NewTracerProvider().Tracer("test"))
	r := chi.NewRouter()
	if actorID != uuid.Nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(httpx.WithActor(req.Context(), actorID)))
			})
		})
	}
	r.Get("/{hackathonID}/leaderboard", h.HandleGetLeaderboard)
	r.Get("/{hackathonID}/leaderboard.xlsx", h.HandleExportXLSX)
	r.Get("/{hackathonID}/leaderboard.png", h.HandleChartPNG)
	return r
}

func TestHandleGetLeaderboard(t *testing.T) {
	hackathonID := uuid.New()
	callerID := uuid.New()

	tests := []struct {
		name       string
		actorID    uuid.UUID
		path       string
		svcErr     error
		wantStatus int
	}{
		{"visible", callerID, "/" + hackathonID.String() + "/leaderboard", nil, http.StatusOK},
		{"hidden until completion", callerID, "/" + hackathonID.String() + "/leaderboard", apperr.Forbidden("results only available after completion"), http.StatusForbidden},
		{"unknown hackathon", callerID, "/" + hackathonID.String() + "/leaderboard", apperr.NotFound("hackathon not found"), http.StatusNotFound},
		{"no actor", uuid.Nil, "/" + hackathonID.String() + "/leaderboard", nil, http.StatusUnauthorized},
		{"bad id", callerID, "/not-a-uuid/leaderboard", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &FakeService{
				GetLeaderboardFunc: func(ctx context.Context, h, c uuid.UUID) (*leaderboardservice.LeaderboardDTO, error) {
					assert.Equal(t, hackathonID, h)
					assert.Equal(t, callerID, c)
					if tt.svcErr != nil {
						return nil, tt.svcErr
					}
					return &leaderboardservice.LeaderboardDTO{
						HackathonID: h,
						Entries:     []leaderboarddomain.Standing{{Rank: 1, ProjectName: "P2", Total: 9}},
					}, nil
				},
			}
			rec := httptest.NewRecorder()
			newRouter(svc, tt.actorID).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				var dto leaderboardservice.LeaderboardDTO
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
				require.Len(t, dto.Entries, 1)
				assert.Equal(t, "P2", dto.Entries[0].ProjectName)
			}
			if tt.wantStatus == http.StatusForbidden {
				assert.JSONEq(t, `{"error":"results only available after completion"}`, rec.Body.String())
			}
		})
	}
}

func TestHandleFiles(t *testing.T) {
	hackathonID := uuid.New()
	callerID := uuid.New()
	svc := &FakeService{
		ExportLeaderboardXLSXFunc: func(ctx context.Context, h, c uuid.UUID) ([]byte, error) {
			return []byte("PK-xlsx"), nil
		},
		RenderLeaderboardChartFunc: func(ctx context.Context, h, c uuid.UUID) ([]byte, error) {
			return nil, apperr.Forbidden("results only available after completion")
		},
	}
	router := newRouter(svc, callerID)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/"+hackathonID.String()+"/leaderboard.xlsx", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "leaderboard-"+hackathonID.String()+".xlsx")
	assert.Equal(t, "PK-xlsx", rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/"+hackathonID.String()+"/leaderboard.png", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
