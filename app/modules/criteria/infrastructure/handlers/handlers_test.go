package criteriahandlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	criteriaservice "github.com/Black-And-White-Club/hackathon-judging/app/modules/criteria/application"
	"github.com/Black-And-White-Club/hackathon-judging/app/shared/apperr"
	"github.com/Black-And-White-Club/hackathon-judging/app/shared/httpx"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newRouter(svc criteriaservice.Service, actorID uuid.UUID) http.Handler {
	h := NewCriteriaHandlers(svc, slog.Default(), noop.NewTracerProvider().Tracer("test"))
	r := chi.NewRouter()
	if actorID != uuid.Nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(httpx.WithActor(req.Context(), actorID)))
			})
		})
	}
	r.Get("/{hackathonID}/criteria", h.HandleListCriteria)
	r.Post("/{hackathonID}/criteria", h.HandleCreateCriterion)
	r.Patch("/criteria/{criterionID}", h.HandleUpdateCriterion)
	r.Delete("/criteria/{criterionID}", h.HandleDeleteCriterion)
	return r
}

func TestHandleCreateCriterion(t *testing.T) {
	hackathonID := uuid.New()
	actorID := uuid.New()

	tests := []struct {
		name       string
		actorID    uuid.UUID
		path       string
		body       string
		svcErr     error
		wantStatus int
	}{
		{"created", actorID, "/" + hackathonID.String() + "/criteria", `{"name":"Impact","max_score":10,"weight":2}`, nil, http.StatusCreated},
		{"no actor", uuid.Nil, "/" + hackathonID.String() + "/criteria", `{"name":"Impact","max_score":10,"weight":2}`, nil, http.StatusUnauthorized},
		{"bad hackathon id", actorID, "/nope/criteria", `{"name":"Impact"}`, nil, http.StatusBadRequest},
		{"malformed body", actorID, "/" + hackathonID.String() + "/criteria", `{"name":`, nil, http.StatusBadRequest},
		{"forbidden", actorID, "/" + hackathonID.String() + "/criteria", `{"name":"Impact","max_score":10,"weight":2}`, apperr.Forbidden("only organizers"), http.StatusForbidden},
		{"validation", actorID, "/" + hackathonID.String() + "/criteria", `{"name":"Impact","max_score":0,"weight":2}`, apperr.Validation("max score"), http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotReq criteriaservice.CreateCriterionRequest
			svc := &FakeService{
				CreateCriterionFunc: func(ctx context.Context, id uuid.UUID, req criteriaservice.CreateCriterionRequest, actor uuid.UUID) (*criteriaservice.CriterionDTO, error) {
					gotReq = req
					assert.Equal(t, hackathonID, id)
					assert.Equal(t, actorID, actor)
					if tt.svcErr != nil {
						return nil, tt.svcErr
					}
					return &criteriaservice.CriterionDTO{ID: uuid.New(), HackathonID: id, Name: req.Name, MaxScore: req.MaxScore, Weight: req.Weight}, nil
				},
			}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			newRouter(svc, tt.actorID).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusCreated {
				var dto criteriaservice.CriterionDTO
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
				assert.Equal(t, "Impact", dto.Name)
				assert.Equal(t, 10, gotReq.MaxScore)
				assert.Nil(t, gotReq.DisplayOrder)
			}
		})
	}
}

func TestHandleUpdateCriterion_PartialBody(t *testing.T) {
	criterionID := uuid.New()
	var gotReq criteriaservice.UpdateCriterionRequest
	svc := &FakeService{
		UpdateCriterionFunc: func(ctx context.Context, id uuid.UUID, req criteriaservice.UpdateCriterionRequest, actor uuid.UUID) (*criteriaservice.CriterionDTO, error) {
			gotReq = req
			return &criteriaservice.CriterionDTO{ID: id}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/criteria/"+criterionID.String(), strings.NewReader(`{"weight":1.5}`))
	newRouter(svc, uuid.New()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotReq.Weight)
	assert.Equal(t, 1.5, *gotReq.Weight)
	assert.Nil(t, gotReq.Name)
	assert.Nil(t, gotReq.MaxScore)
}

func TestHandleDeleteCriterion(t *testing.T) {
	criterionID := uuid.New()

	svc := &FakeService{
		DeleteCriterionFunc: func(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
			if id != criterionID {
				return apperr.NotFound("criterion %s not found", id)
			}
			return nil
		},
	}
	router := newRouter(svc, uuid.New())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/criteria/"+criterionID.String(), nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/criteria/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleListCriteria(t *testing.T) {
	hackathonID := uuid.New()
	svc := &FakeService{
		ListCriteriaFunc: func(ctx context.Context, id uuid.UUID) ([]criteriaservice.CriterionDTO, error) {
			return []criteriaservice.CriterionDTO{{Name: "A"}, {Name: "B"}}, nil
		},
	}

	rec := httptest.NewRecorder()
	newRouter(svc, uuid.New()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/"+hackathonID.String()+"/criteria", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []criteriaservice.CriterionDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}
