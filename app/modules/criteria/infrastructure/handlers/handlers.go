package criteriahandlers

import (
	"log/slog"
	"net/http"

	criteriaservice "github.com/Black-And-White-Club/hackathon-judging/app/modules/criteria/application"
	"github.com/Black-And-White-Club/hackathon-judging/app/shared/httpx"
	"go.opentelemetry.io/otel/trace"
)

// CriteriaHandlers implements the Handlers interface.
type CriteriaHandlers struct {
	service criteriaservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewCriteriaHandlers creates a new CriteriaHandlers instance.
func NewCriteriaHandlers(service criteriaservice.Service, logger *slog.Logger, tracer trace.Tracer) Handlers {
	return &CriteriaHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

func (h *CriteriaHandlers) HandleListCriteria(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CriteriaHandlers.HandleListCriteria")
	defer span.End()

	hackathonID, err := httpx.URLParamUUID(r, "hackathonID")
	if err != nil {
		httpx.WriteErr(w, http.StatusBadRequest, err.Error())
		return
	}

	criteria, err := h.service.ListCriteria(ctx, hackathonID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, criteria)
}

func (h *CriteriaHandlers) HandleCreateCriterion(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CriteriaHandlers.HandleCreateCriterion")
	defer span.End()

	actorID, ok := httpx.ActorFromContext(ctx)
	if !ok {
		httpx.WriteErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	hackathonID, err := httpx.URLParamUUID(r, "hackathonID")
	if err != nil {
		httpx.WriteErr(w, http.StatusBadRequest, err.Error())
		return
	}

	var req criteriaservice.CreateCriterionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteErr(w, http.StatusBadRequest, err.Error())
		return
	}

	criterion, err := h.service.CreateCriterion(ctx, hackathonID, req, actorID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, criterion)
}

func (h *CriteriaHandlers) HandleUpdateCriterion(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CriteriaHandlers.HandleUpdateCriterion")
	defer span.End()

	actorID, ok := httpx.ActorFromContext(ctx)
	if !ok {
		httpx.WriteErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	criterionID, err := httpx.URLParamUUID(r, "criterionID")
	if err != nil {
		httpx.WriteErr(w, http.StatusBadRequest, err.Error())
		return
	}

	var req criteriaservice.UpdateCriterionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteErr(w, http.StatusBadRequest, err.Error())
		return
	}

	criterion, err := h.service.UpdateCriterion(ctx, criterionID, req, actorID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, criterion)
}

func (h *CriteriaHandlers) HandleDeleteCriterion(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CriteriaHandlers.HandleDeleteCriterion")
	defer span.End()

	actorID, ok := httpx.ActorFromContext(ctx)
	if !ok {
		httpx.WriteErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	criterionID, err := httpx.URLParamUUID(r, "criterionID")
	if err != nil {
		httpx.WriteErr(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.DeleteCriterion(ctx, criterionID, actorID); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
