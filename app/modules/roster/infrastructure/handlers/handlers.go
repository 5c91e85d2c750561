package rosterhandlers

import (
	"log/slog"
	"net/http"

	rosterservice "github.com/Black-And-White-Club/hackathon-judging/app/modules/roster/application"
	"github.com/Black-And-White-Club/hackathon-judging/app/shared/httpx"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RosterHandlers implements the Handlers interface.
type RosterHandlers struct {
	service rosterservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewRosterHandlers creates a new RosterHandlers instance.
func NewRosterHandlers(service rosterservice.Service, logger *slog.Logger, tracer trace.Tracer) Handlers {
	return &RosterHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

func (h *RosterHandlers) HandleListJudges(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RosterHandlers.HandleListJudges")
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

	judges, err := h.service.ListJudges(ctx, hackathonID, actorID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, judges)
}

func (h *RosterHandlers) HandleAddJudge(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RosterHandlers.HandleAddJudge")
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

	var req rosterservice.AddJudgeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteErr(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserID == uuid.Nil {
		httpx.WriteErr(w, http.StatusBadRequest, "user_id is required")
		return
	}
	span.SetAttributes(attribute.String("user_id", req.UserID.String()))

	judge, err := h.service.AddJudge(ctx, hackathonID, req.UserID, actorID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, judge)
}

func (h *RosterHandlers) HandleRemoveJudge(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RosterHandlers.HandleRemoveJudge")
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
	userID, err := httpx.URLParamUUID(r, "userID")
	if err != nil {
		httpx.WriteErr(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.RemoveJudge(ctx, hackathonID, userID, actorID); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
