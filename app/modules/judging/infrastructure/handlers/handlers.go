package judginghandlers

import (
	"log/slog"
	"net/http"

	judgingservice "github.com/Black-And-White-Club/hackathon-judging/app/modules/judging/application"
	"github.com/Black-And-White-Club/hackathon-judging/app/shared/httpx"
	"go.opentelemetry.io/otel/trace"
)

// JudgingHandlers implements the Handlers interface.
type JudgingHandlers struct {
	service judgingservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewJudgingHandlers creates a new JudgingHandlers instance.
func NewJudgingHandlers(service judgingservice.Service, logger *slog.Logger, tracer trace.Tracer) Handlers {
	return &JudgingHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// HandleListMyAssignments lists the caller's own assignments.
func (h *JudgingHandlers) HandleListMyAssignments(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "JudgingHandlers.HandleListMyAssignments")
	defer span.End()

	judgeID, ok := httpx.ActorFromContext(ctx)
	if !ok {
		httpx.WriteErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	hackathonID, err := httpx.URLParamUUID(r, "hackathonID")
	if err != nil {
		httpx.WriteErr(w, http.StatusBadRequest, err.Error())
		return
	}

	assignments, err := h.service.ListAssignmentsForJudge(ctx, hackathonID, judgeID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, assignments)
}

func (h *JudgingHandlers) HandleGetAssignment(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "JudgingHandlers.HandleGetAssignment")
	defer span.End()

	callerID, ok := httpx.ActorFromContext(ctx)
	if !ok {
		httpx.WriteErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	assignmentID, err := httpx.URLParamUUID(r, "assignmentID")
	if err != nil {
		httpx.WriteErr(w, http.StatusBadRequest, err.Error())
		return
	}

	assignment, err := h.service.GetAssignment(ctx, assignmentID, callerID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, assignment)
}

func (h *JudgingHandlers) HandleSubmitScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "JudgingHandlers.HandleSubmitScores")
	defer span.End()

	callerID, ok := httpx.ActorFromContext(ctx)
	if !ok {
		httpx.WriteErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	assignmentID, err := httpx.URLParamUUID(r, "assignmentID")
	if err != nil {
		httpx.WriteErr(w, http.StatusBadRequest, err.Error())
		return
	}

	var req judgingservice.SubmitScoresRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteErr(w, http.StatusBadRequest, err.Error())
		return
	}

	assignment, err := h.service.SubmitScores(ctx, assignmentID, req.Scores, callerID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, assignment)
}
