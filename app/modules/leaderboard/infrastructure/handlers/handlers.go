package leaderboardhandlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	leaderboardservice "github.com/Black-And-White-Club/hackathon-judging/app/modules/leaderboard/application"
	"github.com/Black-And-White-Club/hackathon-judging/app/shared/httpx"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// LeaderboardHandlers implements the Handlers interface.
type LeaderboardHandlers struct {
	service leaderboardservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewLeaderboardHandlers creates a new LeaderboardHandlers instance.
func NewLeaderboardHandlers(service leaderboardservice.Service, logger *slog.Logger, tracer trace.Tracer) Handlers {
	return &LeaderboardHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

func (h *LeaderboardHandlers) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "LeaderboardHandlers.HandleGetLeaderboard")
	defer span.End()

	hackathonID, callerID, ok := h.params(w, r)
	if !ok {
		return
	}

	lb, err := h.service.GetLeaderboard(ctx, hackathonID, callerID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, lb)
}

func (h *LeaderboardHandlers) HandleExportXLSX(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "LeaderboardHandlers.HandleExportXLSX")
	defer span.End()

	h.writeFile(ctx, w, r, h.service.ExportLeaderboardXLSX, xlsxContentType, "xlsx")
}

func (h *LeaderboardHandlers) HandleChartPNG(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "LeaderboardHandlers.HandleChartPNG")
	defer span.End()

	h.writeFile(ctx, w, r, h.service.RenderLeaderboardChart, "image/png", "png")
}

func (h *LeaderboardHandlers) writeFile(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	render func(ctx context.Context, hackathonID, callerID uuid.UUID) ([]byte, error),
	contentType, ext string,
) {
	hackathonID, callerID, ok := h.params(w, r)
	if !ok {
		return
	}

	data, err := render(ctx, hackathonID, callerID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"leaderboard-%s.%s\"", hackathonID, ext))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.WarnContext(ctx, "Failed to write leaderboard file", slog.Any("error", err))
	}
}

func (h *LeaderboardHandlers) params(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	callerID, ok := httpx.ActorFromContext(r.Context())
	if !ok {
		httpx.WriteErr(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, uuid.Nil, false
	}
	hackathonID, err := httpx.URLParamUUID(r, "hackathonID")
	if err != nil {
		httpx.WriteErr(w, http.StatusBadRequest, err.Error())
		return uuid.Nil, uuid.Nil, false
	}
	return hackathonID, callerID, true
}
