package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/prix-six/internal/usecase"
)

func (h *Handler) PreviewScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PreviewScore")
	defer span.End()

	var req previewScoreRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	outcome, err := h.scoringService.PreviewScore(ctx, usecase.PreviewInput{
		Order:  req.Order,
		TopSix: req.TopSix,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "preview score failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, outcomeToDTO(outcome))
}

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	standings, err := h.scoringService.Standings(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standings)
}

func (h *Handler) ScoreEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScoreEvent")
	defer span.End()

	eventID := strings.TrimSpace(r.PathValue("eventID"))
	result, err := h.scoringService.ScoreEvent(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "score event failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RescoreEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RescoreEvent")
	defer span.End()

	eventID := strings.TrimSpace(r.PathValue("eventID"))
	result, err := h.scoringService.RescoreEvent(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "rescore event failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
