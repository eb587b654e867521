package httpapi

import (
	"errors"
	"net/http"

	"github.com/riskibarqy/prix-six/internal/usecase"
)

// RunReconciliation blocks until the pass finishes. A report whose audit write
// failed is still returned, flagged as not persisted.
func (h *Handler) RunReconciliation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunReconciliation")
	defer span.End()

	report, err := h.reconciliationService.Run(ctx)
	switch {
	case err == nil:
		writeSuccess(ctx, w, http.StatusOK, reconciliationRunDTO{Persisted: true, Report: report})
	case errors.Is(err, usecase.ErrReportNotPersisted):
		h.logger.WarnContext(ctx, "reconciliation report not persisted", "report_id", report.ID, "error", err)
		writeSuccess(ctx, w, http.StatusOK, reconciliationRunDTO{Persisted: false, Report: report})
	default:
		h.logger.ErrorContext(ctx, "reconciliation run failed", "error", err)
		writeError(ctx, w, err)
	}
}

func (h *Handler) GetLatestReconciliation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLatestReconciliation")
	defer span.End()

	report, err := h.reconciliationService.LatestReport(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get latest reconciliation failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}
