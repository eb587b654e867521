package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/prix-six/internal/platform/logging"
	"github.com/riskibarqy/prix-six/internal/usecase"
)

const maxRequestBodyBytes = 64 << 10

type Handler struct {
	scoringService        *usecase.ScoringService
	reconciliationService *usecase.ReconciliationService
	logger                *logging.Logger
	validator             *validator.Validate
}

func NewHandler(
	scoringService *usecase.ScoringService,
	reconciliationService *usecase.ReconciliationService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		scoringService:        scoringService,
		reconciliationService: reconciliationService,
		logger:                logger,
		validator:             validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) decodeRequest(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid json body: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}
