package adaptor

import (
	"net/http"

	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CancellationHandler struct {
	service usecase.CancellationService
	log     *zap.Logger
}

func NewCancellationHandler(service usecase.CancellationService, log *zap.Logger) *CancellationHandler {
	return &CancellationHandler{
		service: service,
		log:     log.With(zap.String("handler", "cancellation")),
	}
}

// GetStatus handles GET /api/cancel/{token}
func (h *CancellationHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		utils.ResponseBadRequest(w, "Cancellation token is required", nil)
		return
	}

	status, err := h.service.GetCancellableStatus(r.Context(), token)
	if err != nil {
		handleServiceError(w, h.log, err, "get cancellation status")
		return
	}

	utils.ResponseSuccess(w, "success", status)
}

// RequestCancellation handles POST /api/cancel/{token}
func (h *CancellationHandler) RequestCancellation(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		utils.ResponseBadRequest(w, "Cancellation token is required", nil)
		return
	}

	refund, err := h.service.RequestCancellation(r.Context(), token)
	if err != nil {
		handleServiceError(w, h.log, err, "request cancellation")
		return
	}

	utils.ResponseSuccess(w, "success", refund)
}
