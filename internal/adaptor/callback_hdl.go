package adaptor

import (
	"encoding/json"
	"net/http"

	"bus-booking/internal/dto/request"
	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

// CallbackHandler receives the gateway's webhooks. The gateway retries on
// any non-2xx answer, so once the callback is persisted we always answer
// 200; only unresolvable ids are worth an error, since retrying cannot fix
// a booking the ledger never knew about.
type CallbackHandler struct {
	service usecase.CallbackService
	log     *zap.Logger
}

func NewCallbackHandler(service usecase.CallbackService, log *zap.Logger) *CallbackHandler {
	return &CallbackHandler{
		service: service,
		log:     log.With(zap.String("handler", "callback")),
	}
}

// PaymentCallback handles POST /api/callback/payment
func (h *CallbackHandler) PaymentCallback(w http.ResponseWriter, r *http.Request) {
	var payload request.PaymentCallback
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.ResponseBadRequest(w, "Invalid callback body", nil)
		return
	}

	if err := h.service.HandlePaymentCallback(r.Context(), &payload); err != nil {
		handleServiceError(w, h.log, err, "process payment callback")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// RefundCallback handles POST /api/callback/refund
func (h *CallbackHandler) RefundCallback(w http.ResponseWriter, r *http.Request) {
	var payload request.RefundCallback
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.ResponseBadRequest(w, "Invalid callback body", nil)
		return
	}

	if err := h.service.HandleRefundCallback(r.Context(), &payload); err != nil {
		handleServiceError(w, h.log, err, "process refund callback")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
