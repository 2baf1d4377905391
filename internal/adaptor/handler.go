package adaptor

import (
	"errors"
	"net/http"

	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Booking      *BookingHandler
	Callback     *CallbackHandler
	Cancellation *CancellationHandler
	Event        *EventHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking:      NewBookingHandler(service.Booking, log),
		Callback:     NewCallbackHandler(service.Callback, log),
		Cancellation: NewCancellationHandler(service.Cancellation, log),
		Event:        NewEventHandler(service.Capacity, service.Stats, log),
	}
}

// handleServiceError maps service errors onto HTTP responses. Gateway
// failures stay a generic internal error toward the caller; the full
// diagnostics were already logged at the source.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrCapacityFull):
		log.Warn(operation+" failed - capacity full", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrBusinessRule):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error())

	case errors.Is(err, usecase.ErrGateway):
		log.Error("Failed to "+operation+" - gateway", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
