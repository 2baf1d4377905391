package adaptor

import (
	"net/http"

	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type EventHandler struct {
	capacity usecase.CapacityService
	stats    usecase.StatsService
	log      *zap.Logger
}

func NewEventHandler(capacity usecase.CapacityService, stats usecase.StatsService, log *zap.Logger) *EventHandler {
	return &EventHandler{
		capacity: capacity,
		stats:    stats,
		log:      log.With(zap.String("handler", "event")),
	}
}

// ListEvents handles GET /api/events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.capacity.ListEvents(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list events")
		return
	}

	utils.ResponseSuccess(w, "success", events)
}

// EventCapacity handles GET /api/events/{id}/capacity
func (h *EventHandler) EventCapacity(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	capacity, err := h.capacity.EventCapacity(r.Context(), eventID)
	if err != nil {
		handleServiceError(w, h.log, err, "get event capacity")
		return
	}

	utils.ResponseSuccess(w, "success", capacity)
}

// MemberCount handles GET /api/stats/members
func (h *EventHandler) MemberCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.stats.MemberCount(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get member count")
		return
	}

	utils.ResponseSuccess(w, "success", count)
}
