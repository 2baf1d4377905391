package wire

import (
	"bus-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireEvent(r chi.Router, eventHandler *adaptor.EventHandler) {
	// Read models for the booking presentation
	r.Get("/api/events", eventHandler.ListEvents)
	r.Get("/api/events/{id}/capacity", eventHandler.EventCapacity)

	// Membership stats
	r.Get("/api/stats/members", eventHandler.MemberCount)
}
