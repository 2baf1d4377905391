package wire

import (
	"bus-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	// POST /api/signup - book seats for a party and start payment
	r.Post("/api/signup", bookingHandler.SubmitSignup)
}
