package wire

import (
	"bus-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCancellation(r chi.Router, cancellationHandler *adaptor.CancellationHandler) {
	// Self-service cancellation via the emailed token link
	r.Route("/api/cancel", func(r chi.Router) {
		r.Get("/{token}", cancellationHandler.GetStatus)
		r.Post("/{token}", cancellationHandler.RequestCancellation)
	})
}
