package wire

import (
	"bus-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCallback(r chi.Router, callbackHandler *adaptor.CallbackHandler) {
	// Gateway webhooks; server-to-server, at-least-once delivery
	r.Route("/api/callback", func(r chi.Router) {
		r.Post("/payment", callbackHandler.PaymentCallback)
		r.Post("/refund", callbackHandler.RefundCallback)
	})
}
