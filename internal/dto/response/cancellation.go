package response

import "time"

type CancellationStatusResponse struct {
	EventName            string    `json:"event_name"`
	Departure            time.Time `json:"departure"`
	AlreadyCancelled     bool      `json:"already_cancelled"`
	CancellationDisabled bool      `json:"cancellation_disabled"`
}

type RefundResponse struct {
	RefundRequestID string `json:"refund_request_id"`
	SwishRefundID   string `json:"swish_refund_id"`
	Amount          int    `json:"amount"`
}
