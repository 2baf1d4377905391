package response

// SignupResponse confirms the provisional booking; payment completion
// arrives later through the gateway callback.
type SignupResponse struct {
	PaymentRequestID string `json:"payment_request_id"`
	SwishID          string `json:"swish_id"`
	Amount           int    `json:"amount"`
	Participants     int    `json:"participants"`
}
