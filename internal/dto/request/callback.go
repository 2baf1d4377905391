package request

import "time"

// PaymentCallback is the gateway-shaped webhook payload for payment status
// changes. Amount arrives as a decimal JSON number; prices are whole units
// internally.
type PaymentCallback struct {
	ID                    string     `json:"id" validate:"required"`
	PayeePaymentReference string     `json:"payeePaymentReference"`
	PaymentReference      string     `json:"paymentReference"`
	CallbackURL           string     `json:"callbackUrl"`
	PayerAlias            string     `json:"payerAlias"`
	PayeeAlias            string     `json:"payeeAlias"`
	Amount                float64    `json:"amount"`
	Currency              string     `json:"currency"`
	Message               string     `json:"message"`
	Status                string     `json:"status" validate:"required,oneof=CREATED PAID DECLINED ERROR CANCELLED"`
	DateCreated           time.Time  `json:"dateCreated"`
	DatePaid              *time.Time `json:"datePaid"`
	ErrorCode             *string    `json:"errorCode"`
	ErrorMessage          *string    `json:"errorMessage"`
}

// RefundCallback is the webhook payload for refund status changes. It does
// not echo the participant; linkage is recovered from the prior refund row.
type RefundCallback struct {
	ID                       string    `json:"id" validate:"required"`
	OriginalPaymentReference string    `json:"originalPaymentReference"`
	PayerAlias               string    `json:"payerAlias"`
	Amount                   float64   `json:"amount"`
	Currency                 string    `json:"currency"`
	Message                  string    `json:"message"`
	Status                   string    `json:"status" validate:"required,oneof=CREATED PAID DECLINED ERROR"`
	DateCreated              time.Time `json:"dateCreated"`
	ErrorCode                *string   `json:"errorCode"`
	ErrorMessage             *string   `json:"errorMessage"`
}
