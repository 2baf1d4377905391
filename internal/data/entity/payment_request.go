package entity

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus is the gateway's payment lifecycle vocabulary.
type PaymentStatus string

const (
	PaymentStatusCreated   PaymentStatus = "CREATED"
	PaymentStatusPaid      PaymentStatus = "PAID"
	PaymentStatusDeclined  PaymentStatus = "DECLINED"
	PaymentStatusError     PaymentStatus = "ERROR"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

// PaymentRequest is one row of the append-only payment history. A new row
// is inserted for every gateway callback reporting the same SwishID; the
// current status is the row with the highest Seq. Rows are never updated.
type PaymentRequest struct {
	BaseSimple
	Seq          int64         `db:"seq"`
	SwishID      string        `db:"swish_id"`
	PayerAlias   string        `db:"payer_alias"`
	PayeeAlias   string        `db:"payee_alias"`
	Amount       int           `db:"amount"`
	Message      string        `db:"message"`
	Status       PaymentStatus `db:"status"`
	CallbackURL  string        `db:"callback_url"`
	ErrorCode    *string       `db:"error_code"`
	ErrorMessage *string       `db:"error_message"`
	DateCreated  time.Time     `db:"date_created"`
	DatePaid     *time.Time    `db:"date_paid"`
}

// ParticipantPayment joins participants to payment history rows.
type ParticipantPayment struct {
	ParticipantID    uuid.UUID `db:"participant_id"`
	PaymentRequestID uuid.UUID `db:"payment_request_id"`
}
