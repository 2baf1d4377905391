package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefundStatus is the gateway's refund lifecycle vocabulary. Kept as a
// separate closed type from PaymentStatus: refunds have no CANCELLED state.
type RefundStatus string

const (
	RefundStatusNone     RefundStatus = ""
	RefundStatusCreated  RefundStatus = "CREATED"
	RefundStatusPaid     RefundStatus = "PAID"
	RefundStatusDeclined RefundStatus = "DECLINED"
	RefundStatusError    RefundStatus = "ERROR"
)

// RefundRequest follows the same append-only discipline as PaymentRequest,
// keyed by the gateway refund id. PaymentReference is the gateway payment
// id of the original charge being refunded.
type RefundRequest struct {
	BaseSimple
	Seq              int64        `db:"seq"`
	SwishID          string       `db:"swish_id"`
	PaymentReference string       `db:"payment_reference"`
	ParticipantID    uuid.UUID    `db:"participant_id"`
	Amount           int          `db:"amount"`
	Message          string       `db:"message"`
	Status           RefundStatus `db:"status"`
	ErrorCode        *string      `db:"error_code"`
	ErrorMessage     *string      `db:"error_message"`
	DateCreated      time.Time    `db:"date_created"`
}
