package entity

import "github.com/google/uuid"

// Participant is one booked seat. PayAmount is computed from the event
// price tiers at creation and never recomputed. CancelToken is the opaque
// secret in the self-service cancellation link.
type Participant struct {
	BaseSimple
	EventID     uuid.UUID `db:"event_id"`
	BusID       uuid.UUID `db:"bus_id"`
	Name        string    `db:"name"`
	Email       string    `db:"email"`
	Phone       string    `db:"phone"`
	Consent     bool      `db:"consent"`
	Member      bool      `db:"member"`
	Youth       bool      `db:"youth"`
	PayAmount   int       `db:"pay_amount"`
	CancelToken uuid.UUID `db:"cancel_token"`
}

// ParticipantStatus is the capacity read-model row: a participant together
// with the current (latest) status of its payment and refund history.
type ParticipantStatus struct {
	ParticipantID uuid.UUID
	BusID         uuid.UUID
	PaymentStatus PaymentStatus
	RefundStatus  RefundStatus
}

// Active reports whether the participant occupies a paid seat: latest
// payment PAID and latest refund (if any) not PAID.
func (ps ParticipantStatus) Active() bool {
	return ps.PaymentStatus == PaymentStatusPaid && ps.RefundStatus != RefundStatusPaid
}
