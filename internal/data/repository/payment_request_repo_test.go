package repository

import (
	"context"
	"testing"
	"time"

	"bus-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"go.uber.org/zap"
)

func TestPaymentRequestCreateAssignsSeq(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPaymentRequestRepository(mock, zap.NewNop())

	pr := &entity.PaymentRequest{
		BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		SwishID:     "ABC123",
		PayerAlias:  "46701234567",
		PayeeAlias:  "1230000000",
		Amount:      280,
		Message:     "Away game",
		Status:      entity.PaymentStatusCreated,
		CallbackURL: "https://booking.example.test/api/callback/payment",
		DateCreated: time.Now(),
	}

	mock.ExpectQuery("INSERT INTO payment_requests").
		WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(),
		).
		WillReturnRows(pgxmock.NewRows([]string{"seq"}).AddRow(int64(42)))

	if err := repo.Create(context.Background(), mock, pr); err != nil {
		t.Fatalf("create payment request error: %v", err)
	}
	if pr.Seq != 42 {
		t.Fatalf("seq not assigned from insert: got %d want 42", pr.Seq)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPaymentRequestLinkParticipants(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPaymentRequestRepository(mock, zap.NewNop())

	prID := uuid.New()
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	for _, id := range ids {
		mock.ExpectExec("INSERT INTO participant_payments").
			WithArgs(id, prID).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	if err := repo.LinkParticipants(context.Background(), mock, prID, ids); err != nil {
		t.Fatalf("link participants error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPaymentRequestCopyLinks(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPaymentRequestRepository(mock, zap.NewNop())

	fromID := uuid.New()
	toID := uuid.New()
	mock.ExpectExec("INSERT INTO participant_payments").
		WithArgs(fromID, toID).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))

	if err := repo.CopyLinks(context.Background(), mock, fromID, toID); err != nil {
		t.Fatalf("copy links error: %v", err)
	}
}

func paymentRequestRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "seq", "swish_id", "payer_alias", "payee_alias", "amount",
		"message", "status", "callback_url", "error_code", "error_message",
		"date_created", "date_paid", "created_at",
	})
}

func TestPaymentRequestFindLatestBySwishID(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPaymentRequestRepository(mock, zap.NewNop())

	id := uuid.New()
	now := time.Now()
	paidAt := now.Add(time.Minute)

	mock.ExpectQuery("FROM payment_requests").
		WithArgs("ABC123").
		WillReturnRows(paymentRequestRows().AddRow(
			id, int64(7), "ABC123", "46701234567", "1230000000", 280,
			"Away game", entity.PaymentStatusPaid, "https://booking.example.test/api/callback/payment",
			(*string)(nil), (*string)(nil), now, &paidAt, now,
		))

	pr, err := repo.FindLatestBySwishID(context.Background(), "ABC123")
	if err != nil {
		t.Fatalf("find latest error: %v", err)
	}
	if pr == nil || pr.Seq != 7 || pr.Status != entity.PaymentStatusPaid {
		t.Fatalf("unexpected payment request: %+v", pr)
	}
	if pr.DatePaid == nil || !pr.DatePaid.Equal(paidAt) {
		t.Fatalf("date paid not scanned: %+v", pr.DatePaid)
	}
}

func TestPaymentRequestFindLatestBySwishIDNotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPaymentRequestRepository(mock, zap.NewNop())

	mock.ExpectQuery("FROM payment_requests").
		WithArgs("NOPE").
		WillReturnError(pgx.ErrNoRows)

	pr, err := repo.FindLatestBySwishID(context.Background(), "NOPE")
	if err != nil {
		t.Fatalf("expected nil error for unknown swish id, got %v", err)
	}
	if pr != nil {
		t.Fatalf("expected nil payment request, got %+v", pr)
	}
}

func TestPaymentRequestFindLatestPaidByParticipant(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPaymentRequestRepository(mock, zap.NewNop())

	participantID := uuid.New()
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery("FROM payment_requests").
		WithArgs(participantID).
		WillReturnRows(paymentRequestRows().AddRow(
			id, int64(9), "ABC123", "46701234567", "1230000000", 100,
			"Away game", entity.PaymentStatusPaid, "",
			(*string)(nil), (*string)(nil), now, (*time.Time)(nil), now,
		))

	pr, err := repo.FindLatestPaidByParticipant(context.Background(), participantID)
	if err != nil {
		t.Fatalf("find latest paid error: %v", err)
	}
	if pr == nil || pr.SwishID != "ABC123" {
		t.Fatalf("unexpected payment request: %+v", pr)
	}
}
