package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"bus-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"go.uber.org/zap"
)

func testParticipant() *entity.Participant {
	return &entity.Participant{
		BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		EventID:     uuid.New(),
		BusID:       uuid.New(),
		Name:        "Kim Larsson",
		Email:       "kim@example.test",
		Phone:       "0701234567",
		Consent:     true,
		PayAmount:   100,
		CancelToken: uuid.New(),
	}
}

func TestParticipantCreateBatch(t *testing.T) {
	mock := newMockPool(t)
	repo := NewParticipantRepository(mock, zap.NewNop())

	batch := []*entity.Participant{testParticipant(), testParticipant()}
	for range batch {
		mock.ExpectExec("INSERT INTO participants").
			WithArgs(
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	if err := repo.CreateBatch(context.Background(), mock, batch); err != nil {
		t.Fatalf("create batch error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestParticipantCreateBatchStopsOnError(t *testing.T) {
	mock := newMockPool(t)
	repo := NewParticipantRepository(mock, zap.NewNop())

	batch := []*entity.Participant{testParticipant(), testParticipant()}
	mock.ExpectExec("INSERT INTO participants").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO participants").
		WillReturnError(errors.New("duplicate key"))

	if err := repo.CreateBatch(context.Background(), mock, batch); err == nil {
		t.Fatal("expected error from second insert")
	}
}

func TestParticipantFindByCancelToken(t *testing.T) {
	mock := newMockPool(t)
	repo := NewParticipantRepository(mock, zap.NewNop())

	p := testParticipant()
	mock.ExpectQuery("FROM participants").
		WithArgs(p.CancelToken).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "event_id", "bus_id", "name", "email", "phone", "consent",
			"member", "youth", "pay_amount", "cancel_token", "created_at",
		}).AddRow(
			p.ID, p.EventID, p.BusID, p.Name, p.Email, p.Phone, p.Consent,
			p.Member, p.Youth, p.PayAmount, p.CancelToken, p.CreatedAt,
		))

	found, err := repo.FindByCancelToken(context.Background(), p.CancelToken)
	if err != nil {
		t.Fatalf("find by cancel token error: %v", err)
	}
	if found == nil || found.ID != p.ID || found.PayAmount != 100 {
		t.Fatalf("unexpected participant: %+v", found)
	}
}

func TestParticipantFindByCancelTokenNotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewParticipantRepository(mock, zap.NewNop())

	token := uuid.New()
	mock.ExpectQuery("FROM participants").
		WithArgs(token).
		WillReturnError(pgx.ErrNoRows)

	found, err := repo.FindByCancelToken(context.Background(), token)
	if err != nil {
		t.Fatalf("expected nil error for unknown token, got %v", err)
	}
	if found != nil {
		t.Fatalf("expected nil participant, got %+v", found)
	}
}

func TestParticipantCountActiveByBus(t *testing.T) {
	mock := newMockPool(t)
	repo := NewParticipantRepository(mock, zap.NewNop())

	busID := uuid.New()
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(busID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountActiveByBus(context.Background(), mock, busID)
	if err != nil {
		t.Fatalf("count active error: %v", err)
	}
	if count != 7 {
		t.Fatalf("count: got %d want 7", count)
	}
}

func TestParticipantStatusesByEvent(t *testing.T) {
	mock := newMockPool(t)
	repo := NewParticipantRepository(mock, zap.NewNop())

	eventID := uuid.New()
	busID := uuid.New()
	paidID := uuid.New()
	refundedID := uuid.New()
	pendingID := uuid.New()

	mock.ExpectQuery("FROM participants").
		WithArgs(eventID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "bus_id", "payment_status", "refund_status"}).
			AddRow(paidID, busID, entity.PaymentStatusPaid, entity.RefundStatusNone).
			AddRow(refundedID, busID, entity.PaymentStatusPaid, entity.RefundStatusPaid).
			AddRow(pendingID, busID, entity.PaymentStatusCreated, entity.RefundStatusNone))

	statuses, err := repo.StatusesByEvent(context.Background(), eventID)
	if err != nil {
		t.Fatalf("statuses by event error: %v", err)
	}
	if len(statuses) != 3 {
		t.Fatalf("statuses: got %d want 3", len(statuses))
	}

	active := map[uuid.UUID]bool{}
	for _, ps := range statuses {
		active[ps.ParticipantID] = ps.Active()
	}
	if !active[paidID] || active[refundedID] || active[pendingID] {
		t.Fatalf("active flags wrong: %+v", active)
	}
}
