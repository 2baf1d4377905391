package repository

import (
	"context"

	"bus-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	Event       EventRepository
	Bus         BusRepository
	Participant ParticipantRepository
	Payment     PaymentRequestRepository
	Refund      RefundRequestRepository

	DB database.PgxIface
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Event:       NewEventRepository(db, log),
		Bus:         NewBusRepository(db, log),
		Participant: NewParticipantRepository(db, log),
		Payment:     NewPaymentRequestRepository(db, log),
		Refund:      NewRefundRequestRepository(db, log),
		DB:          db,
	}
}

// Begin starts a transaction; repository methods taking a database.Querier
// run inside it.
func (r *Repository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.DB.Begin(ctx)
}

// Querier exposes the pool for single-statement writes that need no
// transaction.
func (r *Repository) Querier() database.Querier {
	return r.DB
}
