package repository

import (
	"context"
	"fmt"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ParticipantRepository interface {
	// CreateBatch inserts all participants through q; callers run it inside
	// a transaction so the batch commits all-or-nothing.
	CreateBatch(ctx context.Context, q database.Querier, participants []*entity.Participant) error

	FindByCancelToken(ctx context.Context, token uuid.UUID) (*entity.Participant, error)
	FindByPaymentRequestID(ctx context.Context, paymentRequestID uuid.UUID) ([]*entity.Participant, error)

	// CountActiveByBus counts seats whose latest payment is PAID and latest
	// refund is not PAID. Runs through q so the signup transaction can
	// re-check capacity under the bus row lock.
	CountActiveByBus(ctx context.Context, q database.Querier, busID uuid.UUID) (int, error)

	// StatusesByEvent returns the capacity read-model rows for an event.
	StatusesByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.ParticipantStatus, error)
}

type participantRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewParticipantRepository(db database.PgxIface, log *zap.Logger) ParticipantRepository {
	return &participantRepository{
		db:  db,
		log: log.With(zap.String("repository", "participant")),
	}
}

const participantColumns = `id, event_id, bus_id, name, email, phone, consent, member, youth, pay_amount, cancel_token, created_at`

func (r *participantRepository) CreateBatch(ctx context.Context, q database.Querier, participants []*entity.Participant) error {
	query := `
		INSERT INTO participants (id, event_id, bus_id, name, email, phone, consent, member, youth, pay_amount, cancel_token, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	for _, p := range participants {
		_, err := q.Exec(ctx, query,
			p.ID,
			p.EventID,
			p.BusID,
			p.Name,
			p.Email,
			p.Phone,
			p.Consent,
			p.Member,
			p.Youth,
			p.PayAmount,
			p.CancelToken,
			p.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create participant",
				zap.Error(err),
				zap.String("participant_id", p.ID.String()),
				zap.String("event_id", p.EventID.String()),
			)
			return fmt.Errorf("create participant %s: %w", p.ID.String(), err)
		}
	}

	return nil
}

func (r *participantRepository) FindByCancelToken(ctx context.Context, token uuid.UUID) (*entity.Participant, error) {
	query := `
		SELECT ` + participantColumns + `
		FROM participants
		WHERE cancel_token = $1
	`

	var p entity.Participant
	err := r.db.QueryRow(ctx, query, token).Scan(
		&p.ID,
		&p.EventID,
		&p.BusID,
		&p.Name,
		&p.Email,
		&p.Phone,
		&p.Consent,
		&p.Member,
		&p.Youth,
		&p.PayAmount,
		&p.CancelToken,
		&p.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find participant by cancel token", zap.Error(err))
		return nil, fmt.Errorf("find participant by cancel token: %w", err)
	}

	return &p, nil
}

func (r *participantRepository) FindByPaymentRequestID(ctx context.Context, paymentRequestID uuid.UUID) ([]*entity.Participant, error) {
	query := `
		SELECT p.id, p.event_id, p.bus_id, p.name, p.email, p.phone, p.consent, p.member, p.youth, p.pay_amount, p.cancel_token, p.created_at
		FROM participants p
		JOIN participant_payments pp ON pp.participant_id = p.id
		WHERE pp.payment_request_id = $1
		ORDER BY p.created_at
	`

	rows, err := r.db.Query(ctx, query, paymentRequestID)
	if err != nil {
		r.log.Error("Failed to find participants by payment request ID",
			zap.Error(err),
			zap.String("payment_request_id", paymentRequestID.String()),
		)
		return nil, fmt.Errorf("find participants by payment request ID %s: %w", paymentRequestID.String(), err)
	}
	defer rows.Close()

	var participants []*entity.Participant
	for rows.Next() {
		var p entity.Participant
		err := rows.Scan(
			&p.ID,
			&p.EventID,
			&p.BusID,
			&p.Name,
			&p.Email,
			&p.Phone,
			&p.Consent,
			&p.Member,
			&p.Youth,
			&p.PayAmount,
			&p.CancelToken,
			&p.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan participant row", zap.Error(err))
			return nil, fmt.Errorf("scan participant row: %w", err)
		}
		participants = append(participants, &p)
	}

	return participants, nil
}

func (r *participantRepository) CountActiveByBus(ctx context.Context, q database.Querier, busID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM participants p
		WHERE p.bus_id = $1
		  AND (
			SELECT pr.status FROM payment_requests pr
			JOIN participant_payments pp ON pp.payment_request_id = pr.id
			WHERE pp.participant_id = p.id
			ORDER BY pr.seq DESC
			LIMIT 1
		  ) = 'PAID'
		  AND COALESCE((
			SELECT rr.status FROM refund_requests rr
			WHERE rr.participant_id = p.id
			ORDER BY rr.seq DESC
			LIMIT 1
		  ), '') <> 'PAID'
	`

	var count int
	if err := q.QueryRow(ctx, query, busID).Scan(&count); err != nil {
		r.log.Error("Failed to count active participants",
			zap.Error(err),
			zap.String("bus_id", busID.String()),
		)
		return 0, fmt.Errorf("count active participants for bus %s: %w", busID.String(), err)
	}

	return count, nil
}

func (r *participantRepository) StatusesByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.ParticipantStatus, error) {
	query := `
		SELECT p.id, p.bus_id,
		  COALESCE((
			SELECT pr.status FROM payment_requests pr
			JOIN participant_payments pp ON pp.payment_request_id = pr.id
			WHERE pp.participant_id = p.id
			ORDER BY pr.seq DESC
			LIMIT 1
		  ), ''),
		  COALESCE((
			SELECT rr.status FROM refund_requests rr
			WHERE rr.participant_id = p.id
			ORDER BY rr.seq DESC
			LIMIT 1
		  ), '')
		FROM participants p
		WHERE p.event_id = $1
	`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		r.log.Error("Failed to load participant statuses",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return nil, fmt.Errorf("load participant statuses for event %s: %w", eventID.String(), err)
	}
	defer rows.Close()

	var statuses []entity.ParticipantStatus
	for rows.Next() {
		var ps entity.ParticipantStatus
		if err := rows.Scan(&ps.ParticipantID, &ps.BusID, &ps.PaymentStatus, &ps.RefundStatus); err != nil {
			r.log.Error("Failed to scan participant status row", zap.Error(err))
			return nil, fmt.Errorf("scan participant status row: %w", err)
		}
		statuses = append(statuses, ps)
	}

	return statuses, nil
}
