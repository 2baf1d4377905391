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

// Same append-only discipline as payment requests, keyed by the gateway
// refund id.
type RefundRequestRepository interface {
	Create(ctx context.Context, q database.Querier, rr *entity.RefundRequest) error

	FindLatestBySwishID(ctx context.Context, swishID string) (*entity.RefundRequest, error)
	FindLatestByParticipant(ctx context.Context, participantID uuid.UUID) (*entity.RefundRequest, error)
}

type refundRequestRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRefundRequestRepository(db database.PgxIface, log *zap.Logger) RefundRequestRepository {
	return &refundRequestRepository{
		db:  db,
		log: log.With(zap.String("repository", "refund_request")),
	}
}

const refundRequestColumns = `id, seq, swish_id, payment_reference, participant_id, amount, message, status, error_code, error_message, date_created, created_at`

func (r *refundRequestRepository) Create(ctx context.Context, q database.Querier, rr *entity.RefundRequest) error {
	query := `
		INSERT INTO refund_requests (id, swish_id, payment_reference, participant_id, amount, message, status, error_code, error_message, date_created, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING seq
	`

	err := q.QueryRow(ctx, query,
		rr.ID,
		rr.SwishID,
		rr.PaymentReference,
		rr.ParticipantID,
		rr.Amount,
		rr.Message,
		rr.Status,
		rr.ErrorCode,
		rr.ErrorMessage,
		rr.DateCreated,
		rr.CreatedAt,
	).Scan(&rr.Seq)

	if err != nil {
		r.log.Error("Failed to create refund request",
			zap.Error(err),
			zap.String("swish_id", rr.SwishID),
			zap.String("status", string(rr.Status)),
		)
		return fmt.Errorf("create refund request for swish id %s: %w", rr.SwishID, err)
	}

	return nil
}

func (r *refundRequestRepository) FindLatestBySwishID(ctx context.Context, swishID string) (*entity.RefundRequest, error) {
	query := `
		SELECT ` + refundRequestColumns + `
		FROM refund_requests
		WHERE swish_id = $1
		ORDER BY seq DESC
		LIMIT 1
	`

	rr, err := r.scanOne(r.db.QueryRow(ctx, query, swishID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find refund request by swish ID",
			zap.Error(err),
			zap.String("swish_id", swishID),
		)
		return nil, fmt.Errorf("find refund request by swish ID %s: %w", swishID, err)
	}

	return rr, nil
}

func (r *refundRequestRepository) FindLatestByParticipant(ctx context.Context, participantID uuid.UUID) (*entity.RefundRequest, error) {
	query := `
		SELECT ` + refundRequestColumns + `
		FROM refund_requests
		WHERE participant_id = $1
		ORDER BY seq DESC
		LIMIT 1
	`

	rr, err := r.scanOne(r.db.QueryRow(ctx, query, participantID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find refund request by participant",
			zap.Error(err),
			zap.String("participant_id", participantID.String()),
		)
		return nil, fmt.Errorf("find refund request for participant %s: %w", participantID.String(), err)
	}

	return rr, nil
}

func (r *refundRequestRepository) scanOne(row pgx.Row) (*entity.RefundRequest, error) {
	var rr entity.RefundRequest
	err := row.Scan(
		&rr.ID,
		&rr.Seq,
		&rr.SwishID,
		&rr.PaymentReference,
		&rr.ParticipantID,
		&rr.Amount,
		&rr.Message,
		&rr.Status,
		&rr.ErrorCode,
		&rr.ErrorMessage,
		&rr.DateCreated,
		&rr.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rr, nil
}
