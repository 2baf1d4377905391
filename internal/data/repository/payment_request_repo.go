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

// Payment history is append-only: callbacks insert new rows, never update.
// The current status for a gateway payment id is the row with the highest
// seq, which the database assigns monotonically on insert.
type PaymentRequestRepository interface {
	Create(ctx context.Context, q database.Querier, pr *entity.PaymentRequest) error
	LinkParticipants(ctx context.Context, q database.Querier, paymentRequestID uuid.UUID, participantIDs []uuid.UUID) error
	CopyLinks(ctx context.Context, q database.Querier, fromID, toID uuid.UUID) error

	FindLatestBySwishID(ctx context.Context, swishID string) (*entity.PaymentRequest, error)
	FindLatestPaidByParticipant(ctx context.Context, participantID uuid.UUID) (*entity.PaymentRequest, error)
}

type paymentRequestRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRequestRepository(db database.PgxIface, log *zap.Logger) PaymentRequestRepository {
	return &paymentRequestRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment_request")),
	}
}

const paymentRequestColumns = `id, seq, swish_id, payer_alias, payee_alias, amount, message, status, callback_url, error_code, error_message, date_created, date_paid, created_at`

func (r *paymentRequestRepository) Create(ctx context.Context, q database.Querier, pr *entity.PaymentRequest) error {
	query := `
		INSERT INTO payment_requests (id, swish_id, payer_alias, payee_alias, amount, message, status, callback_url, error_code, error_message, date_created, date_paid, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING seq
	`

	err := q.QueryRow(ctx, query,
		pr.ID,
		pr.SwishID,
		pr.PayerAlias,
		pr.PayeeAlias,
		pr.Amount,
		pr.Message,
		pr.Status,
		pr.CallbackURL,
		pr.ErrorCode,
		pr.ErrorMessage,
		pr.DateCreated,
		pr.DatePaid,
		pr.CreatedAt,
	).Scan(&pr.Seq)

	if err != nil {
		r.log.Error("Failed to create payment request",
			zap.Error(err),
			zap.String("swish_id", pr.SwishID),
			zap.String("status", string(pr.Status)),
		)
		return fmt.Errorf("create payment request for swish id %s: %w", pr.SwishID, err)
	}

	return nil
}

func (r *paymentRequestRepository) LinkParticipants(ctx context.Context, q database.Querier, paymentRequestID uuid.UUID, participantIDs []uuid.UUID) error {
	query := `
		INSERT INTO participant_payments (participant_id, payment_request_id)
		VALUES ($1, $2)
	`

	for _, participantID := range participantIDs {
		if _, err := q.Exec(ctx, query, participantID, paymentRequestID); err != nil {
			r.log.Error("Failed to link participant to payment request",
				zap.Error(err),
				zap.String("participant_id", participantID.String()),
				zap.String("payment_request_id", paymentRequestID.String()),
			)
			return fmt.Errorf("link participant %s to payment request %s: %w",
				participantID.String(), paymentRequestID.String(), err)
		}
	}

	return nil
}

func (r *paymentRequestRepository) CopyLinks(ctx context.Context, q database.Querier, fromID, toID uuid.UUID) error {
	query := `
		INSERT INTO participant_payments (participant_id, payment_request_id)
		SELECT participant_id, $2
		FROM participant_payments
		WHERE payment_request_id = $1
	`

	if _, err := q.Exec(ctx, query, fromID, toID); err != nil {
		r.log.Error("Failed to copy participant links",
			zap.Error(err),
			zap.String("from_payment_request_id", fromID.String()),
			zap.String("to_payment_request_id", toID.String()),
		)
		return fmt.Errorf("copy participant links from %s to %s: %w", fromID.String(), toID.String(), err)
	}

	return nil
}

func (r *paymentRequestRepository) FindLatestBySwishID(ctx context.Context, swishID string) (*entity.PaymentRequest, error) {
	query := `
		SELECT ` + paymentRequestColumns + `
		FROM payment_requests
		WHERE swish_id = $1
		ORDER BY seq DESC
		LIMIT 1
	`

	pr, err := r.scanOne(r.db.QueryRow(ctx, query, swishID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment request by swish ID",
			zap.Error(err),
			zap.String("swish_id", swishID),
		)
		return nil, fmt.Errorf("find payment request by swish ID %s: %w", swishID, err)
	}

	return pr, nil
}

func (r *paymentRequestRepository) FindLatestPaidByParticipant(ctx context.Context, participantID uuid.UUID) (*entity.PaymentRequest, error) {
	// Latest history row per swish id, restricted to this participant's
	// linked payments; returns it only if that current status is PAID.
	query := `
		SELECT ` + paymentRequestColumns + `
		FROM payment_requests pr
		JOIN participant_payments pp ON pp.payment_request_id = pr.id
		WHERE pp.participant_id = $1
		  AND pr.seq = (
			SELECT MAX(pr2.seq) FROM payment_requests pr2 WHERE pr2.swish_id = pr.swish_id
		  )
		  AND pr.status = 'PAID'
		ORDER BY pr.seq DESC
		LIMIT 1
	`

	pr, err := r.scanOne(r.db.QueryRow(ctx, query, participantID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find paid payment request by participant",
			zap.Error(err),
			zap.String("participant_id", participantID.String()),
		)
		return nil, fmt.Errorf("find paid payment request for participant %s: %w", participantID.String(), err)
	}

	return pr, nil
}

func (r *paymentRequestRepository) scanOne(row pgx.Row) (*entity.PaymentRequest, error) {
	var pr entity.PaymentRequest
	err := row.Scan(
		&pr.ID,
		&pr.Seq,
		&pr.SwishID,
		&pr.PayerAlias,
		&pr.PayeeAlias,
		&pr.Amount,
		&pr.Message,
		&pr.Status,
		&pr.CallbackURL,
		&pr.ErrorCode,
		&pr.ErrorMessage,
		&pr.DateCreated,
		&pr.DatePaid,
		&pr.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &pr, nil
}
