package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CallbackService interface {
	// HandlePaymentCallback reconciles an asynchronous payment status
	// report. Safe under gateway redelivery: every delivery appends a
	// history row, the current status stays whatever the latest row says.
	HandlePaymentCallback(ctx context.Context, payload *request.PaymentCallback) error

	HandleRefundCallback(ctx context.Context, payload *request.RefundCallback) error
}

type callbackService struct {
	repo   *repository.Repository
	sender ConfirmationSender
	log    *zap.Logger
}

func NewCallbackService(repo *repository.Repository, sender ConfirmationSender, log *zap.Logger) CallbackService {
	return &callbackService{
		repo:   repo,
		sender: sender,
		log:    log.With(zap.String("service", "callback")),
	}
}

// wholeAmount converts a callback amount to whole units. The ledger stores
// integers; a fractional amount means the gateway reported something we
// cannot record faithfully, so it is rejected rather than truncated.
func wholeAmount(v float64) (int, error) {
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("amount %v is not a whole unit", v)
	}
	return int(v), nil
}

func (s *callbackService) HandlePaymentCallback(ctx context.Context, payload *request.PaymentCallback) error {
	if errs := utils.ValidateStruct(payload); len(errs) > 0 {
		s.log.Warn("Payment callback validation failed", zap.Any("errors", errs))
		return fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	amount, err := wholeAmount(payload.Amount)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	prev, err := s.repo.Payment.FindLatestBySwishID(ctx, payload.ID)
	if err != nil {
		return fmt.Errorf("find payment request: %w", err)
	}
	if prev == nil {
		return fmt.Errorf("%w: payment request for swish id %s", ErrNotFound, payload.ID)
	}

	now := time.Now()
	pr := &entity.PaymentRequest{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		SwishID:      payload.ID,
		PayerAlias:   payload.PayerAlias,
		PayeeAlias:   payload.PayeeAlias,
		Amount:       amount,
		Message:      payload.Message,
		Status:       entity.PaymentStatus(payload.Status),
		CallbackURL:  prev.CallbackURL, // original request URL, not the echo
		ErrorCode:    payload.ErrorCode,
		ErrorMessage: payload.ErrorMessage,
		DateCreated:  payload.DateCreated,
		DatePaid:     payload.DatePaid,
	}
	if pr.PayerAlias == "" {
		pr.PayerAlias = prev.PayerAlias
	}
	if pr.Amount == 0 {
		pr.Amount = prev.Amount
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin callback transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.repo.Payment.Create(ctx, tx, pr); err != nil {
		return fmt.Errorf("append payment status row: %w", err)
	}
	if err := s.repo.Payment.CopyLinks(ctx, tx, prev.ID, pr.ID); err != nil {
		return fmt.Errorf("copy participant links: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit callback transaction: %w", err)
	}

	s.log.Info("Payment callback processed",
		zap.String("swish_id", payload.ID),
		zap.String("status", payload.Status),
	)

	if pr.Status == entity.PaymentStatusPaid {
		s.sendConfirmations(ctx, pr.ID)
	}

	return nil
}

// sendConfirmations notifies every linked participant. Failures are logged
// and swallowed: the gateway must not retry the webhook because a mail
// bounced.
func (s *callbackService) sendConfirmations(ctx context.Context, paymentRequestID uuid.UUID) {
	participants, err := s.repo.Participant.FindByPaymentRequestID(ctx, paymentRequestID)
	if err != nil {
		s.log.Error("Failed to load participants for confirmation",
			zap.Error(err),
			zap.String("payment_request_id", paymentRequestID.String()),
		)
		return
	}
	if len(participants) == 0 {
		return
	}

	event, err := s.repo.Event.FindByID(ctx, participants[0].EventID)
	if err != nil || event == nil {
		s.log.Error("Failed to load event for confirmation",
			zap.Error(err),
			zap.String("event_id", participants[0].EventID.String()),
		)
		return
	}

	for _, p := range participants {
		if err := s.sender.SendConfirmation(ctx, p, event); err != nil {
			s.log.Warn("Confirmation send failed",
				zap.Error(err),
				zap.String("participant_id", p.ID.String()),
			)
		}
	}
}

func (s *callbackService) HandleRefundCallback(ctx context.Context, payload *request.RefundCallback) error {
	if errs := utils.ValidateStruct(payload); len(errs) > 0 {
		s.log.Warn("Refund callback validation failed", zap.Any("errors", errs))
		return fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	amount, err := wholeAmount(payload.Amount)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	// The callback does not echo the participant; recover linkage from the
	// prior refund row.
	prev, err := s.repo.Refund.FindLatestBySwishID(ctx, payload.ID)
	if err != nil {
		return fmt.Errorf("find refund request: %w", err)
	}
	if prev == nil {
		return fmt.Errorf("%w: refund request for swish id %s", ErrNotFound, payload.ID)
	}
	if prev.ParticipantID == uuid.Nil {
		return fmt.Errorf("%w: participant for refund %s", ErrNotFound, payload.ID)
	}

	now := time.Now()
	rr := &entity.RefundRequest{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		SwishID:          payload.ID,
		PaymentReference: prev.PaymentReference,
		ParticipantID:    prev.ParticipantID,
		Amount:           amount,
		Message:          payload.Message,
		Status:           entity.RefundStatus(payload.Status),
		ErrorCode:        payload.ErrorCode,
		ErrorMessage:     payload.ErrorMessage,
		DateCreated:      payload.DateCreated,
	}
	if rr.Amount == 0 {
		rr.Amount = prev.Amount
	}

	if err := s.repo.Refund.Create(ctx, s.repo.Querier(), rr); err != nil {
		return fmt.Errorf("append refund status row: %w", err)
	}

	s.log.Info("Refund callback processed",
		zap.String("swish_refund_id", payload.ID),
		zap.String("status", payload.Status),
		zap.String("participant_id", rr.ParticipantID.String()),
	)

	return nil
}
