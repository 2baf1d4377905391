package usecase

import (
	"context"
	"fmt"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/response"
	"bus-booking/internal/gateway"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// cancellationCutoff is how long before departure self-service cancellation
// closes.
const cancellationCutoff = 48 * time.Hour

type CancellationService interface {
	RequestCancellation(ctx context.Context, token string) (*response.RefundResponse, error)
	GetCancellableStatus(ctx context.Context, token string) (*response.CancellationStatusResponse, error)
}

type cancellationService struct {
	repo    *repository.Repository
	gateway PaymentGateway
	log     *zap.Logger

	now func() time.Time // injectable for window boundary tests
}

func NewCancellationService(repo *repository.Repository, gw PaymentGateway, log *zap.Logger) CancellationService {
	return &cancellationService{
		repo:    repo,
		gateway: gw,
		log:     log.With(zap.String("service", "cancellation")),
		now:     time.Now,
	}
}

func (s *cancellationService) RequestCancellation(ctx context.Context, token string) (*response.RefundResponse, error) {
	participant, event, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	// Reject at the cutoff itself: now >= departure-48h means too late.
	cutoff := event.Departure.Add(-cancellationCutoff)
	if !s.now().Before(cutoff) {
		return nil, fmt.Errorf("%w: too late to cancel, cutoff was %s",
			ErrBusinessRule, cutoff.Format(time.RFC3339))
	}

	latestRefund, err := s.repo.Refund.FindLatestByParticipant(ctx, participant.ID)
	if err != nil {
		return nil, fmt.Errorf("find refund request: %w", err)
	}
	if latestRefund != nil && latestRefund.Status == entity.RefundStatusPaid {
		return nil, fmt.Errorf("%w: booking is already cancelled and refunded", ErrBusinessRule)
	}

	paid, err := s.repo.Payment.FindLatestPaidByParticipant(ctx, participant.ID)
	if err != nil {
		return nil, fmt.Errorf("find paid payment: %w", err)
	}
	if paid == nil {
		return nil, fmt.Errorf("%w: no paid payment to refund", ErrBusinessRule)
	}

	message := utils.SanitizePaymentMessage(
		utils.FirstWord(event.Name) + " " + participant.Name)

	refundID, err := s.gateway.CreateRefund(ctx, gateway.RefundParams{
		PaymentReference: paid.SwishID,
		Amount:           participant.PayAmount,
		Message:          message,
	})
	if err != nil {
		s.log.Error("Refund gateway call failed",
			zap.Error(err),
			zap.String("participant_id", participant.ID.String()),
			zap.String("payment_swish_id", paid.SwishID),
		)
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	now := s.now()
	rr := &entity.RefundRequest{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		SwishID:          refundID,
		PaymentReference: paid.SwishID,
		ParticipantID:    participant.ID,
		Amount:           participant.PayAmount,
		Message:          message,
		Status:           entity.RefundStatusCreated,
		DateCreated:      now,
	}

	if err := s.repo.Refund.Create(ctx, s.repo.Querier(), rr); err != nil {
		return nil, fmt.Errorf("persist refund request: %w", err)
	}

	s.log.Info("Cancellation requested",
		zap.String("participant_id", participant.ID.String()),
		zap.String("swish_refund_id", refundID),
		zap.Int("amount", participant.PayAmount),
	)

	return &response.RefundResponse{
		RefundRequestID: rr.ID.String(),
		SwishRefundID:   refundID,
		Amount:          participant.PayAmount,
	}, nil
}

func (s *cancellationService) GetCancellableStatus(ctx context.Context, token string) (*response.CancellationStatusResponse, error) {
	participant, event, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	alreadyCancelled := false
	latestRefund, err := s.repo.Refund.FindLatestByParticipant(ctx, participant.ID)
	if err != nil {
		return nil, fmt.Errorf("find refund request: %w", err)
	}
	if latestRefund != nil && latestRefund.Status == entity.RefundStatusPaid {
		alreadyCancelled = true
	}

	cutoff := event.Departure.Add(-cancellationCutoff)

	return &response.CancellationStatusResponse{
		EventName:            event.Name,
		Departure:            event.Departure,
		AlreadyCancelled:     alreadyCancelled,
		CancellationDisabled: !s.now().Before(cutoff),
	}, nil
}

func (s *cancellationService) resolve(ctx context.Context, token string) (*entity.Participant, *entity.Event, error) {
	// Tokens are opaque; anything unparseable is indistinguishable from an
	// unknown token.
	tokenID, err := uuid.Parse(token)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: unknown cancellation token", ErrNotFound)
	}

	participant, err := s.repo.Participant.FindByCancelToken(ctx, tokenID)
	if err != nil {
		return nil, nil, fmt.Errorf("find participant: %w", err)
	}
	if participant == nil {
		return nil, nil, fmt.Errorf("%w: unknown cancellation token", ErrNotFound)
	}

	event, err := s.repo.Event.FindByID(ctx, participant.EventID)
	if err != nil {
		return nil, nil, fmt.Errorf("find event: %w", err)
	}
	if event == nil {
		return nil, nil, fmt.Errorf("%w: event %s", ErrNotFound, participant.EventID.String())
	}

	return participant, event, nil
}
