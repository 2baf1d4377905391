package usecase

import (
	"context"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/gateway"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

// PaymentGateway is the outbound payment provider boundary.
type PaymentGateway interface {
	CreatePayment(ctx context.Context, params gateway.PaymentParams) (string, error)
	CreateRefund(ctx context.Context, params gateway.RefundParams) (string, error)
}

// ConfirmationSender is the notification collaborator. Send failures are
// logged by callers and never propagated.
type ConfirmationSender interface {
	SendConfirmation(ctx context.Context, participant *entity.Participant, event *entity.Event) error
}

// MemberDirectory is the membership-card-system boundary.
type MemberDirectory interface {
	MemberCount(ctx context.Context) (int, error)
}

type Service struct {
	Booking      BookingService
	Callback     CallbackService
	Cancellation CancellationService
	Capacity     CapacityService
	Stats        StatsService
}

func NewService(
	repo *repository.Repository,
	gw PaymentGateway,
	sender ConfirmationSender,
	members MemberDirectory,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Booking:      NewBookingService(repo, gw, config, log),
		Callback:     NewCallbackService(repo, sender, log),
		Cancellation: NewCancellationService(repo, gw, log),
		Capacity:     NewCapacityService(repo, log),
		Stats:        NewStatsService(members, log),
	}
}
