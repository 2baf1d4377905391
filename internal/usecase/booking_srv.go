package usecase

import (
	"context"
	"fmt"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/dto/response"
	"bus-booking/internal/gateway"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// SubmitSignup persists the party provisionally and issues one payment
	// request for the total. Confirmation happens later via the callback.
	SubmitSignup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error)
}

type bookingService struct {
	repo    *repository.Repository
	gateway PaymentGateway
	config  *utils.Config
	log     *zap.Logger
}

func NewBookingService(repo *repository.Repository, gw PaymentGateway, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		repo:    repo,
		gateway: gw,
		config:  config,
		log:     log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) SubmitSignup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Signup validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid event ID format %s", ErrValidation, req.EventID)
	}

	event, err := s.repo.Event.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("find event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("%w: event %s", ErrNotFound, req.EventID)
	}

	// Resolve buses and verify they belong to the event
	buses := make(map[uuid.UUID]*entity.Bus)
	partyPerBus := make(map[uuid.UUID]int)
	for _, rp := range req.Participants {
		busID, err := uuid.Parse(rp.BusID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid bus ID format %s", ErrValidation, rp.BusID)
		}

		if _, ok := buses[busID]; !ok {
			bus, err := s.repo.Bus.FindByID(ctx, busID)
			if err != nil {
				return nil, fmt.Errorf("find bus: %w", err)
			}
			if bus == nil {
				return nil, fmt.Errorf("%w: bus %s", ErrNotFound, rp.BusID)
			}
			if bus.EventID != event.ID {
				return nil, fmt.Errorf("%w: bus %s does not belong to event %s", ErrValidation, rp.BusID, req.EventID)
			}
			buses[busID] = bus
		}
		partyPerBus[busID]++
	}

	// Build participants; cost is fixed here and never recomputed
	now := time.Now()
	participants := make([]*entity.Participant, len(req.Participants))
	total := 0
	for i, rp := range req.Participants {
		busID, _ := uuid.Parse(rp.BusID)
		amount := event.PriceFor(rp.Member, rp.Youth)
		total += amount

		participants[i] = &entity.Participant{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			EventID:     event.ID,
			BusID:       busID,
			Name:        rp.Name,
			Email:       rp.Email,
			Phone:       rp.Phone,
			Consent:     rp.Consent,
			Member:      rp.Member,
			Youth:       rp.Youth,
			PayAmount:   amount,
			CancelToken: uuid.New(),
		}
	}

	// All participants commit in one transaction. The bus row lock plus
	// paid-count re-check closes the last-seat race before we reach the
	// gateway.
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin signup transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for busID, incoming := range partyPerBus {
		capacity, err := s.repo.Bus.LockCapacity(ctx, tx, busID)
		if err != nil {
			return nil, fmt.Errorf("lock bus capacity: %w", err)
		}

		active, err := s.repo.Participant.CountActiveByBus(ctx, tx, busID)
		if err != nil {
			return nil, fmt.Errorf("count active participants: %w", err)
		}

		if active+incoming > capacity {
			return nil, fmt.Errorf("%w: bus %s has %d of %d seats paid",
				ErrCapacityFull, buses[busID].Name, active, capacity)
		}
	}

	if err := s.repo.Participant.CreateBatch(ctx, tx, participants); err != nil {
		return nil, fmt.Errorf("create participants: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit signup transaction: %w", err)
	}

	// Payer alias is the first participant's phone
	message := utils.SanitizePaymentMessage(event.Name)
	payerAlias := utils.NormalizeAlias(participants[0].Phone)

	swishID, err := s.gateway.CreatePayment(ctx, gateway.PaymentParams{
		PayerAlias: payerAlias,
		Amount:     total,
		Message:    message,
	})
	if err != nil {
		// Participants are already committed; they stay for manual
		// reconciliation. Log the ids so operators can find the orphans.
		ids := make([]string, len(participants))
		for i, p := range participants {
			ids[i] = p.ID.String()
		}
		s.log.Error("Gateway call failed after participants were committed",
			zap.Error(err),
			zap.String("event_id", event.ID.String()),
			zap.Strings("participant_ids", ids),
		)
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	pr := &entity.PaymentRequest{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		SwishID:     swishID,
		PayerAlias:  payerAlias,
		PayeeAlias:  s.config.Swish.PayeeAlias,
		Amount:      total,
		Message:     message,
		Status:      entity.PaymentStatusCreated,
		CallbackURL: s.config.Swish.CallbackBaseURL + "/api/callback/payment",
		DateCreated: now,
	}

	participantIDs := make([]uuid.UUID, len(participants))
	for i, p := range participants {
		participantIDs[i] = p.ID
	}

	ptx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin payment transaction: %w", err)
	}
	defer ptx.Rollback(ctx)

	if err := s.repo.Payment.Create(ctx, ptx, pr); err != nil {
		return nil, fmt.Errorf("persist payment request: %w", err)
	}
	if err := s.repo.Payment.LinkParticipants(ctx, ptx, pr.ID, participantIDs); err != nil {
		return nil, fmt.Errorf("link participants: %w", err)
	}

	if err := ptx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit payment transaction: %w", err)
	}

	s.log.Info("Signup submitted",
		zap.String("event_id", event.ID.String()),
		zap.String("payment_request_id", pr.ID.String()),
		zap.String("swish_id", swishID),
		zap.Int("participants", len(participants)),
		zap.Int("amount", total),
	)

	return &response.SignupResponse{
		PaymentRequestID: pr.ID.String(),
		SwishID:          swishID,
		Amount:           total,
		Participants:     len(participants),
	}, nil
}
