package usecase

import (
	"context"
	"fmt"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CapacityService interface {
	EventCapacity(ctx context.Context, eventID string) (*response.EventCapacityResponse, error)
	ListEvents(ctx context.Context) ([]*response.EventCapacityResponse, error)
}

type capacityService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCapacityService(repo *repository.Repository, log *zap.Logger) CapacityService {
	return &capacityService{
		repo: repo,
		log:  log.With(zap.String("service", "capacity")),
	}
}

// CountBooked computes booked seats per bus: a participant counts when its
// latest payment is PAID and its latest refund (if any) is not PAID.
func CountBooked(statuses []entity.ParticipantStatus) map[uuid.UUID]int {
	booked := make(map[uuid.UUID]int)
	for _, ps := range statuses {
		if ps.Active() {
			booked[ps.BusID]++
		}
	}
	return booked
}

func (s *capacityService) EventCapacity(ctx context.Context, eventID string) (*response.EventCapacityResponse, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid event ID format %s", ErrValidation, eventID)
	}

	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("%w: event %s", ErrNotFound, eventID)
	}

	return s.buildEventCapacity(ctx, event)
}

func (s *capacityService) ListEvents(ctx context.Context) ([]*response.EventCapacityResponse, error) {
	events, err := s.repo.Event.FindUpcoming(ctx)
	if err != nil {
		return nil, fmt.Errorf("find upcoming events: %w", err)
	}

	result := make([]*response.EventCapacityResponse, 0, len(events))
	for _, event := range events {
		resp, err := s.buildEventCapacity(ctx, event)
		if err != nil {
			return nil, err
		}
		result = append(result, resp)
	}

	return result, nil
}

func (s *capacityService) buildEventCapacity(ctx context.Context, event *entity.Event) (*response.EventCapacityResponse, error) {
	buses, err := s.repo.Bus.FindByEventID(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("find buses: %w", err)
	}

	statuses, err := s.repo.Participant.StatusesByEvent(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("load participant statuses: %w", err)
	}

	booked := CountBooked(statuses)

	busResponses := make([]response.BusCapacityResponse, len(buses))
	for i, bus := range buses {
		busResponses[i] = response.BusCapacityResponse{
			BusID:          bus.ID.String(),
			Name:           bus.Name,
			Capacity:       bus.Capacity,
			BookedSeats:    booked[bus.ID],
			AvailableSeats: bus.Capacity - booked[bus.ID],
		}
	}

	return &response.EventCapacityResponse{
		EventID:   event.ID.String(),
		Name:      event.Name,
		Departure: event.Departure,
		Buses:     busResponses,
	}, nil
}
