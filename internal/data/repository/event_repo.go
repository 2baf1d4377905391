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

// Events are created by the admin tooling; this core only reads them.
type EventRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	FindUpcoming(ctx context.Context) ([]*entity.Event, error)
}

type eventRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEventRepository(db database.PgxIface, log *zap.Logger) EventRepository {
	return &eventRepository{
		db:  db,
		log: log.With(zap.String("repository", "event")),
	}
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `
		SELECT id, name, departure, price_default, price_member, price_youth, price_youth_member, created_at, updated_at
		FROM events
		WHERE id = $1
	`

	var event entity.Event
	err := r.db.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Name,
		&event.Departure,
		&event.PriceDefault,
		&event.PriceMember,
		&event.PriceYouth,
		&event.PriceYouthMember,
		&event.CreatedAt,
		&event.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find event by ID",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return nil, fmt.Errorf("find event by ID %s: %w", id.String(), err)
	}

	return &event, nil
}

func (r *eventRepository) FindUpcoming(ctx context.Context) ([]*entity.Event, error) {
	query := `
		SELECT id, name, departure, price_default, price_member, price_youth, price_youth_member, created_at, updated_at
		FROM events
		WHERE departure > NOW()
		ORDER BY departure
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find upcoming events", zap.Error(err))
		return nil, fmt.Errorf("find upcoming events: %w", err)
	}
	defer rows.Close()

	var events []*entity.Event
	for rows.Next() {
		var event entity.Event
		err := rows.Scan(
			&event.ID,
			&event.Name,
			&event.Departure,
			&event.PriceDefault,
			&event.PriceMember,
			&event.PriceYouth,
			&event.PriceYouthMember,
			&event.CreatedAt,
			&event.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan event row", zap.Error(err))
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, &event)
	}

	return events, nil
}
