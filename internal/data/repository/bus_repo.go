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

type BusRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Bus, error)
	FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*entity.Bus, error)

	// LockCapacity takes the bus row lock inside the signup transaction and
	// returns its capacity, serializing concurrent capacity checks.
	LockCapacity(ctx context.Context, q database.Querier, id uuid.UUID) (int, error)
}

type busRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBusRepository(db database.PgxIface, log *zap.Logger) BusRepository {
	return &busRepository{
		db:  db,
		log: log.With(zap.String("repository", "bus")),
	}
}

func (r *busRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Bus, error) {
	query := `
		SELECT id, event_id, name, capacity, created_at, updated_at
		FROM buses
		WHERE id = $1
	`

	var bus entity.Bus
	err := r.db.QueryRow(ctx, query, id).Scan(
		&bus.ID,
		&bus.EventID,
		&bus.Name,
		&bus.Capacity,
		&bus.CreatedAt,
		&bus.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find bus by ID",
			zap.Error(err),
			zap.String("bus_id", id.String()),
		)
		return nil, fmt.Errorf("find bus by ID %s: %w", id.String(), err)
	}

	return &bus, nil
}

func (r *busRepository) FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*entity.Bus, error) {
	query := `
		SELECT id, event_id, name, capacity, created_at, updated_at
		FROM buses
		WHERE event_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		r.log.Error("Failed to find buses by event ID",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return nil, fmt.Errorf("find buses by event ID %s: %w", eventID.String(), err)
	}
	defer rows.Close()

	var buses []*entity.Bus
	for rows.Next() {
		var bus entity.Bus
		err := rows.Scan(
			&bus.ID,
			&bus.EventID,
			&bus.Name,
			&bus.Capacity,
			&bus.CreatedAt,
			&bus.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan bus row", zap.Error(err))
			return nil, fmt.Errorf("scan bus row: %w", err)
		}
		buses = append(buses, &bus)
	}

	return buses, nil
}

func (r *busRepository) LockCapacity(ctx context.Context, q database.Querier, id uuid.UUID) (int, error) {
	query := `SELECT capacity FROM buses WHERE id = $1 FOR UPDATE`

	var capacity int
	err := q.QueryRow(ctx, query, id).Scan(&capacity)
	if err == pgx.ErrNoRows {
		return 0, fmt.Errorf("bus %s not found", id.String())
	}
	if err != nil {
		r.log.Error("Failed to lock bus row",
			zap.Error(err),
			zap.String("bus_id", id.String()),
		)
		return 0, fmt.Errorf("lock bus %s: %w", id.String(), err)
	}

	return capacity, nil
}
