package entity

import "github.com/google/uuid"

// Bus belongs to exactly one Event. Capacity is hard for paid seats only;
// provisional signups may temporarily exceed it (see the signup re-check).
type Bus struct {
	Base
	EventID  uuid.UUID `db:"event_id"`
	Name     string    `db:"name"`
	Capacity int       `db:"capacity"`
}
