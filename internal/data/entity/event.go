package entity

import (
	"time"
)

// Event is an away-game trip. Rows are owned by the admin tooling and are
// read-only here; departure is fixed once created.
type Event struct {
	Base
	Name             string    `db:"name"`
	Departure        time.Time `db:"departure"`
	PriceDefault     int       `db:"price_default"`
	PriceMember      int       `db:"price_member"`
	PriceYouth       int       `db:"price_youth"`
	PriceYouthMember int       `db:"price_youth_member"`
}

// PriceFor returns the seat price for a (member, youth) flag combination.
func (e *Event) PriceFor(member, youth bool) int {
	switch {
	case youth && member:
		return e.PriceYouthMember
	case youth:
		return e.PriceYouth
	case member:
		return e.PriceMember
	default:
		return e.PriceDefault
	}
}
