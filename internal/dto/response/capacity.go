package response

import "time"

type BusCapacityResponse struct {
	BusID          string `json:"bus_id"`
	Name           string `json:"name"`
	Capacity       int    `json:"capacity"`
	BookedSeats    int    `json:"booked_seats"`
	AvailableSeats int    `json:"available_seats"`
}

type EventCapacityResponse struct {
	EventID   string                `json:"event_id"`
	Name      string                `json:"name"`
	Departure time.Time             `json:"departure"`
	Buses     []BusCapacityResponse `json:"buses"`
}

type MemberCountResponse struct {
	Count int `json:"count"`
}
