package model

// Event is the seat pool for a single tracked event.  One row exists
// per event; seats are debited and credited exclusively through the
// repository's atomic operations.
//
// Fields:
//  EventID        – external identifier supplied at seeding time.
//  Name           – human readable event name.
//  TotalSeats     – capacity, immutable after seeding.
//  AvailableSeats – seats currently free; 0 <= AvailableSeats <= TotalSeats.
//  Version        – counter incremented by exactly 1 on every successful
//                   mutation of AvailableSeats.
type Event struct {
	EventID        string `json:"eventId"`        // events.event_id
	Name           string `json:"name"`           // events.name
	TotalSeats     int64  `json:"totalSeats"`     // events.total_seats
	AvailableSeats int64  `json:"availableSeats"` // events.available_seats
	Version        int64  `json:"version"`        // events.version
}
