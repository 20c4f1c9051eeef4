// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a reservation is successfully
// created.  It carries enough information for downstream consumers to log,
// notify, or feed analytics without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID  string `json:"reservation_id"`
	PartnerID      string `json:"partner_id"`
	EventID        string `json:"event_id"`
	Seats          int64  `json:"seats"`
	AvailableSeats int64  `json:"available_seats"`
	PoolVersion    int64  `json:"pool_version"`
	ConfirmedAt    string `json:"confirmed_at"`
}

// ReservationCancelledEvent is published when a confirmed reservation is
// cancelled and its seats have been credited back to the pool.
type ReservationCancelledEvent struct {
	ReservationID  string `json:"reservation_id"`
	PartnerID      string `json:"partner_id"`
	EventID        string `json:"event_id"`
	Seats          int64  `json:"seats"`
	AvailableSeats int64  `json:"available_seats"`
	PoolVersion    int64  `json:"pool_version"`
	CancelledAt    string `json:"cancelled_at"`
}
