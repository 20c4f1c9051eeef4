package model

import "time"

// Reservation status values.  A reservation begins confirmed and may
// transition to cancelled at most once; cancelled is terminal.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Reservation records the outcome of one allocation attempt against the
// event's seat pool.  Its seat count was debited from the pool when the
// record was created and is credited back exactly once if the
// reservation is cancelled.
//
// Fields:
//  ReservationID – globally unique identifier (UUID v4), immutable.
//  PartnerID     – opaque caller identifier, immutable.
//  Seats         – number of seats held, immutable after creation.
//  Status        – confirmed or cancelled, one-way transition.
//  CreatedAt     – creation timestamp.
type Reservation struct {
	ReservationID string    `json:"reservationId"` // reservations.reservation_id
	PartnerID     string    `json:"partnerId"`     // reservations.partner_id
	Seats         int64     `json:"seats"`         // reservations.seats
	Status        string    `json:"status"`        // reservations.status
	CreatedAt     time.Time `json:"createdAt"`     // reservations.created_at
}
