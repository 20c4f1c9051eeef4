package handler

import (
	"context"

	"github.com/iliyamo/event-seat-reservation/internal/model"
	"github.com/iliyamo/event-seat-reservation/internal/queue"
)

// EventStore is the seat-pool contract the reservation handler depends
// on.  It is satisfied by repository.EventRepo; tests substitute an
// in-memory implementation.  TryReserve must perform its sufficiency
// check and decrement as one atomic step against concurrent callers.
type EventStore interface {
	TryReserve(ctx context.Context, eventID string, n int64) (*model.Event, error)
	Credit(ctx context.Context, eventID string, n int64) (*model.Event, error)
	GetByID(ctx context.Context, eventID string) (*model.Event, error)
}

// ReservationStore is the ledger-record contract the reservation handler
// depends on, satisfied by repository.ReservationRepo.  CancelIfConfirmed
// must transition status only when it is currently confirmed, so that of
// two racing cancels exactly one succeeds.
type ReservationStore interface {
	Create(ctx context.Context, res *model.Reservation) error
	GetByID(ctx context.Context, reservationID string) (*model.Reservation, error)
	CancelIfConfirmed(ctx context.Context, reservationID string) error
	CountByStatus(ctx context.Context, status string) (int64, error)
	List(ctx context.Context, statusFilter string) ([]model.Reservation, error)
}

// Publisher emits reservation lifecycle events to the message broker.
// Publishing is best effort; handlers log failures and continue.
type Publisher interface {
	PublishReservationConfirmed(ctx context.Context, ev queue.ReservationConfirmedEvent) error
	PublishReservationCancelled(ctx context.Context, ev queue.ReservationCancelledEvent) error
}
