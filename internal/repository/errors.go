// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrInsufficientSeats is the expected contention outcome of a
// reservation attempt against a nearly sold-out pool, while
// ErrReservationNotFound covers both unknown and already-cancelled
// reservation identifiers.
package repository

import "errors"

// ErrEventNotFound is returned when no seat pool exists for the
// requested event id. Handlers should translate this into an HTTP 404
// response.
var ErrEventNotFound = errors.New("event not found")

// ErrInsufficientSeats is returned when the pool holds fewer available
// seats than requested. It is an expected, non-exceptional outcome and
// never mutates state. Handlers should translate this into an HTTP 409
// response; retry policy belongs to the caller.
var ErrInsufficientSeats = errors.New("insufficient seats")

// ErrReservationNotFound is returned when a reservation does not exist
// or has already reached its terminal cancelled state. Handlers should
// translate this into an HTTP 404 response.
var ErrReservationNotFound = errors.New("reservation not found")
