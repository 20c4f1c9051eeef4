package handler

import (
	"errors"   // errors.Is comparisons against repository sentinels
	"net/http" // HTTP status codes
	"strings"  // input trimming
	"time"     // event timestamps

	"github.com/google/uuid"      // reservation identifiers
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/event-seat-reservation/internal/model"
	"github.com/iliyamo/event-seat-reservation/internal/queue"
	"github.com/iliyamo/event-seat-reservation/internal/repository"
)

// ReservationHandler orchestrates the seat pool and the reservation
// ledger.  A reserve debits the pool first and records the reservation
// second; a cancel transitions the record first and credits the pool
// second.  The two steps of each flow commit independently: a crash
// between them leaves the pool short by the in-flight seats, which is an
// accepted trade-off recoverable via the admin reset.  The pool is never
// oversold regardless of where a failure lands.
type ReservationHandler struct {
	Events       EventStore       // seat pool operations
	Reservations ReservationStore // ledger records
	Pub          Publisher        // broker publisher; may be nil
	EventID      string           // pool identity, fixed at startup
	MinSeats     int64            // lower bound on seats per request
	LimitPerRes  int64            // upper bound on seats per request
}

// NewReservationHandler constructs a ReservationHandler.  Events and
// Reservations must be non-nil; Pub may be nil to disable publishing.
func NewReservationHandler(events EventStore, reservations ReservationStore, pub Publisher, eventID string, minSeats, limitPerRes int64) *ReservationHandler {
	if events == nil || reservations == nil {
		panic("nil store passed to NewReservationHandler")
	}
	return &ReservationHandler{
		Events:       events,
		Reservations: reservations,
		Pub:          pub,
		EventID:      eventID,
		MinSeats:     minSeats,
		LimitPerRes:  limitPerRes,
	}
}

// Reserve handles POST /api/reservations.  The request body must contain
// a partnerId and a seats count within the configured bounds.  The seat
// debit is a single conditional update at the storage layer, so
// concurrent requests can never jointly oversell the pool; when the pool
// cannot cover the request the handler returns 409 without creating a
// record.  On success it returns 201 with the new reservation's id,
// seat count and status.
func (h *ReservationHandler) Reserve(c echo.Context) error {
	var body struct {
		PartnerID string `json:"partnerId"`
		Seats     int64  `json:"seats"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.PartnerID = strings.TrimSpace(body.PartnerID)
	if body.PartnerID == "" || body.Seats < h.MinSeats || body.Seats > h.LimitPerRes {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat request"})
	}

	ctx := c.Request().Context()
	ev, err := h.Events.TryReserve(ctx, h.EventID, body.Seats)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientSeats) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "not enough seats left"})
		}
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	res := &model.Reservation{
		ReservationID: uuid.NewString(),
		PartnerID:     body.PartnerID,
		Seats:         body.Seats,
		Status:        model.StatusConfirmed,
	}
	if err := h.Reservations.Create(ctx, res); err != nil {
		// The pool is already debited; hand the seats back so a failed
		// insert has no lasting effect.  If the credit fails too the
		// pool stays short until an admin reset.
		if _, cErr := h.Events.Credit(ctx, h.EventID, body.Seats); cErr != nil {
			c.Logger().Errorf("reserve: compensating credit failed for event %s: %v", h.EventID, cErr)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	if h.Pub != nil {
		_ = h.Pub.PublishReservationConfirmed(ctx, queue.ReservationConfirmedEvent{
			ReservationID:  res.ReservationID,
			PartnerID:      res.PartnerID,
			EventID:        ev.EventID,
			Seats:          res.Seats,
			AvailableSeats: ev.AvailableSeats,
			PoolVersion:    ev.Version,
			ConfirmedAt:    time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"reservationId": res.ReservationID,
		"seats":         res.Seats,
		"status":        res.Status,
	})
}

// Cancel handles DELETE /api/reservations/:id.  An unknown id and an
// already-cancelled reservation both yield 404; cancellation is not
// idempotent.  The conditional status transition is the serialization
// point for racing cancels on the same record: only the winner proceeds
// to credit the pool, so seats are credited back exactly once.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx := c.Request().Context()
	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	if res.Status == model.StatusCancelled {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}

	if err := h.Reservations.CancelIfConfirmed(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			// Another cancel won the race between our lookup and the
			// transition; treat it the same as an unknown id.
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	ev, err := h.Events.Credit(ctx, h.EventID, res.Seats)
	if err != nil {
		// The record is cancelled but the pool was not credited; the
		// seats stay debited until an admin reset.  Never oversold.
		c.Logger().Errorf("cancel: credit failed for event %s: %v", h.EventID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	if h.Pub != nil {
		_ = h.Pub.PublishReservationCancelled(ctx, queue.ReservationCancelledEvent{
			ReservationID:  res.ReservationID,
			PartnerID:      res.PartnerID,
			EventID:        ev.EventID,
			Seats:          res.Seats,
			AvailableSeats: ev.AvailableSeats,
			PoolVersion:    ev.Version,
			CancelledAt:    time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.NoContent(http.StatusNoContent)
}

// Summary handles GET /api/reservations.  It reports the current pool
// state alongside a live count of confirmed reservations.  The two reads
// are independent and unlocked, so they may disagree while a reserve or
// cancel is between its two steps; at any quiescent instant they satisfy
// availableSeats + sum(confirmed seats) == totalSeats.
func (h *ReservationHandler) Summary(c echo.Context) error {
	ctx := c.Request().Context()
	ev, err := h.Events.GetByID(ctx, h.EventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	count, err := h.Reservations.CountByStatus(ctx, model.StatusConfirmed)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"eventId":          ev.EventID,
		"name":             ev.Name,
		"totalSeats":       ev.TotalSeats,
		"availableSeats":   ev.AvailableSeats,
		"reservationCount": count,
		"version":          ev.Version,
	})
}

// List handles GET /api/reservations/all.  Reservations are returned
// newest first.  The optional ?status= query parameter restricts the
// result to confirmed or cancelled records; an unrecognized value simply
// matches nothing.
func (h *ReservationHandler) List(c echo.Context) error {
	status := strings.TrimSpace(c.QueryParam("status"))
	items, err := h.Reservations.List(c.Request().Context(), status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":        len(items),
		"reservations": items,
	})
}
