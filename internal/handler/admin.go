package handler

import (
	"crypto/subtle" // constant-time secret comparison
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-seat-reservation/internal/repository"
)

// AdminHandler implements the operational reset endpoint.  It works on
// the concrete repositories because the reset must delete every
// reservation and restore the pool row inside one database transaction.
// The x-admin-secret header check is a plain shared-secret gate.
type AdminHandler struct {
	EventRepo       *repository.EventRepo
	ReservationRepo *repository.ReservationRepo
	Secret          string // value the x-admin-secret header must match
	EventID         string // pool to reset
	TotalSeats      int64  // seed capacity restored on reset
	AvailableSeats  int64  // seed availability restored on reset
	Version         int64  // seed version restored on reset
}

// NewAdminHandler constructs an AdminHandler from the seed configuration.
func NewAdminHandler(eventRepo *repository.EventRepo, reservationRepo *repository.ReservationRepo, secret, eventID string, total, available, version int64) *AdminHandler {
	return &AdminHandler{
		EventRepo:       eventRepo,
		ReservationRepo: reservationRepo,
		Secret:          secret,
		EventID:         eventID,
		TotalSeats:      total,
		AvailableSeats:  available,
		Version:         version,
	}
}

// Reset handles POST /api/admin/reset.  It deletes all reservations and
// restores the event row to its seed values in a single transaction, so
// a failed reset leaves prior state intact.  Requests without the
// correct x-admin-secret header are rejected with 403.
func (h *AdminHandler) Reset(c echo.Context) error {
	secret := c.Request().Header.Get("x-admin-secret")
	if secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(h.Secret)) != 1 {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "unauthorized reset attempt"})
	}

	ctx := c.Request().Context()
	tx, err := h.EventRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.ReservationRepo.DeleteAllTx(ctx, tx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	if err := h.EventRepo.ResetTx(ctx, tx, h.EventID, h.TotalSeats, h.AvailableSeats, h.Version); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	committed = true

	return c.JSON(http.StatusOK, echo.Map{
		"message":        "event and reservations reset successfully",
		"totalSeats":     h.TotalSeats,
		"availableSeats": h.AvailableSeats,
		"version":        h.Version,
	})
}
