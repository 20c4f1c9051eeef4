package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/event-seat-reservation/internal/model"
)

// ReservationRepo provides data access to the reservations table.  Each
// row is independently keyed by its reservation id, so creation and
// cancellation of different reservations never contend; concurrent
// cancels of the same reservation are serialized by the conditional
// status transition in CancelIfConfirmed.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// Create inserts a new reservation with status confirmed.  The caller
// supplies ReservationID, PartnerID and Seats; Status and CreatedAt are
// populated from the inserted row.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const ins = `INSERT INTO reservations (reservation_id, partner_id, seats, status)
	             VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, ins, res.ReservationID, res.PartnerID, res.Seats, model.StatusConfirmed); err != nil {
		return err
	}
	// Query back the row to populate DB-assigned defaults.
	const sel = `SELECT status, created_at FROM reservations WHERE reservation_id = ?`
	return r.db.QueryRowContext(ctx, sel, res.ReservationID).Scan(&res.Status, &res.CreatedAt)
}

// GetByID retrieves a reservation by its identifier.  It returns
// ErrReservationNotFound when no row exists.
func (r *ReservationRepo) GetByID(ctx context.Context, reservationID string) (*model.Reservation, error) {
	const q = `SELECT reservation_id, partner_id, seats, status, created_at
	           FROM reservations WHERE reservation_id = ?`
	var res model.Reservation
	err := r.db.QueryRowContext(ctx, q, reservationID).
		Scan(&res.ReservationID, &res.PartnerID, &res.Seats, &res.Status, &res.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

// CancelIfConfirmed transitions a reservation from confirmed to
// cancelled.  The status predicate lives in the WHERE clause, so of two
// concurrent cancels for the same id exactly one observes confirmed and
// wins; the loser, like a lookup of an unknown id, gets
// ErrReservationNotFound.  The transition is one-way and never re-enters
// confirmed.
func (r *ReservationRepo) CancelIfConfirmed(ctx context.Context, reservationID string) error {
	const q = `UPDATE reservations
	           SET status = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE reservation_id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, model.StatusCancelled, reservationID, model.StatusConfirmed)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// CountByStatus returns the number of reservations currently in the
// given status.  The summary endpoint uses it to report the live
// confirmed count independently of the pool's bookkeeping.
func (r *ReservationRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	const q = `SELECT COUNT(*) FROM reservations WHERE status = ?`
	var n int64
	if err := r.db.QueryRowContext(ctx, q, status).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// List returns reservations ordered by creation time descending (newest
// first).  When statusFilter is non-empty only reservations in that
// status are returned.  An empty result yields an empty slice, not nil.
func (r *ReservationRepo) List(ctx context.Context, statusFilter string) ([]model.Reservation, error) {
	q := `SELECT reservation_id, partner_id, seats, status, created_at
	      FROM reservations`
	args := make([]interface{}, 0, 1)
	if statusFilter != "" {
		q += ` WHERE status = ?`
		args = append(args, statusFilter)
	}
	q += ` ORDER BY created_at DESC, reservation_id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		var createdAt time.Time
		if err := rows.Scan(&res.ReservationID, &res.PartnerID, &res.Seats, &res.Status, &createdAt); err != nil {
			return nil, err
		}
		res.CreatedAt = createdAt.UTC()
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteAllTx removes every reservation within the provided transaction.
// It exists solely for the admin reset flow; the caller must commit or
// roll back together with EventRepo.ResetTx.
func (r *ReservationRepo) DeleteAllTx(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM reservations`)
	return err
}
