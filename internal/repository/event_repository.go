package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-seat-reservation/internal/model"
)

// EventRepo provides data access to the events table, which holds one
// seat-pool row per tracked event.  Available seats are mutated only
// through TryReserve and Credit; both bump the version column by exactly
// one so that every successful mutation is observable.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions
// spanning multiple repositories (admin reset).
func (r *EventRepo) DB() *sql.DB { return r.db }

// TryReserve atomically debits n seats from the pool identified by
// eventID.  The sufficiency check and the decrement are a single UPDATE
// whose WHERE clause carries the predicate, so no interleaving of
// concurrent callers can debit past zero; the database either applies
// the whole mutation or leaves the row untouched.
//
// On success the post-update pool state is read back inside the same
// transaction and returned.  When the predicate fails it returns
// ErrInsufficientSeats, or ErrEventNotFound if no such pool exists.
// Neither failure mutates state.
func (r *EventRepo) TryReserve(ctx context.Context, eventID string, n int64) (*model.Event, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const upd = `UPDATE events
	             SET available_seats = available_seats - ?, version = version + 1
	             WHERE event_id = ? AND available_seats >= ?`
	res, err := tx.ExecContext(ctx, upd, n, eventID, n)
	if err != nil {
		return nil, err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		// Distinguish a missing pool from an exhausted one.
		var one int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM events WHERE event_id = ?`, eventID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		if err != nil {
			return nil, err
		}
		return nil, ErrInsufficientSeats
	}

	ev, err := scanEventTx(ctx, tx, eventID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return ev, nil
}

// Credit atomically returns n seats to the pool.  No upper-bound check
// is applied here; the reservation handler is the sole caller and only
// credits a seat count taken from a record it has just transitioned out
// of confirmed, which guarantees available_seats never exceeds
// total_seats.  Returns ErrEventNotFound when the pool does not exist.
func (r *EventRepo) Credit(ctx context.Context, eventID string, n int64) (*model.Event, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const upd = `UPDATE events
	             SET available_seats = available_seats + ?, version = version + 1
	             WHERE event_id = ?`
	res, err := tx.ExecContext(ctx, upd, n, eventID)
	if err != nil {
		return nil, err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, ErrEventNotFound
	}

	ev, err := scanEventTx(ctx, tx, eventID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return ev, nil
}

// GetByID retrieves the current pool state for an event.  It returns
// ErrEventNotFound when no row exists.
func (r *EventRepo) GetByID(ctx context.Context, eventID string) (*model.Event, error) {
	const q = `SELECT event_id, name, total_seats, available_seats, version
	           FROM events WHERE event_id = ?`
	var ev model.Event
	err := r.db.QueryRowContext(ctx, q, eventID).
		Scan(&ev.EventID, &ev.Name, &ev.TotalSeats, &ev.AvailableSeats, &ev.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &ev, nil
}

// ResetTx restores the pool row to the supplied seed values within the
// scope of an existing transaction.  It is used only by the admin reset
// flow together with ReservationRepo.DeleteAllTx; the caller must commit
// or roll back.  Returns ErrEventNotFound when the pool does not exist.
func (r *EventRepo) ResetTx(ctx context.Context, tx *sql.Tx, eventID string, total, available, version int64) error {
	const q = `UPDATE events
	           SET total_seats = ?, available_seats = ?, version = ?
	           WHERE event_id = ?`
	res, err := tx.ExecContext(ctx, q, total, available, version, eventID)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrEventNotFound
	}
	return nil
}

// scanEventTx reads the pool row inside a transaction so the returned
// state is exactly the committed result of the caller's mutation.
func scanEventTx(ctx context.Context, tx *sql.Tx, eventID string) (*model.Event, error) {
	const q = `SELECT event_id, name, total_seats, available_seats, version
	           FROM events WHERE event_id = ?`
	var ev model.Event
	err := tx.QueryRowContext(ctx, q, eventID).
		Scan(&ev.EventID, &ev.Name, &ev.TotalSeats, &ev.AvailableSeats, &ev.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &ev, nil
}
