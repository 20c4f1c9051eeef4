package database

import (
	"context"
	"database/sql"
	"errors"
)

// EnsureSchema creates the events and reservations tables if they do not
// exist.  The signed BIGINT for available_seats is deliberate: the
// conditional decrement never lets it go negative, and a signed column
// surfaces accounting bugs as visible negatives instead of wrapping.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const events = `CREATE TABLE IF NOT EXISTS events (
	    event_id        VARCHAR(64)  NOT NULL,
	    name            VARCHAR(255) NOT NULL DEFAULT '',
	    total_seats     BIGINT       NOT NULL,
	    available_seats BIGINT       NOT NULL,
	    version         BIGINT       NOT NULL DEFAULT 0,
	    PRIMARY KEY (event_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`
	if _, err := db.ExecContext(ctx, events); err != nil {
		return err
	}

	const reservations = `CREATE TABLE IF NOT EXISTS reservations (
	    reservation_id VARCHAR(36) NOT NULL,
	    partner_id     VARCHAR(64) NOT NULL,
	    seats          BIGINT      NOT NULL,
	    status         ENUM('confirmed','cancelled') NOT NULL DEFAULT 'confirmed',
	    created_at     DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
	    updated_at     DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6) ON UPDATE CURRENT_TIMESTAMP(6),
	    PRIMARY KEY (reservation_id),
	    KEY idx_reservations_status (status),
	    KEY idx_reservations_created_at (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`
	_, err := db.ExecContext(ctx, reservations)
	return err
}

// SeedEvent inserts the tracked event row when it does not already
// exist.  An existing row is left untouched so restarts never clobber
// live pool state; the admin reset endpoint is the only way to
// reinitialize a seeded pool.
func SeedEvent(ctx context.Context, db *sql.DB, eventID, name string, total, available, version int64) error {
	var one int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM events WHERE event_id = ?`, eventID).Scan(&one)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	const ins = `INSERT INTO events (event_id, name, total_seats, available_seats, version)
	             VALUES (?, ?, ?, ?, ?)`
	_, err = db.ExecContext(ctx, ins, eventID, name, total, available, version)
	return err
}
