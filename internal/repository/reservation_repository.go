package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/enmanuellle/lemahotelreservas/internal/model"
	"github.com/enmanuellle/lemahotelreservas/internal/pricing"
)

// ReservationRepo provides persistence for reservations.  The availability
// check and the insert/update that depends on it always run inside one
// transaction: the conflict query locks matching rows (FOR UPDATE) so two
// concurrent requests cannot both pass the check and both insert.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle for transaction-spanning workflows.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationColumns = `id, client_id, room_id, staff_id, check_in, check_out,
       status, notes, nightly_price_usd, nightly_price_bs, created_at`

func scanReservation(s interface{ Scan(...interface{}) error }) (model.Reservation, error) {
	var res model.Reservation
	var notes sql.NullString
	err := s.Scan(&res.ID, &res.ClientID, &res.RoomID, &res.StaffID, &res.CheckIn, &res.CheckOut,
		&res.Status, &notes, &res.NightlyUSD, &res.NightlyBS, &res.CreatedAt)
	res.Notes = notes.String
	return res, err
}

// HasConflictTx reports whether a non-cancelled reservation for the room
// overlaps the half-open range [checkIn, checkOut).  Rows considered are
// locked for the duration of the transaction.  excludeID, when non-zero,
// skips one reservation — used when re-validating an edit against itself.
func (r *ReservationRepo) HasConflictTx(ctx context.Context, tx *sql.Tx, roomID uint64, checkIn, checkOut time.Time, excludeID uint64) (bool, error) {
	q := `SELECT COUNT(*) FROM reservations
	      WHERE room_id = ? AND status <> ?
	        AND check_in < ? AND check_out > ?`
	args := []interface{}{roomID, model.ReservationCancelled,
		checkOut.Format(pricing.DateLayout), checkIn.Format(pricing.DateLayout)}
	if excludeID != 0 {
		q += " AND id <> ?"
		args = append(args, excludeID)
	}
	q += " FOR UPDATE"
	var n int
	if err := tx.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateTx inserts a reservation within an existing transaction and reads
// the full row back to populate defaults.  The caller commits or rolls back.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	result, err := tx.ExecContext(ctx,
		`INSERT INTO reservations
		 (client_id, room_id, staff_id, check_in, check_out, status, notes, nightly_price_usd, nightly_price_bs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.ClientID, res.RoomID, res.StaffID,
		res.CheckIn.Format(pricing.DateLayout), res.CheckOut.Format(pricing.DateLayout),
		res.Status, res.Notes, res.NightlyUSD, res.NightlyBS)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	const sel = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	got, err := scanReservation(tx.QueryRowContext(ctx, sel, res.ID))
	if err != nil {
		return err
	}
	*res = got
	return nil
}

// UpdateTx rewrites a reservation within an existing transaction.
func (r *ReservationRepo) UpdateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE reservations SET client_id = ?, room_id = ?, staff_id = ?, check_in = ?,
		        check_out = ?, status = ?, notes = ?, nightly_price_usd = ?, nightly_price_bs = ?
		 WHERE id = ?`,
		res.ClientID, res.RoomID, res.StaffID,
		res.CheckIn.Format(pricing.DateLayout), res.CheckOut.Format(pricing.DateLayout),
		res.Status, res.Notes, res.NightlyUSD, res.NightlyBS, res.ID)
	return err
}

// GetByID fetches one reservation; sql.ErrNoRows when absent.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	return scanReservation(r.db.QueryRowContext(ctx, q, id))
}

// GetByIDTx fetches one reservation inside a transaction, locking the row.
func (r *ReservationRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ? FOR UPDATE`
	return scanReservation(tx.QueryRowContext(ctx, q, id))
}

// List returns all reservations, newest first.
func (r *ReservationRepo) List(ctx context.Context) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// SetStatus moves a reservation to a new state.  It returns sql.ErrNoRows
// when the reservation does not exist.
func (r *ReservationRepo) SetStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE reservations SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists uint64
		if err := r.db.QueryRowContext(ctx, "SELECT id FROM reservations WHERE id = ?", id).Scan(&exists); err != nil {
			return err
		}
	}
	return nil
}
