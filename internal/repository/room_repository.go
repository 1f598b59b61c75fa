package repository

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/enmanuellle/lemahotelreservas/internal/model"
)

// RoomRepo provides persistence for rooms.  Rooms carry occupancy state
// only; their pricing lives on the owning room type.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomColumns = "id, room_type_id, number, floor, status, notes"

func scanRoom(s interface{ Scan(...interface{}) error }) (model.Room, error) {
	var rm model.Room
	var floor, notes sql.NullString
	err := s.Scan(&rm.ID, &rm.RoomTypeID, &rm.Number, &floor, &rm.Status, &notes)
	rm.Floor = floor.String
	rm.Notes = notes.String
	return rm, err
}

// Create inserts a room.  A duplicate room number returns ErrDuplicateEntry.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO rooms (room_type_id, number, floor, status, notes) VALUES (?, ?, ?, ?, ?)",
		rm.RoomTypeID, rm.Number, rm.Floor, rm.Status, rm.Notes)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateEntry
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rm.ID = uint64(id)
	return nil
}

// Update rewrites a room.
func (r *RoomRepo) Update(ctx context.Context, rm *model.Room) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE rooms SET room_type_id = ?, number = ?, floor = ?, status = ?, notes = ? WHERE id = ?",
		rm.RoomTypeID, rm.Number, rm.Floor, rm.Status, rm.Notes, rm.ID)
	if isDuplicateKey(err) {
		return ErrDuplicateEntry
	}
	return err
}

// GetByID fetches one room; sql.ErrNoRows when absent.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
	return scanRoom(r.db.QueryRowContext(ctx, q, id))
}

// NightlyPriceTx resolves the nightly USD price of the room's type inside a
// transaction.  It returns sql.ErrNoRows when the room does not exist and
// ErrNoPriceDefined when the type's price is absent or not positive.
func (r *RoomRepo) NightlyPriceTx(ctx context.Context, tx *sql.Tx, roomID uint64) (decimal.Decimal, error) {
	const q = `SELECT rt.nightly_price_usd
	           FROM rooms r
	           JOIN room_types rt ON rt.id = r.room_type_id
	           WHERE r.id = ?`
	var usd decimal.NullDecimal
	if err := tx.QueryRowContext(ctx, q, roomID).Scan(&usd); err != nil {
		return decimal.Zero, err
	}
	if !usd.Valid || !usd.Decimal.IsPositive() {
		return decimal.Zero, ErrNoPriceDefined
	}
	return usd.Decimal, nil
}

// List returns all rooms ordered by number.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms ORDER BY number`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Room, 0)
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}
