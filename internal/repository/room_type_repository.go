package repository

import (
	"context"
	"database/sql"

	"github.com/enmanuellle/lemahotelreservas/internal/model"
)

// RoomTypeRepo provides persistence for room types, the catalog entities
// that own nightly pricing.
type RoomTypeRepo struct {
	db *sql.DB
}

// NewRoomTypeRepo returns a RoomTypeRepo bound to the given database.
func NewRoomTypeRepo(db *sql.DB) *RoomTypeRepo { return &RoomTypeRepo{db: db} }

const roomTypeColumns = "id, name, description, nightly_price_usd, nightly_price_bs, active"

func scanRoomType(s interface{ Scan(...interface{}) error }) (model.RoomType, error) {
	var rt model.RoomType
	var desc sql.NullString
	err := s.Scan(&rt.ID, &rt.Name, &desc, &rt.NightlyUSD, &rt.NightlyBS, &rt.Active)
	rt.Description = desc.String
	return rt, err
}

// Create inserts a room type with both currency prices already computed by
// the caller using the rate active at this moment.
func (r *RoomTypeRepo) Create(ctx context.Context, rt *model.RoomType) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO room_types (name, description, nightly_price_usd, nightly_price_bs, active)
		 VALUES (?, ?, ?, ?, ?)`,
		rt.Name, rt.Description, rt.NightlyUSD, rt.NightlyBS, rt.Active)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rt.ID = uint64(id)
	return nil
}

// Update rewrites a room type.  It returns sql.ErrNoRows when the id does
// not exist.
func (r *RoomTypeRepo) Update(ctx context.Context, rt *model.RoomType) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE room_types SET name = ?, description = ?, nightly_price_usd = ?,
		        nightly_price_bs = ?, active = ? WHERE id = ?`,
		rt.Name, rt.Description, rt.NightlyUSD, rt.NightlyBS, rt.Active, rt.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Verify existence: zero rows can also mean a no-op update.
		var id uint64
		if err := r.db.QueryRowContext(ctx, "SELECT id FROM room_types WHERE id = ?", rt.ID).Scan(&id); err != nil {
			return err
		}
	}
	return nil
}

// GetByID fetches one room type; sql.ErrNoRows when absent.
func (r *RoomTypeRepo) GetByID(ctx context.Context, id uint64) (model.RoomType, error) {
	const q = `SELECT ` + roomTypeColumns + ` FROM room_types WHERE id = ?`
	return scanRoomType(r.db.QueryRowContext(ctx, q, id))
}

// List returns all room types ordered by name.
func (r *RoomTypeRepo) List(ctx context.Context) ([]model.RoomType, error) {
	const q = `SELECT ` + roomTypeColumns + ` FROM room_types ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.RoomType, 0)
	for rows.Next() {
		rt, err := scanRoomType(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}
