package model

import "github.com/shopspring/decimal"

// Room occupancy states.  Status describes housekeeping state of the room
// itself; whether a date range is bookable is decided by reservation
// overlap, not by this field.
const (
	RoomAvailable   = "available"
	RoomOccupied    = "occupied"
	RoomMaintenance = "maintenance"
)

// RoomType is the catalog entity that owns nightly pricing.  Rooms inherit
// their price from the type; reservations snapshot it at booking time.
type RoomType struct {
	ID          uint64          `json:"id"`                // room_types.id
	Name        string          `json:"name"`              // room_types.name
	Description string          `json:"description"`       // room_types.description
	NightlyUSD  decimal.Decimal `json:"nightly_price_usd"` // room_types.nightly_price_usd
	NightlyBS   decimal.Decimal `json:"nightly_price_bs"`  // room_types.nightly_price_bs
	Active      bool            `json:"active"`            // room_types.active
}

// Room is a physical, bookable room.
type Room struct {
	ID         uint64 `json:"id"`           // rooms.id
	RoomTypeID uint64 `json:"room_type_id"` // rooms.room_type_id
	Number     string `json:"number"`       // rooms.number (unique)
	Floor      string `json:"floor"`        // rooms.floor
	Status     string `json:"status"`       // rooms.status
	Notes      string `json:"notes"`        // rooms.notes
}

// ValidRoomStatus reports whether s names a known room state.
func ValidRoomStatus(s string) bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance:
		return true
	}
	return false
}
