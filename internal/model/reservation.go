package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reservation states.  A reservation moves confirmed -> checked_in ->
// checked_out, or to cancelled from any non-terminal state.  Cancelled
// reservations never count against room availability.
const (
	ReservationConfirmed  = "confirmed"
	ReservationCheckedIn  = "checked_in"
	ReservationCheckedOut = "checked_out"
	ReservationCancelled  = "cancelled"
)

// Reservation books a room for a half-open date range [CheckIn, CheckOut).
// The nightly price is a snapshot taken from the room type's catalog price
// at creation or last edit — not a live reference, so historical records
// stay stable when the catalog or the exchange rate moves later.
type Reservation struct {
	ID         uint64          `json:"id"`                // reservations.id
	ClientID   uint64          `json:"client_id"`         // reservations.client_id
	RoomID     uint64          `json:"room_id"`           // reservations.room_id
	StaffID    uint64          `json:"staff_id"`          // reservations.staff_id
	CheckIn    time.Time       `json:"check_in"`          // reservations.check_in (DATE)
	CheckOut   time.Time       `json:"check_out"`         // reservations.check_out (DATE)
	Status     string          `json:"status"`            // reservations.status
	Notes      string          `json:"notes"`             // reservations.notes
	NightlyUSD decimal.Decimal `json:"nightly_price_usd"` // reservations.nightly_price_usd
	NightlyBS  decimal.Decimal `json:"nightly_price_bs"`  // reservations.nightly_price_bs
	CreatedAt  time.Time       `json:"created_at"`        // reservations.created_at
}

// ValidReservationStatus reports whether s names a known reservation state.
func ValidReservationStatus(s string) bool {
	switch s {
	case ReservationConfirmed, ReservationCheckedIn, ReservationCheckedOut, ReservationCancelled:
		return true
	}
	return false
}

// ValidReservationTransition reports whether a reservation may move from
// one state to another.  The machine is linear with cancellation as an
// exit from any non-terminal state; checked_out and cancelled are terminal.
// Keeping the current state is always allowed, which makes cancelling an
// already cancelled reservation a no-op.
func ValidReservationTransition(from, to string) bool {
	if from == to {
		return true
	}
	switch from {
	case ReservationConfirmed:
		return to == ReservationCheckedIn || to == ReservationCancelled
	case ReservationCheckedIn:
		return to == ReservationCheckedOut || to == ReservationCancelled
	}
	return false
}
