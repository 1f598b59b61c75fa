// Package repository implements data access on plain database/sql.  Each
// repository owns the SQL for one aggregate; methods suffixed Tx run inside
// a caller-managed transaction.  Sentinel errors below let handlers map
// failures to HTTP statuses with errors.Is.
package repository

import (
	"errors"
	"strings"
)

// ErrNoActiveRate is returned when the exchange-rate ledger holds no active
// record.  Every price-bearing operation is a precondition failure without
// a current rate.
var ErrNoActiveRate = errors.New("no active exchange rate")

// ErrDuplicateRateDate is returned when registering a rate for a date that
// already has a ledger record.
var ErrDuplicateRateDate = errors.New("exchange rate already registered for date")

// ErrNoPriceDefined is returned when a room's type has no usable nightly
// price (absent or not positive).
var ErrNoPriceDefined = errors.New("room type has no price defined")

// ErrRoomUnavailable is returned when a reservation's date range conflicts
// with an existing non-cancelled reservation for the same room.
var ErrRoomUnavailable = errors.New("room unavailable for date range")

// ErrDuplicateEntry is returned when a unique column (room number, client
// document, username, email) would be violated.
var ErrDuplicateEntry = errors.New("duplicate entry")

// isDuplicateKey reports whether err is a MySQL duplicate-key failure
// (error 1062).  The driver surfaces it only through the message text.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
