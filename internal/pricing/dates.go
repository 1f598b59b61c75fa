// Package pricing holds the pure rules of the pricing-and-availability
// core: date-range validation, the half-open overlap test and the sale
// composer.  Nothing in this package touches the database; repositories
// and handlers feed it resolved data and persist its results.
package pricing

import (
	"errors"
	"time"
)

// DateLayout is the calendar-date wire format for check-in/check-out and
// exchange-rate dates.
const DateLayout = "2006-01-02"

// ErrInvalidDateRange is returned when a date cannot be parsed or when
// check-in is not strictly before check-out.  Availability fails closed on
// this error.
var ErrInvalidDateRange = errors.New("invalid date range")

// ParseDateRange parses check-in/check-out strings and enforces
// checkIn < checkOut.  The range is half-open: the checkout date itself is
// not occupied, so back-to-back stays are allowed.
func ParseDateRange(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := time.Parse(DateLayout, checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	out, err := time.Parse(DateLayout, checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	if !in.Before(out) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return in, out, nil
}

// Overlaps reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) share at least one night.  Equal boundary dates do not
// overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
