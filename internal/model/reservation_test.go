package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidReservationTransition(t *testing.T) {
	cases := []struct {
		name     string
		from, to string
		want     bool
	}{
		{"confirmed to checked_in", ReservationConfirmed, ReservationCheckedIn, true},
		{"checked_in to checked_out", ReservationCheckedIn, ReservationCheckedOut, true},
		{"confirmed to cancelled", ReservationConfirmed, ReservationCancelled, true},
		{"checked_in to cancelled", ReservationCheckedIn, ReservationCancelled, true},
		{"cancel is idempotent", ReservationCancelled, ReservationCancelled, true},
		{"same state is a no-op", ReservationCheckedOut, ReservationCheckedOut, true},

		{"checked_out is terminal for cancel", ReservationCheckedOut, ReservationCancelled, false},
		{"checked_out cannot be resurrected", ReservationCheckedOut, ReservationConfirmed, false},
		{"cancelled cannot be resurrected", ReservationCancelled, ReservationConfirmed, false},
		{"cancelled cannot check in", ReservationCancelled, ReservationCheckedIn, false},
		{"no skipping to checked_out", ReservationConfirmed, ReservationCheckedOut, false},
		{"no moving backwards", ReservationCheckedIn, ReservationConfirmed, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidReservationTransition(tc.from, tc.to))
		})
	}
}
