package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseDateRange(t *testing.T) {
	in, out, err := ParseDateRange("2026-03-10", "2026-03-12")
	require.NoError(t, err)
	assert.Equal(t, day("2026-03-10"), in)
	assert.Equal(t, day("2026-03-12"), out)
}

func TestParseDateRangeRejectsBadInput(t *testing.T) {
	cases := []struct {
		name    string
		in, out string
	}{
		{"equal dates", "2026-03-10", "2026-03-10"},
		{"reversed", "2026-03-12", "2026-03-10"},
		{"garbage check_in", "10/03/2026", "2026-03-12"},
		{"garbage check_out", "2026-03-10", "soon"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParseDateRange(tc.in, tc.out)
			assert.ErrorIs(t, err, ErrInvalidDateRange)
		})
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"identical", "2026-03-10", "2026-03-12", "2026-03-10", "2026-03-12", true},
		{"partial overlap", "2026-03-10", "2026-03-13", "2026-03-12", "2026-03-15", true},
		{"contained", "2026-03-10", "2026-03-20", "2026-03-12", "2026-03-14", true},
		{"one shared night", "2026-03-10", "2026-03-12", "2026-03-11", "2026-03-14", true},
		{"back to back", "2026-03-10", "2026-03-12", "2026-03-12", "2026-03-14", false},
		{"back to back reversed", "2026-03-12", "2026-03-14", "2026-03-10", "2026-03-12", false},
		{"disjoint", "2026-03-01", "2026-03-05", "2026-03-10", "2026-03-12", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(day(tc.aStart), day(tc.aEnd), day(tc.bStart), day(tc.bEnd))
			assert.Equal(t, tc.want, got)
			// Overlap is symmetric.
			assert.Equal(t, tc.want, Overlaps(day(tc.bStart), day(tc.bEnd), day(tc.aStart), day(tc.aEnd)))
		})
	}
}
