package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestConvertRoundsToStoragePrecision(t *testing.T) {
	cases := []struct {
		name string
		usd  string
		rate string
		want string
	}{
		{"whole amounts", "100", "36.5", "3650"},
		{"rounding up", "19.99", "36.123", "722.1"},
		{"rounding half away from zero", "0.25", "36.1", "9.03"},
		{"zero amount", "0", "40", "0"},
		{"zero rate", "120.50", "0", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Convert(d(tc.usd), d(tc.rate))
			assert.True(t, d(tc.want).Equal(got), "got %s, want %s", got, tc.want)
		})
	}
}

func TestConvertNeverChangesUSDInput(t *testing.T) {
	usd := d("10.555")
	_ = Convert(usd, d("36.5"))
	assert.True(t, d("10.555").Equal(usd))
}

// Re-deriving a Bs amount from the same USD source and rate must reproduce
// it exactly, which is what makes the bulk reprice pass safe to re-run.
func TestConvertIsDeterministic(t *testing.T) {
	usd, rate := d("19.99"), d("36.123")
	first := Convert(usd, rate)
	assert.True(t, first.Equal(Convert(usd, rate)))
}
