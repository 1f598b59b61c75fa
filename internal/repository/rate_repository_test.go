package repository

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enmanuellle/lemahotelreservas/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func ledgerRate(id uint64, date string, active bool) model.ExchangeRate {
	return model.ExchangeRate{
		ID:            id,
		EffectiveDate: day(date),
		Rate:          decimal.NewFromInt(int64(30 + id)),
		Active:        active,
	}
}

func TestNewerRateOrdering(t *testing.T) {
	cases := []struct {
		name  string
		a, b  model.ExchangeRate
		newer bool
	}{
		{"later date wins", ledgerRate(1, "2026-02-01", true), ledgerRate(2, "2026-01-01", true), true},
		{"earlier date loses", ledgerRate(5, "2026-01-01", true), ledgerRate(1, "2026-02-01", true), false},
		{"same date, higher id wins", ledgerRate(7, "2026-01-15", true), ledgerRate(3, "2026-01-15", true), true},
		{"same date, lower id loses", ledgerRate(3, "2026-01-15", true), ledgerRate(7, "2026-01-15", true), false},
		{"identical record is not newer than itself", ledgerRate(4, "2026-01-15", true), ledgerRate(4, "2026-01-15", true), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.newer, newerRate(tc.a, tc.b))
		})
	}
}

func TestCurrentOf(t *testing.T) {
	t.Run("empty ledger", func(t *testing.T) {
		_, ok := CurrentOf(nil)
		assert.False(t, ok)
	})

	t.Run("all inactive", func(t *testing.T) {
		_, ok := CurrentOf([]model.ExchangeRate{
			ledgerRate(1, "2026-01-01", false),
			ledgerRate(2, "2026-01-02", false),
		})
		assert.False(t, ok)
	})

	t.Run("greatest effective date wins regardless of order", func(t *testing.T) {
		ledger := []model.ExchangeRate{
			ledgerRate(3, "2026-01-10", true),
			ledgerRate(1, "2026-01-20", true),
			ledgerRate(2, "2026-01-05", true),
		}
		er, ok := CurrentOf(ledger)
		require.True(t, ok)
		assert.Equal(t, uint64(1), er.ID)
	})

	t.Run("inactive record never wins even when newest", func(t *testing.T) {
		ledger := []model.ExchangeRate{
			ledgerRate(1, "2026-01-10", true),
			ledgerRate(2, "2026-02-01", false),
		}
		er, ok := CurrentOf(ledger)
		require.True(t, ok)
		assert.Equal(t, uint64(1), er.ID)
	})

	t.Run("same date resolved by id", func(t *testing.T) {
		ledger := []model.ExchangeRate{
			ledgerRate(8, "2026-01-10", true),
			ledgerRate(11, "2026-01-10", true),
			ledgerRate(9, "2026-01-10", true),
		}
		er, ok := CurrentOf(ledger)
		require.True(t, ok)
		assert.Equal(t, uint64(11), er.ID)
	})
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, isDuplicateKey(errors.New("Error 1062 (23000): Duplicate entry '2026-01-10' for key 'effective_date'")))
	assert.False(t, isDuplicateKey(errors.New("Error 1452 (23000): Cannot add or update a child row")))
	assert.False(t, isDuplicateKey(nil))
}

// Every reprice statement must derive its Bs columns from the matching USD
// column alone.  Reading a Bs value back would compound rounding and break
// the re-run-changes-nothing property.
func TestRepriceStatementsDeriveFromUSD(t *testing.T) {
	assignment := regexp.MustCompile(`(\w+_bs)\s*=\s*ROUND\((\w+_usd)\s*\*\s*\?,\s*2\)`)

	for _, query := range repriceStatements {
		sets := strings.SplitN(query, "SET", 2)
		require.Len(t, sets, 2, query)

		matches := assignment.FindAllStringSubmatch(sets[1], -1)
		require.NotEmpty(t, matches, query)

		// Each assignment pairs a _bs column with its _usd twin, and no
		// other column reference appears on the right-hand side.
		stripped := assignment.ReplaceAllString(sets[1], "")
		assert.NotRegexp(t, `\w+_bs\s*=`, stripped, "unconverted assignment in %q", query)
		assert.NotContains(t, stripped, "_usd", "stray usd reference in %q", query)

		for _, m := range matches {
			assert.Equal(t,
				strings.TrimSuffix(m[2], "_usd"), strings.TrimSuffix(m[1], "_bs"),
				"mismatched column pair in %q", query)
		}
	}
}

// The number of placeholders per statement must match what RepriceAll binds.
func TestRepriceStatementPlaceholders(t *testing.T) {
	for _, query := range repriceStatements {
		assert.Equal(t, strings.Count(query, "ROUND("), strings.Count(query, "?"), query)
	}
}
