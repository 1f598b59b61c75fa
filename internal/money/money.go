// Package money provides the fixed-precision decimal arithmetic used for
// every price in the system.  All amounts are carried in two currencies:
// US dollars and bolivars (Bs).  The dollar amount is always the source of
// truth; the bolivar amount is derived by multiplying with the exchange
// rate of the moment and is stored at two decimal places.
package money

import "github.com/shopspring/decimal"

// Currency identifies one of the two currencies amounts are kept in.
type Currency string

const (
	USD Currency = "USD"
	BS  Currency = "BS"
)

// StoragePrecision is the number of decimal places persisted for every
// monetary column (matches DECIMAL(10,2) in the schema).
const StoragePrecision = 2

// Convert returns amountUSD multiplied by the given Bs-per-USD rate,
// rounded to the storage precision.  The rate is not validated here; a
// positive rate is the caller's responsibility.
func Convert(amountUSD, rate decimal.Decimal) decimal.Decimal {
	return amountUSD.Mul(rate).Round(StoragePrecision)
}
