package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is one record of the append-only Bs-per-USD ledger.  Rates
// are never edited or deleted; registering a new one supersedes older
// records at query time.  The current rate is the active record with the
// greatest effective date, ties broken by greatest id.
type ExchangeRate struct {
	ID            uint64          `json:"id"`             // exchange_rates.id
	EffectiveDate time.Time       `json:"effective_date"` // exchange_rates.effective_date (DATE, unique)
	Rate          decimal.Decimal `json:"rate_bs_per_usd"`
	Active        bool            `json:"active"`     // exchange_rates.active
	CreatedAt     time.Time       `json:"created_at"` // exchange_rates.created_at
}
