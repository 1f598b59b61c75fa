package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/enmanuellle/lemahotelreservas/internal/model"
	"github.com/enmanuellle/lemahotelreservas/internal/pricing"
)

// RateRepo manages the append-only exchange-rate ledger and the bulk
// reprice pass that keeps Bs prices aligned with a newly registered rate.
type RateRepo struct {
	db *sql.DB
}

// NewRateRepo returns a RateRepo bound to the given database.
func NewRateRepo(db *sql.DB) *RateRepo { return &RateRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span several repositories.
func (r *RateRepo) DB() *sql.DB { return r.db }

const rateColumns = "id, effective_date, rate_bs_per_usd, active, created_at"

func scanRate(row *sql.Row) (model.ExchangeRate, error) {
	var er model.ExchangeRate
	err := row.Scan(&er.ID, &er.EffectiveDate, &er.Rate, &er.Active, &er.CreatedAt)
	return er, err
}

// newerRate reports whether a supersedes b in the ledger: later effective
// date wins, ties go to the higher id (most recently inserted).  This is the
// comparison the ORDER BY in Current implements.
func newerRate(a, b model.ExchangeRate) bool {
	if !a.EffectiveDate.Equal(b.EffectiveDate) {
		return a.EffectiveDate.After(b.EffectiveDate)
	}
	return a.ID > b.ID
}

// CurrentOf picks the current rate out of an in-memory ledger slice, using
// the same ordering as Current.  The second return is false when no record
// is active.
func CurrentOf(rates []model.ExchangeRate) (model.ExchangeRate, bool) {
	var best model.ExchangeRate
	found := false
	for _, er := range rates {
		if !er.Active {
			continue
		}
		if !found || newerRate(er, best) {
			best = er
			found = true
		}
	}
	return best, found
}

// Current returns the active rate record with the greatest effective date,
// ties broken by greatest id (most recently inserted).  It returns
// ErrNoActiveRate when the ledger has no active record.
func (r *RateRepo) Current(ctx context.Context) (model.ExchangeRate, error) {
	const q = `SELECT ` + rateColumns + ` FROM exchange_rates
	           WHERE active = 1
	           ORDER BY effective_date DESC, id DESC
	           LIMIT 1`
	er, err := scanRate(r.db.QueryRowContext(ctx, q))
	if err == sql.ErrNoRows {
		return model.ExchangeRate{}, ErrNoActiveRate
	}
	return er, err
}

// CurrentTx is Current inside an existing transaction, so a workflow can
// resolve the rate once and keep it stable for the whole unit of work.
func (r *RateRepo) CurrentTx(ctx context.Context, tx *sql.Tx) (model.ExchangeRate, error) {
	const q = `SELECT ` + rateColumns + ` FROM exchange_rates
	           WHERE active = 1
	           ORDER BY effective_date DESC, id DESC
	           LIMIT 1`
	er, err := scanRate(tx.QueryRowContext(ctx, q))
	if err == sql.ErrNoRows {
		return model.ExchangeRate{}, ErrNoActiveRate
	}
	return er, err
}

// Register inserts a new active rate record for the given date.  The ledger
// keeps at most one record per date; a second insert for the same date
// returns ErrDuplicateRateDate.  Older records are never deactivated here —
// currency of a record is purely a query-time property.
func (r *RateRepo) Register(ctx context.Context, date time.Time, rate decimal.Decimal) (model.ExchangeRate, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO exchange_rates (effective_date, rate_bs_per_usd, active) VALUES (?, ?, 1)",
		date.Format(pricing.DateLayout), rate)
	if err != nil {
		if isDuplicateKey(err) {
			return model.ExchangeRate{}, ErrDuplicateRateDate
		}
		return model.ExchangeRate{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.ExchangeRate{}, err
	}
	const sel = `SELECT ` + rateColumns + ` FROM exchange_rates WHERE id = ?`
	return scanRate(r.db.QueryRowContext(ctx, sel, id))
}

// List returns the full ledger, newest effective date first.
func (r *RateRepo) List(ctx context.Context) ([]model.ExchangeRate, error) {
	const q = `SELECT ` + rateColumns + ` FROM exchange_rates
	           ORDER BY effective_date DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.ExchangeRate, 0)
	for rows.Next() {
		var er model.ExchangeRate
		if err := rows.Scan(&er.ID, &er.EffectiveDate, &er.Rate, &er.Active, &er.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, er)
	}
	return out, rows.Err()
}

// RepriceCounts reports how many rows each table touched during a bulk
// reprice pass.
type RepriceCounts struct {
	RoomTypes    int64 `json:"room_types"`
	TourismPlans int64 `json:"tourism_plans"`
	Products     int64 `json:"restaurant_products"`
	Reservations int64 `json:"reservations"`
	Sales        int64 `json:"sales"`
	SaleItems    int64 `json:"sale_items"`
}

// repriceStatements are the bulk updates RepriceAll runs, in RepriceCounts
// field order.  Every Bs column is derived from its USD counterpart alone,
// never from a previous Bs value, which makes the pass a fixed point: re-run
// with the same rate it changes nothing.
var repriceStatements = []string{
	`UPDATE room_types SET nightly_price_bs = ROUND(nightly_price_usd * ?, 2) WHERE active = 1`,
	`UPDATE tourism_plans SET price_bs = ROUND(price_usd * ?, 2) WHERE active = 1`,
	`UPDATE restaurant_products SET unit_price_bs = ROUND(unit_price_usd * ?, 2) WHERE active = 1`,
	`UPDATE reservations SET nightly_price_bs = ROUND(nightly_price_usd * ?, 2)`,
	`UPDATE sales SET subtotal_bs = ROUND(subtotal_usd * ?, 2),
	                  tax_bs      = ROUND(tax_usd * ?, 2),
	                  total_bs    = ROUND(total_usd * ?, 2)`,
	`UPDATE sale_items SET unit_price_bs = ROUND(unit_price_usd * ?, 2),
	                       total_bs      = ROUND(total_usd * ?, 2)`,
}

// RepriceAll recomputes every Bs-denominated column as its USD counterpart
// times the given rate, across the catalog, reservations, sales and sale
// items.  USD columns are never touched.  The whole pass runs in one
// transaction: either every table is repriced or none is.  Running it twice
// with the same rate is a fixed point.
func (r *RateRepo) RepriceAll(ctx context.Context, rate decimal.Decimal) (RepriceCounts, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return RepriceCounts{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var counts RepriceCounts
	dsts := []*int64{
		&counts.RoomTypes, &counts.TourismPlans, &counts.Products,
		&counts.Reservations, &counts.Sales, &counts.SaleItems,
	}
	for i, query := range repriceStatements {
		args := make([]interface{}, strings.Count(query, "?"))
		for j := range args {
			args[j] = rate
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return RepriceCounts{}, err
		}
		if n, err := res.RowsAffected(); err == nil {
			*dsts[i] = n
		}
	}

	if err := tx.Commit(); err != nil {
		return RepriceCounts{}, err
	}
	committed = true
	return counts, nil
}
