package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale states.
const (
	SalePaid    = "paid"
	SalePending = "pending"
	SaleVoided  = "voided"
)

// Sale types, derived from line-item composition.
const (
	SaleRestaurant  = "restaurant"
	SaleTourismPlan = "tourism_plan"
	SaleMixed       = "mixed"
)

// Payment methods accepted at the desk.
const (
	PayCashUSD       = "cash_usd"
	PayCashLocal     = "cash_local"
	PayMobilePayment = "mobile_payment"
	PayZelle         = "zelle"
	PayBinance       = "binance"
	PayCardTerminal  = "card_terminal"
)

// LineKind tags which catalog a sale line refers to.
type LineKind string

const (
	LineProduct LineKind = "product"
	LinePlan    LineKind = "plan"
)

// LineRef identifies exactly one catalog item — a restaurant product or a
// tourism plan, never both and never neither.  The storage layer maps this
// onto two mutually exclusive foreign-key columns guarded by a CHECK
// constraint; in code the tag makes the invariant unrepresentable to break.
type LineRef struct {
	Kind   LineKind `json:"kind"`
	ItemID uint64   `json:"item_id"`
}

// SaleItem is one ordered line of a sale.  Unit price and line total are
// snapshots in both currencies, captured when the sale is composed.
type SaleItem struct {
	ID          uint64          `json:"id"`             // sale_items.id
	SaleID      uint64          `json:"sale_id"`        // sale_items.sale_id
	Ref         LineRef         `json:"ref"`            // sale_items.product_id / plan_id
	Description string          `json:"description"`    // sale_items.description
	Quantity    int             `json:"quantity"`       // sale_items.quantity (>= 1)
	UnitUSD     decimal.Decimal `json:"unit_price_usd"` // sale_items.unit_price_usd
	UnitBS      decimal.Decimal `json:"unit_price_bs"`  // sale_items.unit_price_bs
	TotalUSD    decimal.Decimal `json:"total_usd"`      // sale_items.total_usd
	TotalBS     decimal.Decimal `json:"total_bs"`       // sale_items.total_bs
}

// Sale is a point-of-sale transaction.  It exclusively owns its items:
// deleting a sale deletes them, and an edit replaces the whole set.  All Bs
// figures are conversions of their USD counterpart with one rate — never
// sums of per-line Bs values, which would compound rounding drift.
type Sale struct {
	ID            uint64          `json:"id"`                       // sales.id
	ClientID      uint64          `json:"client_id"`                // sales.client_id
	StaffID       uint64          `json:"staff_id"`                 // sales.staff_id
	ReservationID *uint64         `json:"reservation_id,omitempty"` // sales.reservation_id (nullable)
	Type          string          `json:"sale_type"`                // sales.sale_type
	SubtotalUSD   decimal.Decimal `json:"subtotal_usd"`             // sales.subtotal_usd
	SubtotalBS    decimal.Decimal `json:"subtotal_bs"`              // sales.subtotal_bs
	TaxUSD        decimal.Decimal `json:"tax_usd"`                  // sales.tax_usd
	TaxBS         decimal.Decimal `json:"tax_bs"`                   // sales.tax_bs
	TotalUSD      decimal.Decimal `json:"total_usd"`                // sales.total_usd
	TotalBS       decimal.Decimal `json:"total_bs"`                 // sales.total_bs
	PaymentMethod string          `json:"payment_method"`           // sales.payment_method
	Status        string          `json:"status"`                   // sales.status
	Notes         string          `json:"notes"`                    // sales.notes
	SoldAt        time.Time       `json:"sold_at"`                  // sales.sold_at
	Items         []SaleItem      `json:"items"`
}

// ValidSaleStatus reports whether s names a known sale state.
func ValidSaleStatus(s string) bool {
	switch s {
	case SalePaid, SalePending, SaleVoided:
		return true
	}
	return false
}

// ValidSaleType reports whether s names a known sale classification.
func ValidSaleType(s string) bool {
	switch s {
	case SaleRestaurant, SaleTourismPlan, SaleMixed:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m is in the accepted set.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PayCashUSD, PayCashLocal, PayMobilePayment, PayZelle, PayBinance, PayCardTerminal:
		return true
	}
	return false
}
