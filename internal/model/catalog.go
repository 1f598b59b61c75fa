package model

import "github.com/shopspring/decimal"

// TourismPlan is a sellable excursion package.  Like every catalog entity
// it carries a USD price and a derived Bs price.
type TourismPlan struct {
	ID           uint64          `json:"id"`            // tourism_plans.id
	Name         string          `json:"name"`          // tourism_plans.name
	Description  string          `json:"description"`   // tourism_plans.description
	PriceUSD     decimal.Decimal `json:"price_usd"`     // tourism_plans.price_usd
	PriceBS      decimal.Decimal `json:"price_bs"`      // tourism_plans.price_bs
	DurationDays int             `json:"duration_days"` // tourism_plans.duration_days
	Active       bool            `json:"active"`        // tourism_plans.active
}

// RestaurantProduct is a sellable menu item.
type RestaurantProduct struct {
	ID          uint64          `json:"id"`             // restaurant_products.id
	Name        string          `json:"name"`           // restaurant_products.name
	Description string          `json:"description"`    // restaurant_products.description
	UnitUSD     decimal.Decimal `json:"unit_price_usd"` // restaurant_products.unit_price_usd
	UnitBS      decimal.Decimal `json:"unit_price_bs"`  // restaurant_products.unit_price_bs
	Category    string          `json:"category"`       // restaurant_products.category
	Active      bool            `json:"active"`         // restaurant_products.active
}
