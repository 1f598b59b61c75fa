package repository

import (
	"context"

	"github.com/enmanuellle/lemahotelreservas/internal/pricing"
)

// CatalogSource joins the product and plan repositories into the single
// lookup surface the sale composer consumes.
type CatalogSource struct {
	Products *ProductRepo
	Plans    *PlanRepo
}

// Product implements pricing.Catalog.
func (c CatalogSource) Product(ctx context.Context, id uint64) (pricing.CatalogItem, bool, error) {
	return c.Products.Product(ctx, id)
}

// Plan implements pricing.Catalog.
func (c CatalogSource) Plan(ctx context.Context, id uint64) (pricing.CatalogItem, bool, error) {
	return c.Plans.Plan(ctx, id)
}
