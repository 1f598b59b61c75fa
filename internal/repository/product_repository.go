package repository

import (
	"context"
	"database/sql"

	"github.com/enmanuellle/lemahotelreservas/internal/model"
	"github.com/enmanuellle/lemahotelreservas/internal/pricing"
)

// ProductRepo provides persistence for restaurant products.
type ProductRepo struct {
	db *sql.DB
}

// NewProductRepo returns a ProductRepo bound to the given database.
func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

const productColumns = "id, name, description, unit_price_usd, unit_price_bs, category, active"

func scanProduct(s interface{ Scan(...interface{}) error }) (model.RestaurantProduct, error) {
	var p model.RestaurantProduct
	var desc, cat sql.NullString
	err := s.Scan(&p.ID, &p.Name, &desc, &p.UnitUSD, &p.UnitBS, &cat, &p.Active)
	p.Description = desc.String
	p.Category = cat.String
	return p, err
}

// Create inserts a restaurant product.
func (r *ProductRepo) Create(ctx context.Context, p *model.RestaurantProduct) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO restaurant_products (name, description, unit_price_usd, unit_price_bs, category, active)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.Name, p.Description, p.UnitUSD, p.UnitBS, p.Category, p.Active)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// Update rewrites a restaurant product.
func (r *ProductRepo) Update(ctx context.Context, p *model.RestaurantProduct) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE restaurant_products SET name = ?, description = ?, unit_price_usd = ?,
		        unit_price_bs = ?, category = ?, active = ? WHERE id = ?`,
		p.Name, p.Description, p.UnitUSD, p.UnitBS, p.Category, p.Active, p.ID)
	return err
}

// GetByID fetches one product; sql.ErrNoRows when absent.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (model.RestaurantProduct, error) {
	const q = `SELECT ` + productColumns + ` FROM restaurant_products WHERE id = ?`
	return scanProduct(r.db.QueryRowContext(ctx, q, id))
}

// List returns all products ordered by category then name.
func (r *ProductRepo) List(ctx context.Context) ([]model.RestaurantProduct, error) {
	const q = `SELECT ` + productColumns + ` FROM restaurant_products ORDER BY category, name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.RestaurantProduct, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Product resolves a product as a composer catalog item.  The boolean is
// false when no product with the id exists.
func (r *ProductRepo) Product(ctx context.Context, id uint64) (pricing.CatalogItem, bool, error) {
	p, err := r.GetByID(ctx, id)
	if err == sql.ErrNoRows {
		return pricing.CatalogItem{}, false, nil
	}
	if err != nil {
		return pricing.CatalogItem{}, false, err
	}
	return pricing.CatalogItem{ID: p.ID, Name: p.Name, PriceUSD: p.UnitUSD, Active: p.Active}, true, nil
}
