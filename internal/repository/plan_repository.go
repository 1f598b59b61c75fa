package repository

import (
	"context"
	"database/sql"

	"github.com/enmanuellle/lemahotelreservas/internal/model"
	"github.com/enmanuellle/lemahotelreservas/internal/pricing"
)

// PlanRepo provides persistence for tourism plans.
type PlanRepo struct {
	db *sql.DB
}

// NewPlanRepo returns a PlanRepo bound to the given database.
func NewPlanRepo(db *sql.DB) *PlanRepo { return &PlanRepo{db: db} }

const planColumns = "id, name, description, price_usd, price_bs, duration_days, active"

func scanPlan(s interface{ Scan(...interface{}) error }) (model.TourismPlan, error) {
	var p model.TourismPlan
	var desc sql.NullString
	var days sql.NullInt64
	err := s.Scan(&p.ID, &p.Name, &desc, &p.PriceUSD, &p.PriceBS, &days, &p.Active)
	p.Description = desc.String
	p.DurationDays = int(days.Int64)
	return p, err
}

// Create inserts a tourism plan.
func (r *PlanRepo) Create(ctx context.Context, p *model.TourismPlan) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tourism_plans (name, description, price_usd, price_bs, duration_days, active)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.Name, p.Description, p.PriceUSD, p.PriceBS, p.DurationDays, p.Active)
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

// Update rewrites a tourism plan.
func (r *PlanRepo) Update(ctx context.Context, p *model.TourismPlan) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tourism_plans SET name = ?, description = ?, price_usd = ?, price_bs = ?,
		        duration_days = ?, active = ? WHERE id = ?`,
		p.Name, p.Description, p.PriceUSD, p.PriceBS, p.DurationDays, p.Active, p.ID)
	return err
}

// GetByID fetches one plan; sql.ErrNoRows when absent.
func (r *PlanRepo) GetByID(ctx context.Context, id uint64) (model.TourismPlan, error) {
	const q = `SELECT ` + planColumns + ` FROM tourism_plans WHERE id = ?`
	return scanPlan(r.db.QueryRowContext(ctx, q, id))
}

// List returns all plans ordered by name.
func (r *PlanRepo) List(ctx context.Context) ([]model.TourismPlan, error) {
	const q = `SELECT ` + planColumns + ` FROM tourism_plans ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.TourismPlan, 0)
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Plan resolves a plan as a composer catalog item.  The boolean is false
// when no plan with the id exists; inactive plans are returned with
// Active=false and filtered by the composer.
func (r *PlanRepo) Plan(ctx context.Context, id uint64) (pricing.CatalogItem, bool, error) {
	p, err := r.GetByID(ctx, id)
	if err == sql.ErrNoRows {
		return pricing.CatalogItem{}, false, nil
	}
	if err != nil {
		return pricing.CatalogItem{}, false, err
	}
	return pricing.CatalogItem{ID: p.ID, Name: p.Name, PriceUSD: p.PriceUSD, Active: p.Active}, true, nil
}
