package repository

import (
	"context"
	"database/sql"

	"github.com/enmanuellle/lemahotelreservas/internal/model"
)

// SaleRepo provides persistence for sales and their line items.  A sale
// owns its items: inserts are bulk, and an edit replaces the whole set
// inside one transaction rather than diffing.
type SaleRepo struct {
	db *sql.DB
}

// NewSaleRepo returns a SaleRepo bound to the given database.
func NewSaleRepo(db *sql.DB) *SaleRepo { return &SaleRepo{db: db} }

// DB exposes the underlying handle for transaction-spanning workflows.
func (r *SaleRepo) DB() *sql.DB { return r.db }

const saleColumns = `id, client_id, staff_id, reservation_id, sale_type,
       subtotal_usd, subtotal_bs, tax_usd, tax_bs, total_usd, total_bs,
       payment_method, status, notes, sold_at`

func scanSale(s interface{ Scan(...interface{}) error }) (model.Sale, error) {
	var sa model.Sale
	var resID sql.NullInt64
	var pay, notes sql.NullString
	err := s.Scan(&sa.ID, &sa.ClientID, &sa.StaffID, &resID, &sa.Type,
		&sa.SubtotalUSD, &sa.SubtotalBS, &sa.TaxUSD, &sa.TaxBS, &sa.TotalUSD, &sa.TotalBS,
		&pay, &sa.Status, &notes, &sa.SoldAt)
	if resID.Valid {
		id := uint64(resID.Int64)
		sa.ReservationID = &id
	}
	sa.PaymentMethod = pay.String
	sa.Notes = notes.String
	return sa, err
}

// lineRefColumns splits a tagged line reference into the two mutually
// exclusive foreign-key columns the schema uses.
func lineRefColumns(ref model.LineRef) (productID, planID interface{}) {
	switch ref.Kind {
	case model.LineProduct:
		return ref.ItemID, nil
	case model.LinePlan:
		return nil, ref.ItemID
	}
	return nil, nil
}

// CreateTx inserts a sale header and its items within an existing
// transaction.  Item IDs and the generated sale id are populated on the
// passed value.
func (r *SaleRepo) CreateTx(ctx context.Context, tx *sql.Tx, sa *model.Sale) error {
	var resID interface{}
	if sa.ReservationID != nil {
		resID = *sa.ReservationID
	}
	result, err := tx.ExecContext(ctx,
		`INSERT INTO sales
		 (client_id, staff_id, reservation_id, sale_type, subtotal_usd, subtotal_bs,
		  tax_usd, tax_bs, total_usd, total_bs, payment_method, status, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sa.ClientID, sa.StaffID, resID, sa.Type, sa.SubtotalUSD, sa.SubtotalBS,
		sa.TaxUSD, sa.TaxBS, sa.TotalUSD, sa.TotalBS, nullable(sa.PaymentMethod), sa.Status, sa.Notes)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	sa.ID = uint64(id)
	if err := r.insertItemsTx(ctx, tx, sa.ID, sa.Items); err != nil {
		return err
	}
	const sel = `SELECT ` + saleColumns + ` FROM sales WHERE id = ?`
	got, err := scanSale(tx.QueryRowContext(ctx, sel, sa.ID))
	if err != nil {
		return err
	}
	got.Items = sa.Items
	*sa = got
	return nil
}

// UpdateTx rewrites a sale header and replaces its entire item collection
// atomically: all existing lines are deleted and the newly composed set is
// inserted.  Original line identifiers do not survive an edit.
func (r *SaleRepo) UpdateTx(ctx context.Context, tx *sql.Tx, sa *model.Sale) error {
	var resID interface{}
	if sa.ReservationID != nil {
		resID = *sa.ReservationID
	}
	_, err := tx.ExecContext(ctx,
		`UPDATE sales SET client_id = ?, staff_id = ?, reservation_id = ?, sale_type = ?,
		        subtotal_usd = ?, subtotal_bs = ?, tax_usd = ?, tax_bs = ?,
		        total_usd = ?, total_bs = ?, payment_method = ?, status = ?, notes = ?
		 WHERE id = ?`,
		sa.ClientID, sa.StaffID, resID, sa.Type,
		sa.SubtotalUSD, sa.SubtotalBS, sa.TaxUSD, sa.TaxBS,
		sa.TotalUSD, sa.TotalBS, nullable(sa.PaymentMethod), sa.Status, sa.Notes, sa.ID)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM sale_items WHERE sale_id = ?", sa.ID); err != nil {
		return err
	}
	return r.insertItemsTx(ctx, tx, sa.ID, sa.Items)
}

// insertItemsTx bulk-inserts line items in one statement.  An empty slice
// is a no-op.
func (r *SaleRepo) insertItemsTx(ctx context.Context, tx *sql.Tx, saleID uint64, items []model.SaleItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `INSERT INTO sale_items
	          (sale_id, product_id, plan_id, description, quantity,
	           unit_price_usd, unit_price_bs, total_usd, total_bs) VALUES `
	args := make([]interface{}, 0, len(items)*9)
	for i := range items {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?, ?, ?)"
		productID, planID := lineRefColumns(items[i].Ref)
		items[i].SaleID = saleID
		args = append(args, saleID, productID, planID, items[i].Description, items[i].Quantity,
			items[i].UnitUSD, items[i].UnitBS, items[i].TotalUSD, items[i].TotalBS)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// GetByID fetches a sale and its ordered items; sql.ErrNoRows when absent.
func (r *SaleRepo) GetByID(ctx context.Context, id uint64) (model.Sale, error) {
	const q = `SELECT ` + saleColumns + ` FROM sales WHERE id = ?`
	sa, err := scanSale(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return model.Sale{}, err
	}
	items, err := r.itemsBySale(ctx, id)
	if err != nil {
		return model.Sale{}, err
	}
	sa.Items = items
	return sa, nil
}

// GetByIDTx fetches a sale header inside a transaction, locking the row.
func (r *SaleRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Sale, error) {
	const q = `SELECT ` + saleColumns + ` FROM sales WHERE id = ? FOR UPDATE`
	return scanSale(tx.QueryRowContext(ctx, q, id))
}

// List returns all sales (headers only), newest first.
func (r *SaleRepo) List(ctx context.Context) ([]model.Sale, error) {
	const q = `SELECT ` + saleColumns + ` FROM sales ORDER BY sold_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Sale, 0)
	for rows.Next() {
		sa, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sa)
	}
	return out, rows.Err()
}

func (r *SaleRepo) itemsBySale(ctx context.Context, saleID uint64) ([]model.SaleItem, error) {
	const q = `SELECT id, sale_id, product_id, plan_id, description, quantity,
	                  unit_price_usd, unit_price_bs, total_usd, total_bs
	           FROM sale_items WHERE sale_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.SaleItem, 0)
	for rows.Next() {
		var it model.SaleItem
		var productID, planID sql.NullInt64
		var desc sql.NullString
		if err := rows.Scan(&it.ID, &it.SaleID, &productID, &planID, &desc, &it.Quantity,
			&it.UnitUSD, &it.UnitBS, &it.TotalUSD, &it.TotalBS); err != nil {
			return nil, err
		}
		it.Description = desc.String
		switch {
		case productID.Valid:
			it.Ref = model.LineRef{Kind: model.LineProduct, ItemID: uint64(productID.Int64)}
		case planID.Valid:
			it.Ref = model.LineRef{Kind: model.LinePlan, ItemID: uint64(planID.Int64)}
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
