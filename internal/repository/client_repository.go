package repository

import (
	"context"
	"database/sql"

	"github.com/enmanuellle/lemahotelreservas/internal/model"
)

// ClientRepo provides persistence for hotel guests.
type ClientRepo struct {
	db *sql.DB
}

// NewClientRepo returns a ClientRepo bound to the given database.
func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{db: db} }

const clientColumns = "id, first_name, last_name, email, phone, address, document_id"

func scanClient(s interface{ Scan(...interface{}) error }) (model.Client, error) {
	var c model.Client
	var email, phone, address sql.NullString
	err := s.Scan(&c.ID, &c.FirstName, &c.LastName, &email, &phone, &address, &c.Document)
	c.Email = email.String
	c.Phone = phone.String
	c.Address = address.String
	return c, err
}

// Create inserts a client.  Duplicate email or identity document returns
// ErrDuplicateEntry.
func (r *ClientRepo) Create(ctx context.Context, c *model.Client) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (first_name, last_name, email, phone, address, document_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.FirstName, c.LastName, nullable(c.Email), c.Phone, c.Address, c.Document)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateEntry
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// Update rewrites a client.
func (r *ClientRepo) Update(ctx context.Context, c *model.Client) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE clients SET first_name = ?, last_name = ?, email = ?, phone = ?,
		        address = ?, document_id = ? WHERE id = ?`,
		c.FirstName, c.LastName, nullable(c.Email), c.Phone, c.Address, c.Document, c.ID)
	if isDuplicateKey(err) {
		return ErrDuplicateEntry
	}
	return err
}

// GetByID fetches one client; sql.ErrNoRows when absent.
func (r *ClientRepo) GetByID(ctx context.Context, id uint64) (model.Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients WHERE id = ?`
	return scanClient(r.db.QueryRowContext(ctx, q, id))
}

// List returns all clients ordered by last name.
func (r *ClientRepo) List(ctx context.Context) ([]model.Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients ORDER BY last_name, first_name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// nullable turns an empty string into SQL NULL so unique indexes on
// optional columns ignore absent values.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
