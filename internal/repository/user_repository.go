package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/enmanuellle/lemahotelreservas/internal/model"
	"github.com/enmanuellle/lemahotelreservas/internal/utils"
)

// UserRepo provides persistence for staff accounts.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = "id, first_name, last_name, email, username, password_hash, role, active, created_at"

func scanUser(s interface{ Scan(...interface{}) error }) (model.User, error) {
	var u model.User
	err := s.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Username,
		&u.PasswordHash, &u.Role, &u.Active, &u.CreatedAt)
	return u, err
}

// Create inserts a staff account, hashing the password with the given cost.
// Duplicate username or email returns ErrDuplicateEntry.
func (r *UserRepo) Create(ctx context.Context, u *model.User, password string, cost int) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Username = strings.TrimSpace(u.Username)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (first_name, last_name, email, username, password_hash, role, active)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.FirstName, u.LastName, u.Email, u.Username, hash, u.Role, u.Active)
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
	u.ID = uint64(id)
	u.PasswordHash = hash
	return nil
}

// GetByUsername fetches a staff account by its login name.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE username = ? LIMIT 1`
	return scanUser(r.db.QueryRowContext(ctx, q, strings.TrimSpace(username)))
}

// GetByID fetches a staff account by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = ? LIMIT 1`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

// Exists reports whether a staff account with the given id exists.
func (r *UserRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE id = ?", id).Scan(&n)
	return n > 0, err
}
