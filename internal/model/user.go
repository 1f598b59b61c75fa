package model

import "time"

// Staff roles.  Role gating happens in middleware before a handler runs;
// the pricing core itself is permission-agnostic.
const (
	RoleAdmin        = "ADMIN"
	RoleManager      = "MANAGER"
	RoleReceptionist = "RECEPTIONIST"
)

// User is a staff account.  Guests are Clients, never Users.
type User struct {
	ID           uint64    `json:"id"`         // users.id
	FirstName    string    `json:"first_name"` // users.first_name
	LastName     string    `json:"last_name"`  // users.last_name
	Email        string    `json:"email"`      // users.email (unique)
	Username     string    `json:"username"`   // users.username (unique)
	PasswordHash string    `json:"-"`          // users.password_hash
	Role         string    `json:"role"`       // users.role
	Active       bool      `json:"active"`     // users.active
	CreatedAt    time.Time `json:"created_at"` // users.created_at
}
