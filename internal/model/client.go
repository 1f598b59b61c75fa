package model

// Client is a hotel guest.  Reservations and sales both reference a client.
type Client struct {
	ID        uint64 `json:"id"`         // clients.id
	FirstName string `json:"first_name"` // clients.first_name
	LastName  string `json:"last_name"`  // clients.last_name
	Email     string `json:"email"`      // clients.email (unique, optional)
	Phone     string `json:"phone"`      // clients.phone
	Address   string `json:"address"`    // clients.address
	Document  string `json:"document"`   // clients.document_id (unique)
}
