package domain

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User models a registered shopper or administrator.
//
// PasswordHash and SecurityAnswer never appear in API responses: the hash is a
// one-way bcrypt derivation and the answer doubles as a recovery credential.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	SecurityAnswer string    `json:"-"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
