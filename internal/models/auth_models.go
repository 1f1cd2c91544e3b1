package models

import "time"

// Role values stored in users.role.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User represents an identity record in the credential store.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" db:"name"`
	Role      string    `json:"role" db:"role"`
	PINHash   string    `json:"-" db:"pin_hash"` // '-' means don't send in JSON response
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Credentials for login request
type Credentials struct {
	Name string `json:"name" binding:"required"`
	PIN  string `json:"pin" binding:"required"`
}
