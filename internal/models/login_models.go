package models

import "time"

// Login request status values. A request is created as pending on every
// staff login attempt; an admin moves it to approved or denied. Approved
// requests are deleted (consumed) by the next successful authentication
// of the owning user; denied requests are terminal.
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestDenied   = "denied"
)

// LoginRequest is a per-attempt staff authentication ticket.
type LoginRequest struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Username  string    `json:"username,omitempty"` // joined from users for the approval queue
}

// LoginLogEntry records one successful login for the admin audit view.
type LoginLogEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Username  string    `json:"username" db:"username"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}
