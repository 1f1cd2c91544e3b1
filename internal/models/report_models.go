package models

import "time"

// Transaction records one successful take. Append-only; never updated
// or deleted by normal flow.
type Transaction struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id" db:"user_id"`
	ItemID        int64     `json:"item_id" db:"item_id"`
	QuantityTaken int       `json:"quantity_taken" db:"quantity_taken"`
	Timestamp     time.Time `json:"timestamp" db:"timestamp"`

	UserName string `json:"user_name,omitempty"` // joined from users
	ItemName string `json:"item_name,omitempty"` // joined from items
}

// ReportWindow selects the time window of a transaction report.
type ReportWindow string

const (
	WindowInstant ReportWindow = "instant" // unfiltered
	WindowDaily   ReportWindow = "daily"   // same calendar date as now
	WindowWeekly  ReportWindow = "weekly"  // whole-day truncated age < 7
	WindowMonthly ReportWindow = "monthly" // whole-day truncated age < 30
	WindowYearly  ReportWindow = "yearly"  // whole-day truncated age < 365
)

// Valid reports whether w is a known report window.
func (w ReportWindow) Valid() bool {
	switch w {
	case WindowInstant, WindowDaily, WindowWeekly, WindowMonthly, WindowYearly:
		return true
	default:
		return false
	}
}
