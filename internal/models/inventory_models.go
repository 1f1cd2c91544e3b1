package models

import "time"

// Category groups items. Referenced by name from Item; deleting a
// category does not cascade to its items.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name" db:"name" binding:"required"`
}

// Item is a stocked article. Name is the unique key; Barcode is an
// optional secondary identifier carried as an opaque string and unique
// when present.
type Item struct {
	ID        int64   `json:"id"`
	Category  string  `json:"category" db:"category" binding:"required"`
	Name      string  `json:"name" db:"name" binding:"required"`
	Barcode   *string `json:"barcode,omitempty" db:"barcode"`
	Quantity  int     `json:"quantity" db:"quantity"`
	Threshold int     `json:"threshold" db:"threshold"`

	// LastTaken annotates inventory views with the most recent take, when any.
	LastTaken *LastTaken `json:"last_taken,omitempty"`
}

// LastTaken is the "last taken by / at" annotation for an item.
type LastTaken struct {
	UserName  string    `json:"user_name"`
	Timestamp time.Time `json:"timestamp"`
}

// LowStockAlert is one row of the derived low-stock view.
type LowStockAlert struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Threshold int    `json:"threshold"`
}
