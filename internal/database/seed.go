package database

import (
	"database/sql"
	"fmt"
	"time"

	"inventory_backend/internal/models"
	"inventory_backend/pkg/utils"
)

// SeedDefaultUsers inserts the stock set of accounts on an empty users
// table: two admins and two staff members. Staff accounts still go
// through the per-attempt admin approval flow, so no approved flag is
// stored anywhere.
func SeedDefaultUsers(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []struct {
		name string
		role string
		pin  string
	}{
		{"Admin1", models.RoleAdmin, "admin1pass"},
		{"Admin2", models.RoleAdmin, "admin2pass"},
		{"Staff1", models.RoleStaff, "staff1pass"},
		{"Staff2", models.RoleStaff, "staff2pass"},
	}

	now := time.Now()
	for _, d := range defaults {
		_, err := db.Exec(
			`INSERT INTO users (name, role, pin_hash, created_at) VALUES ($1, $2, $3, $4)`,
			d.name, d.role, utils.HashPIN(d.pin), now,
		)
		if err != nil {
			return fmt.Errorf("seeding user %s: %w", d.name, err)
		}
	}
	return nil
}
