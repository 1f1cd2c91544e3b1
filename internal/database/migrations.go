package database

import (
	"database/sql"
	"fmt"
	"strings"
)

// Schema statements use an {id} placeholder for the auto-incrementing
// primary key, which is the one piece of DDL the two engines spell
// differently.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id {id},
		name TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL,
		pin_hash TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS login_requests (
		id {id},
		user_id BIGINT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS login_log (
		id {id},
		user_id BIGINT NOT NULL,
		username TEXT NOT NULL,
		timestamp TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id {id},
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		id {id},
		category TEXT NOT NULL,
		name TEXT NOT NULL UNIQUE,
		barcode TEXT UNIQUE,
		quantity INTEGER NOT NULL CHECK (quantity >= 0),
		threshold INTEGER NOT NULL CHECK (threshold >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id {id},
		user_id BIGINT NOT NULL,
		item_id BIGINT NOT NULL,
		quantity_taken INTEGER NOT NULL CHECK (quantity_taken > 0),
		timestamp TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_login_requests_user_status ON login_requests (user_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_item ON transactions (item_id, timestamp)`,
}

// Migrate creates the schema if it does not exist yet.
func Migrate(db *sql.DB, driver string) error {
	idColumn := "BIGSERIAL PRIMARY KEY"
	if driver == DriverSQLite {
		idColumn = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}

	for _, stmt := range schemaStatements {
		stmt = strings.ReplaceAll(stmt, "{id}", idColumn)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return nil
}
