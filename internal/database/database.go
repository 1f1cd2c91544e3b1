package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"  // PostgreSQL driver
	_ "modernc.org/sqlite" // embedded SQLite driver
)

// Supported driver names for Open.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config describes how to reach the store. For sqlite only Path is used;
// for postgres the remaining fields build the connection string.
type Config struct {
	Driver   string
	Path     string // sqlite database file
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// Open connects to the configured store, verifies the connection and
// applies the schema. The returned handle is the single shared pool for
// the whole process.
func Open(cfg Config) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)

	switch cfg.Driver {
	case DriverSQLite:
		// busy_timeout lets concurrent writers queue instead of failing
		// immediately; WAL allows readers alongside a writer.
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)", cfg.Path)
		db, err = sql.Open("sqlite", dsn)
	case DriverPostgres:
		connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
		db, err = sql.Open("postgres", connStr)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := Migrate(db, cfg.Driver); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
