package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"inventory_backend/internal/models"
)

// LoginLogRepository defines the interface for the successful-login audit log.
type LoginLogRepository interface {
	Append(userID int64, username string) error
	List() ([]models.LoginLogEntry, error)
	Reset() error
}

type loginLogRepository struct {
	db *sql.DB
}

// NewLoginLogRepository creates a new instance of LoginLogRepository.
func NewLoginLogRepository(db *sql.DB) LoginLogRepository {
	return &loginLogRepository{db: db}
}

func (r *loginLogRepository) Append(userID int64, username string) error {
	_, err := r.db.Exec(
		`INSERT INTO login_log (user_id, username, timestamp) VALUES ($1, $2, $3)`,
		userID, username, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("%w: appending login log: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *loginLogRepository) List() ([]models.LoginLogEntry, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, username, timestamp FROM login_log ORDER BY timestamp DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing login log: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	entries := []models.LoginLogEntry{}
	for rows.Next() {
		var e models.LoginLogEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Username, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("%w: scanning login log entry: %v", ErrDatabaseError, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating login log: %v", ErrDatabaseError, err)
	}
	return entries, nil
}

// Reset purges the audit log. Only login_log is ever purged this way; the
// transactions table stays append-only.
func (r *loginLogRepository) Reset() error {
	if _, err := r.db.Exec(`DELETE FROM login_log`); err != nil {
		return fmt.Errorf("%w: resetting login log: %v", ErrDatabaseError, err)
	}
	return nil
}
