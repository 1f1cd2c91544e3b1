package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"inventory_backend/internal/models"
)

// LoginRequestRepository defines the interface for login-request database operations.
type LoginRequestRepository interface {
	Create(executor SQLExecutor, userID int64) (int64, error)
	FindApprovedByUser(executor SQLExecutor, userID int64) (*models.LoginRequest, error)
	Delete(executor SQLExecutor, requestID int64) error
	ListPending() ([]models.LoginRequest, error)
	SetStatus(requestID int64, status string) error
}

type loginRequestRepository struct {
	db *sql.DB
}

// NewLoginRequestRepository creates a new instance of LoginRequestRepository.
func NewLoginRequestRepository(db *sql.DB) LoginRequestRepository {
	return &loginRequestRepository{db: db}
}

// Create inserts a fresh pending request for the user. Called on every
// staff login attempt, even repeats; stale rows are allowed to accumulate.
func (r *loginRequestRepository) Create(executor SQLExecutor, userID int64) (int64, error) {
	var id int64
	err := executor.QueryRow(
		`INSERT INTO login_requests (user_id, status, created_at) VALUES ($1, $2, $3) RETURNING id`,
		userID, models.RequestPending, time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: creating login request: %v", ErrDatabaseError, err)
	}
	return id, nil
}

// FindApprovedByUser returns the oldest approved request for the user, if
// any. Oldest-first keeps the consume step deterministic when several
// approved rows exist.
func (r *loginRequestRepository) FindApprovedByUser(executor SQLExecutor, userID int64) (*models.LoginRequest, error) {
	req := &models.LoginRequest{}
	query := `SELECT id, user_id, status, created_at
	          FROM login_requests
	          WHERE user_id = $1 AND status = $2
	          ORDER BY created_at ASC, id ASC
	          LIMIT 1`

	err := executor.QueryRow(query, userID, models.RequestApproved).Scan(
		&req.ID, &req.UserID, &req.Status, &req.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding approved login request: %v", ErrDatabaseError, err)
	}
	return req, nil
}

// Delete removes one request row. Used to consume an approved request.
func (r *loginRequestRepository) Delete(executor SQLExecutor, requestID int64) error {
	res, err := executor.Exec(`DELETE FROM login_requests WHERE id = $1`, requestID)
	if err != nil {
		return fmt.Errorf("%w: deleting login request: %v", ErrDatabaseError, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: deleting login request: %v", ErrDatabaseError, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPending returns the admin approval queue, oldest attempt first,
// with the requesting user's name joined in.
func (r *loginRequestRepository) ListPending() ([]models.LoginRequest, error) {
	query := `SELECT lr.id, lr.user_id, lr.status, lr.created_at, u.name
	          FROM login_requests lr
	          JOIN users u ON lr.user_id = u.id
	          WHERE lr.status = $1
	          ORDER BY lr.created_at ASC, lr.id ASC`

	rows, err := r.db.Query(query, models.RequestPending)
	if err != nil {
		return nil, fmt.Errorf("%w: listing pending login requests: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	requests := []models.LoginRequest{}
	for rows.Next() {
		var req models.LoginRequest
		if err := rows.Scan(&req.ID, &req.UserID, &req.Status, &req.CreatedAt, &req.Username); err != nil {
			return nil, fmt.Errorf("%w: scanning login request: %v", ErrDatabaseError, err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating login requests: %v", ErrDatabaseError, err)
	}
	return requests, nil
}

// SetStatus moves a request to approved or denied. The user's permanent
// record is never touched; approval is attempt-scoped.
func (r *loginRequestRepository) SetStatus(requestID int64, status string) error {
	res, err := r.db.Exec(`UPDATE login_requests SET status = $1 WHERE id = $2`, status, requestID)
	if err != nil {
		return fmt.Errorf("%w: updating login request status: %v", ErrDatabaseError, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: updating login request status: %v", ErrDatabaseError, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
