package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"inventory_backend/internal/models"
)

// UserRepository defines the interface for credential-store database operations.
type UserRepository interface {
	CreateUser(executor SQLExecutor, user *models.User) (int64, error)
	FindByName(name string) (*models.User, error)
	FindByID(userID int64) (*models.User, error)
	ListUsers() ([]models.User, error)
	UpdateCredentials(userID int64, newName, newPINHash string) error
	DeleteUser(userID int64) error
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateUser inserts a new user. The user model must carry Name, Role and
// PINHash; the generated id is returned.
func (r *userRepository) CreateUser(executor SQLExecutor, user *models.User) (int64, error) {
	query := `INSERT INTO users (name, role, pin_hash, created_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`

	var userID int64
	err := executor.QueryRow(query, user.Name, user.Role, user.PINHash, time.Now()).Scan(&userID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: user name %q", ErrDuplicateKey, user.Name)
		}
		return 0, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	user.ID = userID
	return userID, nil
}

// FindByName retrieves a user by name, case-insensitively.
func (r *userRepository) FindByName(name string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, name, role, pin_hash, created_at
	          FROM users WHERE LOWER(name) = LOWER($1)`

	err := r.db.QueryRow(query, name).Scan(
		&user.ID, &user.Name, &user.Role, &user.PINHash, &user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user by name: %v", ErrDatabaseError, err)
	}
	return user, nil
}

func (r *userRepository) FindByID(userID int64) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, name, role, pin_hash, created_at FROM users WHERE id = $1`

	err := r.db.QueryRow(query, userID).Scan(
		&user.ID, &user.Name, &user.Role, &user.PINHash, &user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user by id: %v", ErrDatabaseError, err)
	}
	return user, nil
}

func (r *userRepository) ListUsers() ([]models.User, error) {
	rows, err := r.db.Query(`SELECT id, name, role, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing users: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning user: %v", ErrDatabaseError, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating users: %v", ErrDatabaseError, err)
	}
	return users, nil
}

// UpdateCredentials overwrites a user's name and PIN hash in one statement.
func (r *userRepository) UpdateCredentials(userID int64, newName, newPINHash string) error {
	res, err := r.db.Exec(`UPDATE users SET name = $1, pin_hash = $2 WHERE id = $3`,
		newName, newPINHash, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user name %q", ErrDuplicateKey, newName)
		}
		return fmt.Errorf("%w: updating credentials: %v", ErrDatabaseError, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: updating credentials: %v", ErrDatabaseError, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser removes the row entirely; there is no soft delete.
func (r *userRepository) DeleteUser(userID int64) error {
	res, err := r.db.Exec(`DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("%w: deleting user: %v", ErrDatabaseError, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: deleting user: %v", ErrDatabaseError, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
