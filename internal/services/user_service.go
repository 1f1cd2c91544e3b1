package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"inventory_backend/internal/models"
	"inventory_backend/internal/repositories"
	"inventory_backend/pkg/utils"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username already taken")
	ErrInvalidRole  = errors.New("role must be admin or staff")
	ErrValidation   = errors.New("validation failed")
)

// CreateUserRequest DTO
type CreateUserRequest struct {
	Name string `json:"name" binding:"required"`
	Role string `json:"role" binding:"required"`
	PIN  string `json:"pin" binding:"required"`
}

// UpdateCredentialsRequest DTO
type UpdateCredentialsRequest struct {
	Name string `json:"name" binding:"required"`
	PIN  string `json:"pin" binding:"required"`
}

// UserService owns the identity records: admin-driven creation and hard
// deletion, plus self-service credential updates.
type UserService interface {
	CreateUser(req CreateUserRequest) (*models.User, error)
	ListUsers() ([]models.User, error)
	DeleteUser(userID int64) error
	UpdateCredentials(userID int64, req UpdateCredentialsRequest) error
}

type userService struct {
	userRepo repositories.UserRepository
	db       *sql.DB
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo repositories.UserRepository, db *sql.DB) UserService {
	return &userService{userRepo: userRepo, db: db}
}

func (s *userService) CreateUser(req CreateUserRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.PIN == "" {
		return nil, fmt.Errorf("%w: name and PIN must not be empty", ErrValidation)
	}
	if req.Role != models.RoleAdmin && req.Role != models.RoleStaff {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidRole, req.Role)
	}

	// Name uniqueness is case-insensitive; the schema UNIQUE constraint
	// only catches exact duplicates, so check the folded form here too.
	if _, err := s.userRepo.FindByName(name); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}

	user := &models.User{
		Name:    name,
		Role:    req.Role,
		PINHash: utils.HashPIN(req.PIN),
	}

	if _, err := s.userRepo.CreateUser(s.db, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers() ([]models.User, error) {
	return s.userRepo.ListUsers()
}

func (s *userService) DeleteUser(userID int64) error {
	err := s.userRepo.DeleteUser(userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// UpdateCredentials renames a user and replaces their PIN in one step.
// Used by the account-settings surface for the logged-in user.
func (s *userService) UpdateCredentials(userID int64, req UpdateCredentialsRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.PIN == "" {
		return fmt.Errorf("%w: name and PIN must not be empty", ErrValidation)
	}

	err := s.userRepo.UpdateCredentials(userID, name, utils.HashPIN(req.PIN))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return ErrUserExists
		}
		return fmt.Errorf("failed to update credentials: %w", err)
	}
	return nil
}
