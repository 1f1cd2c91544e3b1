package services

import (
	"database/sql"
	"errors"
	"fmt"

	"inventory_backend/internal/models"
	"inventory_backend/internal/repositories"
	"inventory_backend/pkg/utils"
)

var (
	// ErrInvalidCredentials is returned when no user matches the name/PIN pair.
	ErrInvalidCredentials = errors.New("invalid username or PIN")

	// ErrLoginPending is returned when a staff login attempt is waiting for
	// admin approval. Distinct from ErrInvalidCredentials so the caller can
	// show a different message.
	ErrLoginPending = errors.New("login request pending admin approval")

	// ErrRequestNotFound is returned when an approve/deny targets a missing request.
	ErrRequestNotFound = errors.New("login request not found")

	ErrTokenGeneration = errors.New("failed to generate token")
)

// AuthResponse is returned on successful authentication.
type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

// AuthService arbitrates logins. Admins authenticate directly; staff
// logins are relayed through the pending/approved/denied request
// workflow and an approved request is consumed exactly once.
type AuthService interface {
	Authenticate(name, pin string) (*AuthResponse, error)
	ListPendingRequests() ([]models.LoginRequest, error)
	ApproveRequest(requestID int64) error
	DenyRequest(requestID int64) error
	LoginLog() ([]models.LoginLogEntry, error)
	ResetLoginLog() error
}

type authService struct {
	userRepo    repositories.UserRepository
	requestRepo repositories.LoginRequestRepository
	logRepo     repositories.LoginLogRepository
	db          *sql.DB
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(
	userRepo repositories.UserRepository,
	requestRepo repositories.LoginRequestRepository,
	logRepo repositories.LoginLogRepository,
	db *sql.DB,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		requestRepo: requestRepo,
		logRepo:     logRepo,
		db:          db,
	}
}

// Authenticate checks the (name, PIN) pair against the credential store.
//
// Staff logins insert a fresh pending request on every attempt, then look
// for any approved request for the user. If one exists it is deleted
// (consumed) and the login succeeds; otherwise the attempt fails softly
// with ErrLoginPending and the caller retries after an admin approves.
// The consume step deliberately takes the oldest approved row even when
// newer pending rows exist; approving a stale request still unblocks the
// next login.
func (s *authService) Authenticate(name, pin string) (*AuthResponse, error) {
	user, err := s.userRepo.FindByName(name)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}

	if user.PINHash != utils.HashPIN(pin) {
		return nil, ErrInvalidCredentials
	}

	if user.Role == models.RoleStaff {
		// Every attempt files a new request, even repeats. Stale pending
		// and denied rows accumulate and are never purged.
		if _, err := s.requestRepo.Create(s.db, user.ID); err != nil {
			return nil, fmt.Errorf("recording login request: %w", err)
		}

		approved, err := s.requestRepo.FindApprovedByUser(s.db, user.ID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrLoginPending
			}
			return nil, fmt.Errorf("checking for approved login request: %w", err)
		}

		if err := s.requestRepo.Delete(s.db, approved.ID); err != nil {
			return nil, fmt.Errorf("consuming approved login request: %w", err)
		}
	}

	if err := s.logRepo.Append(user.ID, user.Name); err != nil {
		return nil, fmt.Errorf("recording login: %w", err)
	}

	accessToken, err := utils.GenerateAccessToken(user.ID, user.Name, user.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	return &AuthResponse{User: user, AccessToken: accessToken}, nil
}

// ListPendingRequests returns the admin approval queue, oldest first.
func (s *authService) ListPendingRequests() ([]models.LoginRequest, error) {
	return s.requestRepo.ListPending()
}

// ApproveRequest marks one request approved. The approval is single-use
// and attempt-scoped; no flag on the user record changes.
func (s *authService) ApproveRequest(requestID int64) error {
	err := s.requestRepo.SetStatus(requestID, models.RequestApproved)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrRequestNotFound
	}
	return err
}

// DenyRequest marks one request denied. Denied requests are terminal and
// never consumed.
func (s *authService) DenyRequest(requestID int64) error {
	err := s.requestRepo.SetStatus(requestID, models.RequestDenied)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrRequestNotFound
	}
	return err
}

func (s *authService) LoginLog() ([]models.LoginLogEntry, error) {
	return s.logRepo.List()
}

func (s *authService) ResetLoginLog() error {
	return s.logRepo.Reset()
}
