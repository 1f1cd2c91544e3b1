package handlers

import (
	"errors"
	"net/http"

	"inventory_backend/internal/models"
	"inventory_backend/internal/services"
	"inventory_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// Login authenticates a (name, PIN) pair. Staff logins answer 403 with
// the LOGIN_PENDING code until an admin approves the attempt.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "Login: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	authResp, err := h.authService.Authenticate(req.Name, req.PIN)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid username or PIN.", ""))
		} else if errors.Is(err, services.ErrLoginPending) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeLoginPending, "Your login request is pending admin approval.", ""))
		} else {
			utils.LogError(err, "Login: Error from authService.Authenticate")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to login.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, authResp)
}

// GetCurrentUser echoes the identity extracted from the access token.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, _ := c.Get("userID")
	username, _ := c.Get("username")
	role, _ := c.Get("userRole")
	c.JSON(http.StatusOK, gin.H{"id": userID, "name": username, "role": role})
}

// ListPendingRequests returns the approval queue, oldest attempt first.
func (h *AuthHandler) ListPendingRequests(c *gin.Context) {
	requests, err := h.authService.ListPendingRequests()
	if err != nil {
		utils.LogError(err, "ListPendingRequests: Error from authService")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to list login requests.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, requests)
}

// ApproveRequest grants one pending login request.
func (h *AuthHandler) ApproveRequest(c *gin.Context) {
	h.disposeRequest(c, h.authService.ApproveRequest, "approved")
}

// DenyRequest refuses one pending login request.
func (h *AuthHandler) DenyRequest(c *gin.Context) {
	h.disposeRequest(c, h.authService.DenyRequest, "denied")
}

func (h *AuthHandler) disposeRequest(c *gin.Context, action func(int64) error, outcome string) {
	requestID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid request ID.", err.Error()))
		return
	}

	if err := action(requestID); err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Login request not found.", ""))
		} else {
			utils.LogError(err, "disposeRequest: Error updating login request")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update login request.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"request_id": requestID, "status": outcome})
}

// GetLoginLog returns the successful-login audit trail, newest first.
func (h *AuthHandler) GetLoginLog(c *gin.Context) {
	entries, err := h.authService.LoginLog()
	if err != nil {
		utils.LogError(err, "GetLoginLog: Error from authService")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to read login log.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, entries)
}

// ResetLoginLog purges the audit trail.
func (h *AuthHandler) ResetLoginLog(c *gin.Context) {
	if err := h.authService.ResetLoginLog(); err != nil {
		utils.LogError(err, "ResetLoginLog: Error from authService")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to reset login log.", "Internal error"))
		return
	}
	c.Status(http.StatusNoContent)
}
