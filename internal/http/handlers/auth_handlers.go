package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/usermgmt/domain"
	"github.com/you/usermgmt/internal/http/middleware"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// LoginRequest represents login request. Emptiness is not a binding concern
// here: empty credentials must fail 401 like any other mismatch.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      result.Token,
		"expires_in": result.ExpiresIn,
		"user_id":    result.User.ID,
	})
}

// Logout handles POST /logout. Unlike the other protected routes a missing
// or malformed header is rejected here directly, while a well-formed token
// that no longer maps to a session is a harmless no-op.
func (h *AuthHandlers) Logout(c *gin.Context) {
	token, _, ok := middleware.BearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid authorization header"})
		return
	}

	revoked, err := h.authSvc.Logout(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Logout failed"})
		return
	}

	if !revoked {
		c.JSON(http.StatusOK, gin.H{"message": "No active session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
