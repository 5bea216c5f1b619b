package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/you/usermgmt/domain"
)

// Context keys set by the auth middleware
const (
	CtxUserID    = "user_id"
	CtxSessionID = "session_id"
)

// AuthMW wraps the auth service for protected routes
type AuthMW struct {
	authSvc domain.AuthService
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(authSvc domain.AuthService) *AuthMW {
	return &AuthMW{authSvc: authSvc}
}

// BearerToken extracts the token from an Authorization header. ok is false
// when the header is absent or not in "Bearer <token>" form.
func BearerToken(c *gin.Context) (token string, present, ok bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false, false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", true, false
	}
	return parts[1], true, true
}

// RequireSession rejects requests without a live session. The auth check
// always runs before the handler touches the target resource, so a request
// for a nonexistent user still fails 401 first.
func (mw *AuthMW) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present, ok := BearerToken(c)
		if !present {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication required"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid authorization header"})
			return
		}

		session, err := mw.authSvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid or expired session"})
			return
		}

		c.Set(CtxUserID, session.UserID)
		c.Set(CtxSessionID, session.ID)
		c.Next()
	}
}
