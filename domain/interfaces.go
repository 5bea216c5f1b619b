package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context, params ListParams) ([]*User, error)
	Search(ctx context.Context, params SearchParams) ([]*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error
	CountByStatus(ctx context.Context) (total, active int64, err error)
	Emails(ctx context.Context) ([]string, error)
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
	Count(ctx context.Context) (int64, error)
}

// AuthService defines authentication business logic
type AuthService interface {
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	// Logout revokes the session a bearer token points at. The returned
	// bool is true when a live session existed and was destroyed.
	Logout(ctx context.Context, token string) (bool, error)
	// Authenticate resolves a bearer token to its live session.
	Authenticate(ctx context.Context, token string) (*Session, error)
}

// UserService defines user management business logic
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*User, error)
	Get(ctx context.Context, id uint) (*User, error)
	List(ctx context.Context, params ListParams) ([]*User, error)
	Update(ctx context.Context, id uint, input UpdateUserInput) (*User, error)
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, params SearchParams) ([]*User, error)
}

// StatsService defines aggregate reporting operations
type StatsService interface {
	Health(ctx context.Context) (*HealthReport, error)
	Stats(ctx context.Context, includeDetails bool) (*Stats, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines bearer token operations
type TokenService interface {
	Generate(userID uint, sessionID string) (string, error)
	Validate(token string) (*TokenClaims, error)
	TTL() time.Duration
}

// RateLimiter throttles repeated requests from one client
type RateLimiter interface {
	// Allow reports whether the client identified by key may proceed.
	Allow(ctx context.Context, key string) (bool, error)
}

// CreateUserInput carries the fields of a user creation request
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Age      int
	Phone    string
}

// UpdateUserInput carries the optional fields of a user update request
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
	Age      *int
	Phone    *string
	IsActive *bool
}

// TokenClaims represents validated bearer token claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	SessionID string `json:"session_id"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
