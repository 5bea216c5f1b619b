package mocks

import (
	"fmt"
	"time"

	"github.com/you/usermgmt/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateFunc func(userID uint, sessionID string) (string, error)
	ValidateFunc func(token string) (*domain.TokenClaims, error)
	TTLFunc      func() time.Duration
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Generate issues a token
func (m *MockTokenService) Generate(userID uint, sessionID string) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(userID, sessionID)
	}
	// Default behavior: deterministic fake token
	return fmt.Sprintf("token_%d_%s", userID, sessionID), nil
}

// Validate validates a token
func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	// Default behavior: invalid
	return nil, domain.ErrTokenInvalid
}

// TTL returns the session lifetime
func (m *MockTokenService) TTL() time.Duration {
	if m.TTLFunc != nil {
		return m.TTLFunc()
	}
	return 30 * time.Minute
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
