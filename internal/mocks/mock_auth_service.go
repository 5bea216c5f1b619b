package mocks

import (
	"context"

	"github.com/you/usermgmt/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	LoginFunc        func(ctx context.Context, username, password string) (*domain.AuthResult, error)
	LogoutFunc       func(ctx context.Context, token string) (bool, error)
	AuthenticateFunc func(ctx context.Context, token string) (*domain.Session, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Login authenticates credentials
func (m *MockAuthService) Login(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	// Default behavior: reject
	return nil, domain.ErrInvalidCredentials
}

// Logout revokes the session behind a token
func (m *MockAuthService) Logout(ctx context.Context, token string) (bool, error) {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	// Default behavior: nothing to revoke
	return false, nil
}

// Authenticate resolves a token to a live session
func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, token)
	}
	// Default behavior: invalid
	return nil, domain.ErrTokenInvalid
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
