package mocks

import (
	"context"

	"github.com/you/usermgmt/domain"
)

// MockRateLimiter implements domain.RateLimiter interface for testing
type MockRateLimiter struct {
	AllowFunc func(ctx context.Context, key string) (bool, error)
}

// NewMockRateLimiter creates a new MockRateLimiter with default behaviors
func NewMockRateLimiter() *MockRateLimiter {
	return &MockRateLimiter{}
}

// Allow reports whether the client may proceed
func (m *MockRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if m.AllowFunc != nil {
		return m.AllowFunc(ctx, key)
	}
	// Default behavior: never throttle
	return true, nil
}

// Compile-time interface compliance verification
var _ domain.RateLimiter = (*MockRateLimiter)(nil)
