package mocks

import (
	"context"
	"time"

	"github.com/you/usermgmt/domain"
)

// MockStatsService implements domain.StatsService interface for testing
type MockStatsService struct {
	HealthFunc func(ctx context.Context) (*domain.HealthReport, error)
	StatsFunc  func(ctx context.Context, includeDetails bool) (*domain.Stats, error)
}

// NewMockStatsService creates a new MockStatsService with default behaviors
func NewMockStatsService() *MockStatsService {
	return &MockStatsService{}
}

// Health returns a liveness report
func (m *MockStatsService) Health(ctx context.Context) (*domain.HealthReport, error) {
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	// Default behavior: healthy, empty store
	return &domain.HealthReport{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	}, nil
}

// Stats returns aggregate counters
func (m *MockStatsService) Stats(ctx context.Context, includeDetails bool) (*domain.Stats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, includeDetails)
	}
	// Default behavior: empty store
	stats := &domain.Stats{}
	if includeDetails {
		stats.UserEmails = []string{}
	}
	return stats, nil
}

// Compile-time interface compliance verification
var _ domain.StatsService = (*MockStatsService)(nil)
