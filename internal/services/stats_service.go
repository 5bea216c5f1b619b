package services

import (
	"context"
	"fmt"
	"time"

	"github.com/you/usermgmt/domain"
)

// StatsServiceImpl implements domain.StatsService
type StatsServiceImpl struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
}

// NewStatsService creates a new stats service
func NewStatsService(userRepo domain.UserRepository, sessionRepo domain.SessionRepository) domain.StatsService {
	return &StatsServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

// Health implements domain.StatsService
func (s *StatsServiceImpl) Health(ctx context.Context) (*domain.HealthReport, error) {
	total, _, err := s.userRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	sessions, err := s.sessionRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}

	return &domain.HealthReport{
		Status:         "healthy",
		Timestamp:      time.Now().UTC(),
		MemoryUsers:    total,
		MemorySessions: sessions,
	}, nil
}

// Stats implements domain.StatsService. Detail mode adds identifying lists
// but never session tokens; those must not leave the session store.
func (s *StatsServiceImpl) Stats(ctx context.Context, includeDetails bool) (*domain.Stats, error) {
	total, active, err := s.userRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	sessions, err := s.sessionRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}

	stats := &domain.Stats{
		TotalUsers:     total,
		ActiveUsers:    active,
		InactiveUsers:  total - active,
		ActiveSessions: sessions,
	}

	if includeDetails {
		emails, err := s.userRepo.Emails(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list emails: %w", err)
		}
		stats.UserEmails = emails
	}

	return stats, nil
}
