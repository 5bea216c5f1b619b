package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/usermgmt/domain"
)

// RateLimiterImpl implements domain.RateLimiter with a fixed window counter
// in Redis. The single INCR keeps counting atomic across concurrent requests
// from the same client.
type RateLimiterImpl struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRateLimiter creates a new Redis-backed rate limiter
func NewRateLimiter(client *redis.Client, limit int, window time.Duration) domain.RateLimiter {
	return &RateLimiterImpl{
		client: client,
		limit:  limit,
		window: window,
	}
}

// Allow implements domain.RateLimiter
func (l *RateLimiterImpl) Allow(ctx context.Context, key string) (bool, error) {
	counterKey := "ratelimit:" + key

	count, err := l.client.Incr(ctx, counterKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate counter: %w", err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, counterKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate window: %w", err)
		}
	}

	return count <= int64(l.limit), nil
}
