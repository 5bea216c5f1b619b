package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/usermgmt/domain"
)

// RateLimitMW wraps the rate limiter for write routes
type RateLimitMW struct {
	limiter domain.RateLimiter
}

// NewRateLimitMW creates new rate limit middleware wrapper
func NewRateLimitMW(limiter domain.RateLimiter) *RateLimitMW {
	return &RateLimitMW{limiter: limiter}
}

// Limit throttles write requests per client IP. Read routes never carry this
// middleware.
func (mw *RateLimitMW) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := mw.limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			// A broken limiter should not take writes down with it.
			log.Printf("RATELIMIT_ERROR: client=%s error=%v", c.ClientIP(), err)
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"detail": "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}
