package security

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"
)

const maxRequestsPerMinute = 30

type RateLimiter struct {
	redis *redis.Client
}

func NewRateLimiter(redisClient *redis.Client) *RateLimiter {
	return &RateLimiter{redis: redisClient}
}

// Limit wraps a handler with a per-IP request budget backed by Redis. When
// Redis is unavailable the request passes through rather than failing closed.
func (r *RateLimiter) Limit(next func(*core.RequestEvent) error) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userAgent := e.Request.Header.Get("User-Agent")
		if r.isSuspiciousUserAgent(userAgent) {
			return e.JSON(http.StatusForbidden, map[string]string{
				"error": "Access denied",
			})
		}

		ip := e.RealIP()
		key := fmt.Sprintf("ratelimit:%s", ip)

		count, err := r.redis.Incr(e.Request.Context(), key).Result()
		if err == nil {
			if count == 1 {
				r.redis.Expire(e.Request.Context(), key, time.Minute)
			}
			if count > maxRequestsPerMinute {
				return e.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "Too many requests. Please try again later.",
				})
			}
		}

		return next(e)
	}
}

func (r *RateLimiter) isSuspiciousUserAgent(ua string) bool {
	suspicious := []string{"bot", "crawler", "spider", "scraper"}
	for _, pattern := range suspicious {
		if strings.Contains(strings.ToLower(ua), pattern) {
			return true
		}
	}
	return false
}
