package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config contains rate limiting configuration per route category
type Config struct {
	Enabled           bool
	WindowDuration    time.Duration
	DefaultRequests   int
	AdminRequests     int
	AnalyticsRequests int
	WhitelistedIPs    []string
}

// RateLimiter implements a fixed-window counter over Redis
type RateLimiter struct {
	client *redis.Client
	config *Config
}

// Result describes the outcome of a rate limit check
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// NewRateLimiter creates a new Redis-backed rate limiter
func NewRateLimiter(client *redis.Client, config *Config) *RateLimiter {
	return &RateLimiter{client: client, config: config}
}

// limitFor picks the request budget for a path
func (rl *RateLimiter) limitFor(path string) int {
	switch {
	case strings.Contains(path, "/analytics/admin/recompute"):
		return rl.config.AdminRequests
	case strings.Contains(path, "/analytics"):
		return rl.config.AnalyticsRequests
	default:
		return rl.config.DefaultRequests
	}
}

// isWhitelisted reports whether the client IP bypasses limits
func (rl *RateLimiter) isWhitelisted(ip string) bool {
	for _, allowed := range rl.config.WhitelistedIPs {
		if allowed == ip {
			return true
		}
	}
	return false
}

// Check increments the counter for (ip, path category) and reports whether the
// request fits the window budget.
func (rl *RateLimiter) Check(ctx context.Context, ip, path string) (*Result, error) {
	limit := rl.limitFor(path)
	window := rl.config.WindowDuration
	windowStart := time.Now().Truncate(window)
	resetAt := windowStart.Add(window)

	if rl.isWhitelisted(ip) {
		return &Result{Allowed: true, Limit: limit, Remaining: limit, ResetAt: resetAt}, nil
	}

	key := fmt.Sprintf("pulse:ratelimit:%s:%d:%d", ip, limit, windowStart.Unix())

	pipe := rl.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}

	count := int(incr.Val())
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	return &Result{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}
