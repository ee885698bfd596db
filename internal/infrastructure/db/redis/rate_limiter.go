package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campusconnect/portal/internal/core/ports"
)

// RateLimiter counts requests per key in a window anchored at the first
// request: INCR creates the counter, EXPIRE is set only on creation, so the
// window runs out relative to the first hit.
// Key format: ratelimit:<session_key>
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRateLimiter creates a Redis-backed limiter of limit requests per window.
func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, limit: limit, window: window}
}

func (r *RateLimiter) Allow(ctx context.Context, key string) (ports.RateDecision, error) {
	k := "ratelimit:" + key

	n, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		return ports.RateDecision{}, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := r.client.Expire(ctx, k, r.window).Err(); err != nil {
			return ports.RateDecision{}, fmt.Errorf("rate limit expire: %w", err)
		}
	}

	if n > int64(r.limit) {
		ttl, err := r.client.TTL(ctx, k).Result()
		if err != nil || ttl < 0 {
			ttl = r.window
		}
		return ports.RateDecision{Allowed: false, Remaining: 0, RetryAfter: ttl}, nil
	}

	return ports.RateDecision{Allowed: true, Remaining: r.limit - int(n)}, nil
}
