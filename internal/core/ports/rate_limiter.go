package ports

import (
	"context"
	"time"
)

// RateDecision is the outcome of a rate-limit check.
type RateDecision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter caps request frequency per key over a fixed window anchored at
// the first request in the window. Allow consumes one slot when permitted.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateDecision, error)
}
