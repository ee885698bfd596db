package memory

import (
	"context"
	"sync"
	"time"

	"github.com/campusconnect/portal/internal/core/ports"
)

type rateWindow struct {
	start time.Time
	count int
}

// RateLimiter caps requests per key in a window anchored at the first request
// in the window, matching the Redis adapter's INCR+EXPIRE semantics.
type RateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	windows map[string]*rateWindow
	now     func() time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		windows: make(map[string]*rateWindow),
		now:     time.Now,
	}
}

// SetClock overrides the time source. Test hook.
func (r *RateLimiter) SetClock(now func() time.Time) { r.now = now }

func (r *RateLimiter) Allow(_ context.Context, key string) (ports.RateDecision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	w, ok := r.windows[key]
	if !ok || now.Sub(w.start) >= r.window {
		w = &rateWindow{start: now}
		r.windows[key] = w
	}

	w.count++
	if w.count > r.limit {
		return ports.RateDecision{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: w.start.Add(r.window).Sub(now),
		}, nil
	}

	return ports.RateDecision{Allowed: true, Remaining: r.limit - w.count}, nil
}
