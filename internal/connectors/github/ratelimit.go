package github

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// AuthenticatedQuota is the hourly request allowance with a token.
	AuthenticatedQuota = 5000

	// AnonymousQuota is the hourly request allowance without one.
	AnonymousQuota = 60

	// pacedRate keeps proactive throughput safely under the authenticated
	// quota (~1.2 req/sec = 4320/hour).
	pacedRate = 1.2

	// reserveFloor is the remaining-request level at which the limiter
	// stops sending and waits for the quota window to reset.
	reserveFloor = 100
)

// RateLimiter combines proactive pacing with reactive quota tracking from
// GitHub's X-RateLimit response headers.
type RateLimiter struct {
	pacer *rate.Limiter

	mu        sync.Mutex
	remaining int
	limit     int
	resetAt   time.Time
}

// NewRateLimiter creates a limiter assuming a full quota of the given size.
func NewRateLimiter(quota int) *RateLimiter {
	return &RateLimiter{
		pacer:     rate.NewLimiter(rate.Limit(pacedRate), 1),
		remaining: quota,
		limit:     quota,
	}
}

// Wait blocks until the next request may be sent. When the tracked quota is
// nearly drained it sleeps through to the reset time.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.pacer.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	remaining := r.remaining
	resetAt := r.resetAt
	floor := reserveFloor
	if r.limit < reserveFloor {
		// Anonymous quotas are smaller than the reserve itself.
		floor = r.limit / 10
	}
	r.mu.Unlock()

	if remaining > floor || !time.Now().Before(resetAt) {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Until(resetAt)):
		return nil
	}
}

// Observe records quota headers from a response. It returns a RateLimitError
// when the response itself signals quota exhaustion (429, or 403 with a
// drained quota), nil otherwise.
func (r *RateLimiter) Observe(resp *http.Response) error {
	if resp == nil {
		return nil
	}

	r.mu.Lock()
	if v := resp.Header.Get("X-RateLimit-Remaining"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			r.remaining = n
		}
	}
	if v := resp.Header.Get("X-RateLimit-Limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			r.limit = n
		}
	}
	if v := resp.Header.Get("X-RateLimit-Reset"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			r.resetAt = time.Unix(n, 0)
		}
	}
	remaining, limit, resetAt := r.remaining, r.limit, r.resetAt
	r.mu.Unlock()

	limited := resp.StatusCode == http.StatusTooManyRequests ||
		(resp.StatusCode == http.StatusForbidden && remaining == 0)
	if !limited {
		return nil
	}

	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			resetAt = time.Now().Add(time.Duration(secs) * time.Second)
		}
	}

	return &RateLimitError{ResetAt: resetAt, Remaining: remaining, Limit: limit}
}

// Snapshot returns the tracked quota state.
func (r *RateLimiter) Snapshot() (remaining, limit int, resetAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining, r.limit, r.resetAt
}
