package fetch

import (
	"context"

	"golang.org/x/time/rate"
)

// defaultRequestsPerSec is the hard cap sec.gov's fair-access policy
// asks automated clients to respect.
const defaultRequestsPerSec = 10.0

// RateLimiter wraps x/time/rate to enforce a hard requests-per-second
// ceiling across every Fetch call, regardless of how many goroutines
// are issuing requests concurrently.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter builds a limiter allowing requestsPerSec steady-state
// requests per second with a burst of 1 (no bursting past the
// configured rate; SEC access is sustained, not bursty). A
// non-positive requestsPerSec falls back to defaultRequestsPerSec.
func NewRateLimiter(requestsPerSec float64) *RateLimiter {
	if requestsPerSec <= 0 {
		requestsPerSec = defaultRequestsPerSec
	}
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(requestsPerSec), 1)}
}

// Wait blocks until a request token is available or ctx is canceled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
