package collect

import (
	"context"
	"sync"

	"github.com/fwojciec/carlot"
	"golang.org/x/time/rate"
)

var _ carlot.RateLimiter = (*HostLimiter)(nil)

// HostLimiter paces page loads per host using token buckets. Loads from
// different hosts proceed independently. Limits live only as long as the
// HostLimiter; nothing is persisted between runs.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewHostLimiter creates a HostLimiter allowing rps loads per second per
// host, with a burst of 1. A non-positive rps disables pacing.
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

func (h *HostLimiter) limit() rate.Limit {
	if h.rps <= 0 {
		return rate.Inf
	}
	return rate.Limit(h.rps)
}

// Wait blocks until the rate limit allows a load from host.
// Returns an error if the context is canceled before the wait completes.
func (h *HostLimiter) Wait(ctx context.Context, host string) error {
	h.mu.Lock()
	limiter, ok := h.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(h.limit(), 1)
		h.limiters[host] = limiter
	}
	h.mu.Unlock()

	return limiter.Wait(ctx)
}
