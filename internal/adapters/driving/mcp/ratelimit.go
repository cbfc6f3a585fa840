package mcp

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Throttle limits the rate of tool calls with a token bucket. SetLimit
// may be called while the server runs, so a config reload takes effect
// without a restart. Calls already waiting finish against the old limits.
type Throttle struct {
	mu      sync.RWMutex
	limiter *rate.Limiter
}

// NewThrottle creates a throttle allowing perSecond sustained calls and
// bursts of burst calls. A perSecond of zero or less disables limiting.
func NewThrottle(perSecond float64, burst int) *Throttle {
	t := &Throttle{}
	t.SetLimit(perSecond, burst)
	return t
}

// SetLimit replaces the sustained rate and burst size with a full bucket.
func (t *Throttle) SetLimit(perSecond float64, burst int) {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if perSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
	}

	t.mu.Lock()
	t.limiter = limiter
	t.mu.Unlock()
}

// Wait blocks until a call may proceed or ctx is done.
func (t *Throttle) Wait(ctx context.Context) error {
	return t.current().Wait(ctx)
}

// Allow reports whether a call may proceed now, consuming a token if so.
func (t *Throttle) Allow() bool {
	return t.current().Allow()
}

func (t *Throttle) current() *rate.Limiter {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.limiter
}
