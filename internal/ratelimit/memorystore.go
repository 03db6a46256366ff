package ratelimit

import (
	"context"
	"time"

	limiter "github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// MemoryLimiter implements Limiter backed by ulule's in-process store. It
// suits a single-instance deployment; a shared store is only needed once the
// service runs behind a load balancer.
type MemoryLimiter struct {
	store limiter.Store
}

// NewMemoryLimiter constructs an in-memory sliding window limiter.
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{store: memory.NewStore()}
}

// Allow registers a hit for the key and reports whether it is within the limit.
func (m *MemoryLimiter) Allow(ctx context.Context, key string, window time.Duration, max int) (bool, int, time.Time, error) {
	if m == nil || m.store == nil || max <= 0 || window <= 0 {
		return true, max, time.Now().Add(window), nil
	}
	instance := limiter.New(m.store, limiter.Rate{Period: window, Limit: int64(max)})
	lctx, err := instance.Get(ctx, key)
	if err != nil {
		return false, 0, time.Now().Add(window), err
	}
	return !lctx.Reached, int(lctx.Remaining), time.Unix(lctx.Reset, 0), nil
}
