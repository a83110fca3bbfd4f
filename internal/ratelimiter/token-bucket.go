package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// TokenBucketRateLimiter gives every key a bucket of limit tokens refilled
// evenly over the window, so bursts are allowed up to the full limit.
type TokenBucketRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*bucket
	limit    rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewTokenBucketLimiter(limit int, w time.Duration) *TokenBucketRateLimiter {
	return &TokenBucketRateLimiter{
		limiters: make(map[string]*bucket),
		limit:    rate.Every(w / time.Duration(limit)),
		burst:    limit,
		idle:     w,
		now:      time.Now,
	}
}

func (tb *TokenBucketRateLimiter) Allow(key string) (bool, time.Duration) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.now()
	b, exists := tb.limiters[key]
	if !exists {
		tb.sweep(now)
		b = &bucket{limiter: rate.NewLimiter(tb.limit, tb.burst), lastSeen: now}
		tb.limiters[key] = b
	}
	b.lastSeen = now

	r := b.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// sweep drops buckets idle for a whole window; they would be full again
// anyway. Callers hold the lock.
func (tb *TokenBucketRateLimiter) sweep(now time.Time) {
	for key, b := range tb.limiters {
		if now.Sub(b.lastSeen) >= tb.idle {
			delete(tb.limiters, key)
		}
	}
}

// New returns the limiter named by cfg.Strategy, fixed window by default.
func New(cfg Config) Limiter {
	if cfg.Strategy == StrategyTokenBucket {
		return NewTokenBucketLimiter(cfg.RequestsPerTimeFrame, cfg.TimeFrame)
	}
	return NewFixedWindowLimiter(cfg.RequestsPerTimeFrame, cfg.TimeFrame)
}
