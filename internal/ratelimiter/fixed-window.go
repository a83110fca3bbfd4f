package ratelimiter

import (
	"sync"
	"time"
)

// FixedWindowRateLimiter counts requests per key and forgets a key one window
// after its first request.
type FixedWindowRateLimiter struct {
	sync.RWMutex
	clients map[string]*window
	limit   int
	window  time.Duration
	now     func() time.Time
}

type window struct {
	count int
	start time.Time
}

func NewFixedWindowLimiter(limit int, w time.Duration) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		window:  w,
		now:     time.Now,
	}
}

func (rl *FixedWindowRateLimiter) Allow(key string) (bool, time.Duration) {
	rl.Lock()
	defer rl.Unlock()

	now := rl.now()
	win, exists := rl.clients[key]
	if !exists || now.Sub(win.start) >= rl.window {
		rl.clients[key] = &window{count: 1, start: now}
		rl.sweep(now)
		return true, 0
	}

	if win.count < rl.limit {
		win.count++
		return true, 0
	}

	return false, rl.window - now.Sub(win.start)
}

// sweep drops windows that have ended. Callers hold the lock.
func (rl *FixedWindowRateLimiter) sweep(now time.Time) {
	for key, win := range rl.clients {
		if now.Sub(win.start) >= rl.window {
			delete(rl.clients, key)
		}
	}
}

// Len reports how many keys currently have an open window.
func (rl *FixedWindowRateLimiter) Len() int {
	rl.RLock()
	defer rl.RUnlock()
	return len(rl.clients)
}
