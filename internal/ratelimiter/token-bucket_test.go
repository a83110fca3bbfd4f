package ratelimiter

import (
	"testing"
	"time"
)

func TestTokenBucketLimiter(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tb := NewTokenBucketLimiter(3, time.Minute)
	tb.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if ok, _ := tb.Allow("1.2.3.4"); !ok {
			t.Fatalf("request %d refused inside the burst", i+1)
		}
	}

	ok, wait := tb.Allow("1.2.3.4")
	if ok {
		t.Fatal("fourth request allowed")
	}
	if wait <= 0 || wait > 20*time.Second {
		t.Errorf("wait = %v, want up to one refill interval", wait)
	}

	if ok, _ := tb.Allow("5.6.7.8"); !ok {
		t.Error("other key refused")
	}

	// one token is back after a third of the window
	now = now.Add(20 * time.Second)
	if ok, _ := tb.Allow("1.2.3.4"); !ok {
		t.Error("refilled token refused")
	}
	if ok, _ := tb.Allow("1.2.3.4"); ok {
		t.Error("second token granted before refill")
	}
}

func TestTokenBucketSweepsIdleKeys(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tb := NewTokenBucketLimiter(3, time.Minute)
	tb.now = func() time.Time { return now }

	allowed := 0
	for i := 0; i < 10; i++ {
		if ok, _ := tb.Allow("1.2.3.4"); ok {
			allowed++
		}
	}
	if allowed != 3 {
		t.Errorf("allowed %d of 10, want 3", allowed)
	}
	if len(tb.limiters) != 1 {
		t.Fatalf("buckets = %d, want 1", len(tb.limiters))
	}

	now = now.Add(time.Minute)
	if ok, _ := tb.Allow("5.6.7.8"); !ok {
		t.Error("new key refused")
	}
	if _, ok := tb.limiters["1.2.3.4"]; ok {
		t.Error("idle bucket kept after a whole window")
	}
	if len(tb.limiters) != 1 {
		t.Errorf("buckets = %d, want 1", len(tb.limiters))
	}
}

func TestNewPicksStrategy(t *testing.T) {
	t.Parallel()

	if _, ok := New(Config{RequestsPerTimeFrame: 5, TimeFrame: time.Minute, Strategy: StrategyTokenBucket}).(*TokenBucketRateLimiter); !ok {
		t.Error("token-bucket strategy ignored")
	}
	if _, ok := New(Config{RequestsPerTimeFrame: 5, TimeFrame: time.Minute}).(*FixedWindowRateLimiter); !ok {
		t.Error("default is not the fixed window")
	}
}
