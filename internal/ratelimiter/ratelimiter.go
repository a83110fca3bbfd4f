package ratelimiter

import "time"

// Limiter decides whether another request from key may proceed. When it may
// not, the returned duration is how long the caller should wait.
type Limiter interface {
	Allow(key string) (bool, time.Duration)
}

const (
	StrategyFixedWindow = "fixed-window"
	StrategyTokenBucket = "token-bucket"
)

type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
	Strategy             string
}
