package server

import (
	"sync"
	"time"
)

// RateLimiter is a per-key token bucket.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*tokenBucket
	rate    int
	window  time.Duration
	now     func() time.Time
}

type tokenBucket struct {
	tokens   int
	lastFill time.Time
}

// NewRateLimiter allows ratePerWindow requests per key per window. A rate of
// zero or less disables limiting.
func NewRateLimiter(ratePerWindow int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*tokenBucket),
		rate:    ratePerWindow,
		window:  window,
		now:     time.Now,
	}
}

// Allow reports whether key may proceed and, if not, how long to wait.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	if rl.rate <= 0 {
		return true, 0
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	bucket, exists := rl.buckets[key]
	if !exists {
		rl.buckets[key] = &tokenBucket{tokens: rl.rate - 1, lastFill: now}
		return true, 0
	}

	refill := int(float64(now.Sub(bucket.lastFill)) / float64(rl.window) * float64(rl.rate))
	if refill > 0 {
		bucket.tokens = min(rl.rate, bucket.tokens+refill)
		bucket.lastFill = now
	}
	if bucket.tokens > 0 {
		bucket.tokens--
		return true, 0
	}
	return false, rl.window / time.Duration(rl.rate)
}

func (rl *RateLimiter) Reset(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.buckets, key)
}
