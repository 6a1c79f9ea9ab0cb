package server

import (
	"testing"
	"time"
)

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(3, time.Second)

	for i := 0; i < 3; i++ {
		if allowed, _ := rl.Allow("client-a"); !allowed {
			t.Errorf("request %d should be allowed", i+1)
		}
	}

	allowed, retryAfter := rl.Allow("client-a")
	if allowed {
		t.Error("4th request should be denied")
	}
	if retryAfter <= 0 {
		t.Error("retryAfter should be positive")
	}

	if allowed, _ := rl.Allow("client-b"); !allowed {
		t.Error("different key should be allowed")
	}

	rl.Reset("client-a")
	if allowed, _ := rl.Allow("client-a"); !allowed {
		t.Error("request after Reset should be allowed")
	}
}

func TestRateLimiter_Refills(t *testing.T) {
	now := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	rl.Allow("k")
	rl.Allow("k")
	if allowed, wait := rl.Allow("k"); allowed || wait != 30*time.Second {
		t.Fatalf("Allow() = %v, %v; want denied with 30s", allowed, wait)
	}
	now = now.Add(30 * time.Second)
	if allowed, _ := rl.Allow("k"); !allowed {
		t.Fatal("one token should have refilled after 30s")
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		if allowed, _ := rl.Allow("k"); !allowed {
			t.Fatal("a zero rate must not limit")
		}
	}
}
