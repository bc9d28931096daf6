package worker

import (
	"context"
	"testing"
	"time"
)

func TestNewLimiter_BurstFloor(t *testing.T) {
	if l := NewLimiter(10, 3); l.defaultBurst != 3 {
		t.Errorf("expected burst 3, got %d", l.defaultBurst)
	}
	if l := NewLimiter(10, 0); l.defaultBurst != 5 {
		t.Errorf("expected default burst 5, got %d", l.defaultBurst)
	}
}

func TestLimiter_WaitPerDomain(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "http://example.com/a"); err != nil {
		t.Errorf("wait: %v", err)
	}
	if err := limiter.Wait(ctx, "http://other.example.org/b"); err != nil {
		t.Errorf("wait for second domain: %v", err)
	}
}

func TestLimiter_ThrottlesSameDomain(t *testing.T) {
	// 20 rps with burst 1: the second request must wait ~50ms.
	limiter := NewLimiter(20, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "http://example.com/1"); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	start := time.Now()
	if err := limiter.Wait(ctx, "http://example.com/2"); err != nil {
		t.Fatalf("second wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("expected throttling delay, got %v", elapsed)
	}
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if !limiter.Allow("http://example.com") {
		t.Error("expected first request to be allowed")
	}
	if limiter.Allow("http://example.com") {
		t.Error("expected second immediate request to be throttled")
	}
	if !limiter.Allow("http://different.com") {
		t.Error("expected a different domain to have its own budget")
	}
}
