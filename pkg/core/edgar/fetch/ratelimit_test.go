package fetch

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiterAllowsFirstRequestImmediately(t *testing.T) {
	rl := NewRateLimiter(5)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := rl.Wait(ctx); err != nil {
		t.Fatalf("first Wait should not block past the burst allowance: %v", err)
	}
}

func TestRateLimiterDefaultsOnNonPositiveRate(t *testing.T) {
	rl := NewRateLimiter(0)
	if rl.limiter.Limit() != defaultRequestsPerSec {
		t.Errorf("limit = %v, want default %v", rl.limiter.Limit(), defaultRequestsPerSec)
	}
}

func TestRateLimiterRespectsContextCancellation(t *testing.T) {
	rl := NewRateLimiter(0.001) // effectively one request per ~1000s
	rl.Wait(context.Background()) // consume the initial burst token
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := rl.Wait(ctx); err == nil {
		t.Errorf("expected context deadline to abort the wait for a near-zero rate")
	}
}
