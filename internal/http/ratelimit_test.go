package http

import "testing"

func TestRateLimiterAllow(t *testing.T) {
	rl := newRateLimiter(2)
	defer rl.stop()

	if !rl.allow("1.2.3.4") {
		t.Error("first request should be allowed")
	}
	if !rl.allow("1.2.3.4") {
		t.Error("second request should be allowed")
	}
	if rl.allow("1.2.3.4") {
		t.Error("third request should exceed the limit")
	}

	// Budgets are per client.
	if !rl.allow("5.6.7.8") {
		t.Error("a different client has its own budget")
	}
}

func TestRateLimiterStopIdempotent(t *testing.T) {
	rl := newRateLimiter(1)
	rl.stop()
	rl.stop() // must not panic
}
