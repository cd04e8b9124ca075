package kit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestIPRateLimiter_SlidingWindow(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(2, 10*time.Second)
	l.now = func() time.Time { return now }

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatalf("first two hits must pass")
	}
	if l.Allow("a") {
		t.Fatalf("third hit must be limited")
	}
	if !l.Allow("b") {
		t.Fatalf("keys are independent")
	}

	now = now.Add(11 * time.Second)
	if !l.Allow("a") {
		t.Fatalf("window must slide")
	}
}

func TestIPRateLimiter_MiddlewareUsesForwardedFor(t *testing.T) {
	l := NewIPRateLimiter(1, time.Minute)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(xff string) int {
		req := httptest.NewRequest(http.MethodPost, "/cart/products/1", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		if xff != "" {
			req.Header.Set("X-Forwarded-For", xff)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if got := do("1.1.1.1, 10.0.0.1"); got != http.StatusNoContent {
		t.Fatalf("status=%d", got)
	}
	if got := do("1.1.1.1"); got != http.StatusTooManyRequests {
		t.Fatalf("status=%d want=429", got)
	}
	if got := do(""); got != http.StatusNoContent {
		t.Fatalf("remote addr key status=%d", got)
	}
}
