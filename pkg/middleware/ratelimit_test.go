package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"complaint-portal/pkg/middleware"

	"github.com/stretchr/testify/assert"
)

// TestRateLimiterAllowWithinLimit verifies the stated rate is honored and
// addresses do not share a window.
func TestRateLimiterAllowWithinLimit(t *testing.T) {
	rl := middleware.NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "request %d should pass", i+1)
	}
	assert.False(t, rl.Allow("10.0.0.1"))

	assert.True(t, rl.Allow("10.0.0.2"), "a different address has its own window")
}

// TestRateLimiterWindowReset verifies the counter resets once the window
// elapses.
func TestRateLimiterWindowReset(t *testing.T) {
	rl := middleware.NewRateLimiter(1, 20*time.Millisecond)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	time.Sleep(30 * time.Millisecond)
	assert.True(t, rl.Allow("10.0.0.1"))
}

// TestRateLimitMiddleware verifies over-limit requests get a 429 before the
// handler runs.
func TestRateLimitMiddleware(t *testing.T) {
	rl := middleware.NewRateLimiter(1, time.Minute)

	handlerCalls := 0
	h := middleware.RateLimitMiddleware(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalls++
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/complaints", nil)
	req.RemoteAddr = "10.0.0.1:40000"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, 1, handlerCalls, "rejected requests must not reach the handler")
}

// TestClientAddr verifies the port is stripped and odd addresses pass
// through untouched.
func TestClientAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	req.RemoteAddr = "10.0.0.1:40000"
	assert.Equal(t, "10.0.0.1", middleware.ClientAddr(req))

	req.RemoteAddr = "[2001:db8::1]:40000"
	assert.Equal(t, "2001:db8::1", middleware.ClientAddr(req))

	req.RemoteAddr = "unix-socket"
	assert.Equal(t, "unix-socket", middleware.ClientAddr(req))
}
