package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"complaint-portal/pkg/response"
)

// ClientAddr returns the host part of the request's remote address. The same
// key is used for rate limiting and upvote deduplication; no proxy headers
// are consulted.
func ClientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimiter bounds requests per client address over a fixed window.
type RateLimiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	visitors map[string]*visitor
}

type visitor struct {
	count int
	reset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		window:   window,
		visitors: make(map[string]*visitor),
	}
}

// Allow reports whether another request from addr fits in the current window.
// Expired entries are replaced on access, so the map stays bounded by the set
// of addresses seen within one window.
func (rl *RateLimiter) Allow(addr string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[addr]
	if !ok || now.After(v.reset) {
		v = &visitor{count: 0, reset: now.Add(rl.window)}
		rl.visitors[addr] = v
	}
	if v.count >= rl.limit {
		return false
	}
	v.count++
	return true
}

// RateLimitMiddleware rejects over-limit requests with 429 before any handler
// side effects.
func RateLimitMiddleware(rl *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.Allow(ClientAddr(r)) {
				response.Error(w, http.StatusTooManyRequests, "Too many requests", "Rate limit exceeded, try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
