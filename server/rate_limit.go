package server

import (
	"net/http"
	"sync"
	"time"
)

const (
	registerRequestsPerMinute = 5
	loginRequestsPerMinute    = 10
	refreshRequestsPerMinute  = 30
)

// RateLimiter is a sliding-window counter keyed by caller identity.
// Timestamps older than the window are pruned on each check.
type RateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
	nowFunc  func() time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		nowFunc:  time.Now,
	}
}

// Allow records an attempt for key and reports whether it stays within
// the window limit.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.nowFunc()
	cutoff := now.Add(-rl.window)

	recent := rl.requests[key][:0]
	for _, t := range rl.requests[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= rl.limit {
		rl.requests[key] = recent
		return false
	}

	rl.requests[key] = append(recent, now)
	return true
}

// limiterSet holds one limiter per credential-bearing route. Token
// issuance endpoints are the only rate-limited surface.
type limiterSet struct {
	register *RateLimiter
	login    *RateLimiter
	refresh  *RateLimiter
}

func newLimiterSet() *limiterSet {
	return &limiterSet{
		register: NewRateLimiter(registerRequestsPerMinute, time.Minute),
		login:    NewRateLimiter(loginRequestsPerMinute, time.Minute),
		refresh:  NewRateLimiter(refreshRequestsPerMinute, time.Minute),
	}
}

// RateLimitMiddleware rejects callers exceeding the limiter's window
// with 429, keyed by client IP.
func (s *Server) RateLimitMiddleware(limiter *RateLimiter) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientIP(r)) {
				writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests, slow down")
				return
			}
			next(w, r)
		}
	}
}
