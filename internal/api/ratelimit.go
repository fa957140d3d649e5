package api

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimiter admits at most limit requests per client in each fixed window.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	span    time.Duration
	swept   time.Time
}

// window is one client's current allowance.
type window struct {
	opened time.Time
	spent  int
}

func (w *window) expired(now time.Time, span time.Duration) bool {
	return now.Sub(w.opened) >= span
}

// NewRateLimiter admits limit requests per client every span.
func NewRateLimiter(limit int, span time.Duration) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		span:    span,
		swept:   time.Now(),
	}
}

// Allow records a request from client and reports whether it fits the
// client's window.
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.sweep(now)

	w := rl.windows[client]
	if w == nil || w.expired(now, rl.span) {
		w = &window{opened: now}
		rl.windows[client] = w
	}
	if w.spent >= rl.limit {
		return false
	}
	w.spent++
	return true
}

// RetryAfter is the whole seconds until client's window reopens.
func (rl *RateLimiter) RetryAfter(client string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w := rl.windows[client]
	if w == nil {
		return 0
	}
	left := time.Until(w.opened.Add(rl.span))
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Seconds()))
}

// sweep forgets clients idle for two spans, at most once per span.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.swept) < rl.span {
		return
	}
	rl.swept = now
	for client, w := range rl.windows {
		if now.Sub(w.opened) > 2*rl.span {
			delete(rl.windows, client)
		}
	}
}

// clientOf prefers the first X-Forwarded-For hop over the socket address.
func clientOf(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimitMiddleware answers 429 once a client exceeds rl.
func RateLimitMiddleware(rl *RateLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client := clientOf(r)
		if !rl.Allow(client) {
			w.Header().Set("Retry-After", strconv.Itoa(rl.RetryAfter(client)))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}
