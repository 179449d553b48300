package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// maxTrackedClients bounds the limiter map; it is reset when exceeded.
const maxTrackedClients = 10000

// limiterCache keeps one token bucket per key with double-check locking.
type limiterCache[K comparable] struct {
	limiters map[K]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

func newLimiterCache[K comparable](limit rate.Limit, burst int) *limiterCache[K] {
	return &limiterCache[K]{
		limiters: make(map[K]*rate.Limiter),
		rate:     limit,
		burst:    burst,
	}
}

func (lc *limiterCache[K]) get(key K) *rate.Limiter {
	lc.mu.RLock()
	limiter, exists := lc.limiters[key]
	lc.mu.RUnlock()
	if exists {
		return limiter
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()
	if limiter, exists = lc.limiters[key]; exists {
		return limiter
	}
	if len(lc.limiters) >= maxTrackedClients {
		lc.limiters = make(map[K]*rate.Limiter)
	}
	limiter = rate.NewLimiter(lc.rate, lc.burst)
	lc.limiters[key] = limiter
	return limiter
}

// RateLimiter throttles requests per client IP.
type RateLimiter struct {
	name  string
	cache *limiterCache[string]
	retry time.Duration
}

// NewRateLimiter allows perMinute requests per client IP with the given
// burst. A non-positive perMinute disables limiting.
func NewRateLimiter(name string, perMinute, burst int) *RateLimiter {
	if perMinute <= 0 {
		return &RateLimiter{name: name}
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		name:  name,
		cache: newLimiterCache[string](rate.Every(time.Minute/time.Duration(perMinute)), burst),
		retry: time.Minute / time.Duration(perMinute),
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	if rl.cache == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.cache.get(ip).Allow() {
			slog.WarnContext(r.Context(), "rate limit exceeded", "limiter", rl.name, "ip", ip, "path", r.URL.Path)
			w.Header().Set("Retry-After", strconv.Itoa(max(1, int(rl.retry.Seconds()))))
			http.Error(w, `{"error":"too many requests, please try again later"}`, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP is the host part of RemoteAddr, which chi's RealIP middleware
// has already rewritten from proxy headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
