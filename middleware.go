package main

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client IP. Each bucket holds rate
// tokens and refills completely over interval.
type RateLimiter struct {
	rate     int
	interval time.Duration

	mu      sync.Mutex
	clients map[string]*clientLimiter

	stopCh   chan struct{}
	stopOnce sync.Once
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter and starts its cleanup loop. Call Close
// to stop it.
func NewRateLimiter(n int, interval time.Duration) *RateLimiter {
	if n < 1 {
		n = 1
	}
	rl := &RateLimiter{
		rate:     n,
		interval: interval,
		clients:  make(map[string]*clientLimiter),
		stopCh:   make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// Allow reports whether ip has a token left, consuming it if so
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	c, ok := rl.clients[ip]
	if !ok {
		c = &clientLimiter{
			limiter: rate.NewLimiter(rate.Every(rl.interval/time.Duration(rl.rate)), rl.rate),
		}
		rl.clients[ip] = c
	}
	c.lastSeen = time.Now()
	rl.mu.Unlock()

	return c.limiter.Allow()
}

// Close stops the cleanup loop. Safe to call more than once.
func (rl *RateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// cleanup drops clients idle for a full interval; their buckets are full
// again, so a fresh limiter behaves the same.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.interval)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stopCh:
			return
		case now := <-ticker.C:
			rl.sweep(now)
		}
	}
}

func (rl *RateLimiter) sweep(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, c := range rl.clients {
		if now.Sub(c.lastSeen) >= rl.interval {
			delete(rl.clients, ip)
		}
	}
}

// SecurityConfig configures the HTTP transport guard
type SecurityConfig struct {
	// RateLimit is requests per minute per client IP; 0 disables limiting
	RateLimit int

	// MaxBodySize caps request bodies in bytes; 0 means no cap
	MaxBodySize int64
}

// SecurityMiddleware guards the streamable HTTP endpoint with per-IP rate
// limiting, a body size cap and defensive response headers.
type SecurityMiddleware struct {
	next    http.Handler
	logger  *slog.Logger
	config  SecurityConfig
	limiter *RateLimiter
}

// NewSecurityMiddleware wraps next
func NewSecurityMiddleware(next http.Handler, logger *slog.Logger, config SecurityConfig) *SecurityMiddleware {
	sm := &SecurityMiddleware{
		next:   next,
		logger: logger,
		config: config,
	}
	if config.RateLimit > 0 {
		sm.limiter = NewRateLimiter(config.RateLimit, time.Minute)
	}
	return sm
}

func (sm *SecurityMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Cache-Control", "no-store")

	if sm.limiter != nil {
		ip := clientIP(r)
		if !sm.limiter.Allow(ip) {
			sm.logger.Warn("Rate limit exceeded", "ip", ip, "path", r.URL.Path)
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
	}

	if sm.config.MaxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, sm.config.MaxBodySize)
	}

	sm.next.ServeHTTP(w, r)
}

// Close releases the rate limiter
func (sm *SecurityMiddleware) Close() {
	if sm.limiter != nil {
		sm.limiter.Close()
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
