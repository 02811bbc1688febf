package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/utafrali/bookborrower/pkg/httputil"
)

// RateLimitConfig configures per-client token bucket limiting.
type RateLimitConfig struct {
	// RPS is the sustained requests per second allowed for one client.
	RPS float64

	// Burst is the bucket size.
	Burst int

	// TrustProxy keys clients by the first X-Forwarded-For or X-Real-IP
	// address instead of the connection's remote address.
	TrustProxy bool

	// TTL evicts clients not seen for this long. Defaults to 3 minutes.
	TTL time.Duration
}

// visitor tracks a rate limiter per client IP.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter enforces RateLimitConfig per client IP and answers 429
// RATE_LIMITED once a client's bucket is empty.
type RateLimiter struct {
	cfg    RateLimitConfig
	logger *slog.Logger

	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time

	done      chan struct{}
	closeOnce sync.Once
}

// NewRateLimiter creates a limiter and starts its eviction loop. Call Close
// to stop the loop.
func NewRateLimiter(cfg RateLimitConfig, logger *slog.Logger) *RateLimiter {
	if cfg.TTL <= 0 {
		cfg.TTL = 3 * time.Minute
	}
	l := &RateLimiter{
		cfg:      cfg,
		logger:   logger,
		visitors: make(map[string]*visitor),
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Middleware rejects requests from clients over their limit.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r, l.cfg.TrustProxy)
		if !l.limiter(ip).Allow() {
			l.logger.WarnContext(r.Context(), "rate limit exceeded",
				slog.String("ip", ip),
				slog.String("path", r.URL.Path),
			)
			w.Header().Set("Retry-After", "1")
			httputil.WriteErrorCode(w, r, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Close stops the eviction loop. It is safe to call more than once.
func (l *RateLimiter) Close() {
	l.closeOnce.Do(func() { close(l.done) })
}

func (l *RateLimiter) limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(l.cfg.RPS), l.cfg.Burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = l.now()
	return v.limiter
}

func (l *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.cfg.TTL)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.done:
			return
		}
	}
}

// cleanup evicts every visitor idle for longer than the TTL.
func (l *RateLimiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.cfg.TTL {
			delete(l.visitors, ip)
		}
	}
}

func (l *RateLimiter) tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// clientIP returns the address a request is limited under. Forwarding
// headers are only honoured when trustProxy is set.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
				return ip.String()
			}
		}
		if ip := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); ip != nil {
			return ip.String()
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
