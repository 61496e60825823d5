package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig caps request throughput per client IP.
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

// DefaultRateLimitConfig allows far more than a ward clerk clicking through
// input forms ever produces while still stopping runaway scripted clients.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 100,
		BurstSize:         200,
	}
}

// bucket is token-bucket state for one client. Tokens refill lazily on each
// take, so an idle client costs nothing between requests.
type bucket struct {
	tokens float64
	last   time.Time
}

// limiter owns the per-client buckets. A single mutex is enough at this
// service's request volume.
type limiter struct {
	mu      sync.Mutex
	cfg     RateLimitConfig
	clients map[string]*bucket
}

func newLimiter(cfg RateLimitConfig) *limiter {
	return &limiter{cfg: cfg, clients: make(map[string]*bucket)}
}

// take spends one token for the client. When the bucket is empty it reports
// how many whole seconds until the next token is due.
func (l *limiter) take(client string, now time.Time) (ok bool, wait int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, found := l.clients[client]
	if !found {
		b = &bucket{tokens: float64(l.cfg.BurstSize), last: now}
		l.clients[client] = b
	}

	b.tokens += now.Sub(b.last).Seconds() * l.cfg.RequestsPerSecond
	if full := float64(l.cfg.BurstSize); b.tokens > full {
		b.tokens = full
	}
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	if l.cfg.RequestsPerSecond <= 0 {
		return false, 1
	}
	return false, int((1-b.tokens)/l.cfg.RequestsPerSecond) + 1
}

// RateLimit rejects clients that exceed the configured rate with a 429 and
// a Retry-After hint. Buckets are keyed by client IP.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	lim := newLimiter(cfg)
	limitValue := strconv.FormatFloat(cfg.RequestsPerSecond, 'f', 0, 64)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, wait := lim.take(c.RealIP(), time.Now())
			c.Response().Header().Set("X-RateLimit-Limit", limitValue)
			if !ok {
				c.Response().Header().Set("Retry-After", strconv.Itoa(wait))
				c.Response().Header().Set("X-RateLimit-Remaining", "0")
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
