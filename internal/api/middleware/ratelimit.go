package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const limiterCleanupEvery = 5 * time.Minute

// RateLimitConfig allows Requests per Window with bursts up to Burst.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	Burst    int
}

// IPExtractor decides where c.RealIP() reads the caller address. With no
// trusted proxies only the connection's remote address counts. Otherwise
// X-Forwarded-For is walked from the right, skipping the listed CIDRs only.
func IPExtractor(trustedProxies []string) (echo.IPExtractor, error) {
	if len(trustedProxies) == 0 {
		return echo.ExtractIPDirect(), nil
	}

	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, cidr := range trustedProxies {
		_, ipNet, err := net.ParseCIDR(strings.TrimSpace(cidr))
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", cidr, err)
		}
		opts = append(opts, echo.TrustIPRange(ipNet))
	}
	return echo.ExtractIPFromXFFHeader(opts...), nil
}

type ipLimiter struct {
	limiters    sync.Map // map[string]*rate.Limiter
	rate        rate.Limit
	burst       int
	mu          sync.Mutex
	lastCleanup time.Time
}

func (l *ipLimiter) get(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}
	v, _ := l.limiters.LoadOrStore(key, rate.NewLimiter(l.rate, l.burst))
	l.prune()
	return v.(*rate.Limiter)
}

// prune drops limiters whose bucket has refilled, i.e. idle clients.
func (l *ipLimiter) prune() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if time.Since(l.lastCleanup) < limiterCleanupEvery {
		return
	}
	l.lastCleanup = time.Now()
	l.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= float64(l.burst) {
			l.limiters.Delete(key)
		}
		return true
	})
}

// RateLimit limits requests per client IP as reported by c.RealIP(), so the
// Echo instance needs an IPExtractor. Rejected requests get 429 with a
// Retry-After header.
func RateLimit(cfg RateLimitConfig, log zerolog.Logger) echo.MiddlewareFunc {
	if cfg.Requests <= 0 {
		cfg.Requests = 10
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.Requests
	}

	l := &ipLimiter{
		rate:        rate.Limit(float64(cfg.Requests) / cfg.Window.Seconds()),
		burst:       cfg.Burst,
		lastCleanup: time.Now(),
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			if key == "" {
				return next(c)
			}

			limiter := l.get(key)
			if limiter.Allow() {
				return next(c)
			}

			r := limiter.Reserve()
			delay := r.Delay()
			r.Cancel()
			retryAfter := max(int(delay.Seconds()), 1)

			c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
			log.Warn().
				Str("ip", key).
				Str("path", c.Request().URL.Path).
				Int("retry_after", retryAfter).
				Msg("rate limit exceeded")

			return c.JSON(http.StatusTooManyRequests, map[string]string{
				"error": "too many requests, try again later",
			})
		}
	}
}
