package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig holds fixed-window rate limiting configuration. The limit
// applies per client address, independent of route.
type RateLimitConfig struct {
	MaxRequests int
	Window      time.Duration
}

// DefaultRateLimitConfig returns the default limit of 100 requests per
// 15-minute window.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{MaxRequests: 100, Window: 15 * time.Minute}
}

// window counts requests for one client inside the current fixed window.
type window struct {
	count   int
	resetAt time.Time
	mu      sync.Mutex
}

func (w *window) allow(max int, length time.Duration) (bool, time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	if now.After(w.resetAt) {
		w.count = 0
		w.resetAt = now.Add(length)
	}

	if w.count >= max {
		return false, time.Until(w.resetAt)
	}
	w.count++
	return true, 0
}

type windowStore struct {
	windows map[string]*window
	mu      sync.RWMutex
	cfg     RateLimitConfig
}

func newWindowStore(cfg RateLimitConfig) *windowStore {
	return &windowStore{windows: make(map[string]*window), cfg: cfg}
}

func (s *windowStore) get(key string) *window {
	s.mu.RLock()
	w, ok := s.windows[key]
	s.mu.RUnlock()
	if ok {
		return w
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Double-check after acquiring write lock
	if w, ok := s.windows[key]; ok {
		return w
	}
	w = &window{resetAt: time.Now().Add(s.cfg.Window)}
	s.windows[key] = w
	return w
}

// RateLimit returns a fixed-window per-client-address rate limiting middleware.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	if cfg.MaxRequests <= 0 {
		cfg = DefaultRateLimitConfig()
	}
	store := newWindowStore(cfg)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, retryIn := store.get(c.RealIP()).allow(cfg.MaxRequests, cfg.Window)
			if !ok {
				retryAfter := int(retryIn.Seconds()) + 1
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests, please try again later.")
			}
			return next(c)
		}
	}
}
