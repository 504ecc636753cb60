package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/mustardworks/portfolio-api/internal/api/metrics"
)

const rateLimitedMessage = "Too many requests from this IP, please try again later."

// RateLimit limits requests per client IP using store. Preflight requests
// are never counted.
func RateLimit(store echomiddleware.RateLimiterStore) echo.MiddlewareFunc {
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().Method == http.MethodOptions
		},
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "Unable to identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			metrics.RateLimitedTotal.Inc()
			return echo.NewHTTPError(http.StatusTooManyRequests, rateLimitedMessage)
		},
	})
}

// MemoryWindowStore counts requests per identifier in fixed windows kept in
// process memory. Windows line up with the Redis store's, so a single
// instance limits the same way with or without Redis.
type MemoryWindowStore struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	current int64
	counts  map[string]windowCount
}

type windowCount struct {
	index int64
	n     int
}

func NewMemoryWindowStore(limit int, window time.Duration) *MemoryWindowStore {
	return &MemoryWindowStore{
		limit:  limit,
		window: window,
		now:    time.Now,
		counts: make(map[string]windowCount),
	}
}

// WithClock replaces the time source used to pick the current window.
func (s *MemoryWindowStore) WithClock(now func() time.Time) *MemoryWindowStore {
	s.now = now
	return s
}

// Allow records one request for identifier and reports whether it is within
// the limit for the current window.
func (s *MemoryWindowStore) Allow(identifier string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.now().UnixNano() / int64(s.window)
	if index != s.current {
		// Counters from earlier windows can never be read again.
		for id, c := range s.counts {
			if c.index != index {
				delete(s.counts, id)
			}
		}
		s.current = index
	}

	c := s.counts[identifier]
	if c.index != index {
		c = windowCount{index: index}
	}
	c.n++
	s.counts[identifier] = c
	return c.n <= s.limit, nil
}
