package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	keyPrefix      = "ratelimit"
	counterTimeout = 2 * time.Second
	warnInterval   = time.Minute
)

// WindowLimiter counts requests per identifier in fixed windows shared by
// every API instance. It satisfies echo's middleware.RateLimiterStore.
//
// Key format: ratelimit:<identifier>:<window index>
type WindowLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	logger zerolog.Logger
	now    func() time.Time
	// warn keeps an outage from logging once per request.
	warn rate.Sometimes
}

func NewWindowLimiter(client *redis.Client, limit int, window time.Duration, logger zerolog.Logger) *WindowLimiter {
	return &WindowLimiter{
		client: client,
		limit:  int64(limit),
		window: window,
		logger: logger,
		now:    time.Now,
		warn:   rate.Sometimes{Interval: warnInterval},
	}
}

// WithClock replaces the time source used to pick the current window.
func (l *WindowLimiter) WithClock(now func() time.Time) *WindowLimiter {
	l.now = now
	return l
}

// Allow records one request for identifier and reports whether it is within
// the limit. Redis failures let the request through.
func (l *WindowLimiter) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), counterTimeout)
	defer cancel()

	key := l.key(identifier)
	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		l.warn.Do(func() {
			l.logger.Warn().Err(err).Str("identifier", identifier).Msg("rate limit counter unavailable, allowing requests")
		})
		return true, nil
	}

	return incr.Val() <= l.limit, nil
}

func (l *WindowLimiter) key(identifier string) string {
	return fmt.Sprintf("%s:%s:%d", keyPrefix, identifier, l.now().UnixNano()/int64(l.window))
}
