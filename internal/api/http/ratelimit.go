package http

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/spec-kit/shop-service/internal/observability"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

// AttemptCounter counts attempts per identifier inside a fixed window.
type AttemptCounter interface {
	Increment(ctx context.Context, identifier string, window time.Duration) (int64, error)
}

// LoginLimiter bounds login attempts per client IP. The shared counter is used
// when configured; otherwise, or while it is failing, a per-process token bucket applies.
type LoginLimiter struct {
	counter AttemptCounter
	max     int
	window  time.Duration
	metrics *observability.Metrics
	logger  *zap.Logger

	now       func() time.Time
	mu        sync.Mutex
	local     map[string]*localBucket
	lastSweep time.Time
}

type localBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLoginLimiter builds the limiter. A nil counter uses only the in-process limiter.
func NewLoginLimiter(counter AttemptCounter, maxAttempts int, window time.Duration, metrics *observability.Metrics, logger *zap.Logger) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoginLimiter{
		counter: counter,
		max:     maxAttempts,
		window:  window,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
		local:   make(map[string]*localBucket),
	}
}

// Handle rejects the request with 429 once the caller exhausted its attempts.
func (l *LoginLimiter) Handle(c *fiber.Ctx) error {
	if !l.allow(c.UserContext(), c.IP()) {
		l.metrics.RecordRateLimited()
		return apperrors.NewTooManyRequests("Too many login attempts, try again later")
	}
	return c.Next()
}

func (l *LoginLimiter) allow(ctx context.Context, ip string) bool {
	if l.counter != nil {
		count, err := l.counter.Increment(ctx, ip, l.window)
		if err == nil {
			return count <= int64(l.max)
		}
		l.logger.Warn("login limiter store unavailable", zap.Error(err))
	}
	return l.limiterFor(ip).Allow()
}

func (l *LoginLimiter) limiterFor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	l.sweep(now)
	bucket, ok := l.local[ip]
	if !ok {
		bucket = &localBucket{limiter: rate.NewLimiter(rate.Every(l.window/time.Duration(l.max)), l.max)}
		l.local[ip] = bucket
	}
	bucket.lastSeen = now
	return bucket.limiter
}

// sweep drops buckets idle for a full window. Such a bucket has refilled
// completely, so a fresh one behaves the same. Callers hold l.mu.
func (l *LoginLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now
	for ip, bucket := range l.local {
		if now.Sub(bucket.lastSeen) >= l.window {
			delete(l.local, ip)
		}
	}
}
