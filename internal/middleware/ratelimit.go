package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"projectboard/internal/httputil"
)

const rateLimiterSweepInterval = 5 * time.Minute

// RateLimiter decides whether the caller identified by key may proceed
type RateLimiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
	Close() error
}

// Decision is the outcome of one Allow call
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// MemoryRateLimiter keeps one token bucket per key in process memory.
// Buckets refill at limit tokens per window and hold at most limit tokens.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	entries map[string]*bucket
	limit   int
	window  time.Duration
	stopCh  chan struct{}
	once    sync.Once
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewMemoryRateLimiter allows limit requests per window for each key
func NewMemoryRateLimiter(limit int, window time.Duration) *MemoryRateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	rl := &MemoryRateLimiter{
		entries: make(map[string]*bucket),
		limit:   limit,
		window:  window,
		stopCh:  make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

// Allow takes one token from key's bucket
func (rl *MemoryRateLimiter) Allow(_ context.Context, key string) (Decision, error) {
	if rl.limit <= 0 {
		return Decision{Allowed: true}, nil
	}
	now := time.Now()

	rl.mu.Lock()
	b, ok := rl.entries[key]
	if !ok {
		every := rl.window / time.Duration(rl.limit)
		b = &bucket{limiter: rate.NewLimiter(rate.Every(every), rl.limit)}
		rl.entries[key] = b
	}
	b.lastSeen = now
	rl.mu.Unlock()

	allowed := b.limiter.AllowN(now, 1)
	tokens := b.limiter.TokensAt(now)
	remaining := int(tokens)
	if remaining < 0 {
		remaining = 0
	}

	// time until the next whole token is available
	resetIn := time.Duration(0)
	if tokens < 1 {
		resetIn = time.Duration((1 - tokens) / float64(b.limiter.Limit()) * float64(time.Second))
	}

	return Decision{
		Allowed:   allowed,
		Limit:     rl.limit,
		Remaining: remaining,
		ResetAt:   now.Add(resetIn),
	}, nil
}

func (rl *MemoryRateLimiter) sweepLoop() {
	ticker := time.NewTicker(rateLimiterSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now())
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup drops buckets idle long enough to have refilled completely
func (rl *MemoryRateLimiter) cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, b := range rl.entries {
		if now.Sub(b.lastSeen) > rl.window {
			delete(rl.entries, key)
		}
	}
}

// Close stops the sweep goroutine
func (rl *MemoryRateLimiter) Close() error {
	rl.once.Do(func() {
		close(rl.stopCh)
	})
	return nil
}

// RateLimit throttles mutating requests per verified user, falling back to
// the client IP. Limiter failures let the request through.
func RateLimit(limiter RateLimiter, metrics *Metrics, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isMutation(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			key, kind := rateLimitKey(r)
			decision, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Error("rate limiter error", "error", err, "key_kind", kind)
				next.ServeHTTP(w, r)
				return
			}

			applyRateHeaders(w, decision)
			if !decision.Allowed {
				metrics.RateLimitHit(r.Method, kind)
				retryAfter := int(time.Until(decision.ResetAt).Seconds()) + 1
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				httputil.RespondErrorWithExtras(w, http.StatusTooManyRequests, "rate limit exceeded", map[string]interface{}{
					"retry_after": retryAfter,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func rateLimitKey(r *http.Request) (key, kind string) {
	if userID := httputil.GetUserID(r); userID != "" {
		return "user:" + userID, "user"
	}
	ip := httputil.ClientIP(r)
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip, "ip"
}

func applyRateHeaders(w http.ResponseWriter, d Decision) {
	if d.Limit <= 0 {
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))
}
