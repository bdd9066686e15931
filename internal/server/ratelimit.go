package server

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Limiter decides whether the client identified by key may start another
// optimization
type Limiter interface {
	Allow(ctx context.Context, key string) (*LimitInfo, error)
}

// LimitInfo is the limiter state after one Allow call
type LimitInfo struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
	Allowed   bool
}

// TokenBucket is an in-process Limiter. Each key holds up to capacity
// tokens and regains capacity tokens per window.
type TokenBucket struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	capacity int
	window   time.Duration
	now      func() time.Time
}

type bucket struct {
	tokens float64
	last   time.Time
}

// NewTokenBucket returns a limiter allowing bursts of capacity requests
// and capacity requests per window on average
func NewTokenBucket(capacity int, window time.Duration) *TokenBucket {
	return &TokenBucket{
		buckets:  make(map[string]*bucket),
		capacity: capacity,
		window:   window,
		now:      time.Now,
	}
}

func (tb *TokenBucket) Allow(_ context.Context, key string) (*LimitInfo, error) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.now()
	b, ok := tb.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(tb.capacity), last: now}
		tb.buckets[key] = b
		tb.prune(now)
	}

	capacity := float64(tb.capacity)
	refill := now.Sub(b.last).Seconds() * capacity / tb.window.Seconds()
	b.tokens = math.Min(capacity, b.tokens+refill)
	b.last = now

	info := &LimitInfo{Limit: tb.capacity}
	if b.tokens >= 1 {
		b.tokens--
		info.Allowed = true
	}
	info.Remaining = int(b.tokens)
	missing := capacity - b.tokens
	info.ResetAt = now.Add(time.Duration(missing * float64(tb.window) / capacity))
	return info, nil
}

// prune drops buckets that have been full for a whole window
func (tb *TokenBucket) prune(now time.Time) {
	for key, b := range tb.buckets {
		if now.Sub(b.last) > tb.window {
			delete(tb.buckets, key)
		}
	}
}

// Len returns the number of tracked keys
func (tb *TokenBucket) Len() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return len(tb.buckets)
}

// slidingWindow trims entries older than the window, then records the
// request if the window still has room. Returns {allowed, count}.
var slidingWindow = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window_start = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])
local member = ARGV[5]

redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)
local count = redis.call('ZCARD', key)
if count < limit then
	redis.call('ZADD', key, now, member)
	redis.call('PEXPIRE', key, ttl)
	return {1, count + 1}
end
return {0, count}
`)

// RedisLimiter is a sliding-window Limiter shared by every server that
// uses the same Redis
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string

	mu  sync.Mutex
	seq uint64
}

// NewRedisLimiter allows limit requests per window for each key
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration, prefix string) *RedisLimiter {
	return &RedisLimiter{client: client, limit: limit, window: window, prefix: prefix}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (*LimitInfo, error) {
	now := time.Now()

	r.mu.Lock()
	r.seq++
	member := strconv.FormatInt(now.UnixNano(), 10) + "-" + strconv.FormatUint(r.seq, 10)
	r.mu.Unlock()

	res, err := slidingWindow.Run(ctx, r.client, []string{r.prefix + key},
		now.UnixMilli(),
		now.Add(-r.window).UnixMilli(),
		r.limit,
		r.window.Milliseconds(),
		member,
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}
	if len(res) != 2 {
		return nil, fmt.Errorf("rate limit check returned %d values", len(res))
	}

	return &LimitInfo{
		Limit:     r.limit,
		Remaining: max(r.limit-int(res[1]), 0),
		ResetAt:   now.Add(r.window),
		Allowed:   res[0] == 1,
	}, nil
}

// Close releases the Redis client
func (r *RedisLimiter) Close() error {
	return r.client.Close()
}

// RateLimit rejects clients that exceed limiter with 429. Clients are
// keyed by token subject when auth is on, otherwise by remote IP. When the
// limiter itself fails the request is let through.
func RateLimit(limiter Limiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			info, err := limiter.Allow(r.Context(), clientKey(r))
			if err != nil {
				logger.Warn("rate limiter unavailable",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetAt.Unix(), 10))

			if !info.Allowed {
				retry := int64(math.Ceil(time.Until(info.ResetAt).Seconds()))
				w.Header().Set("Retry-After", strconv.FormatInt(max(retry, 1), 10))
				renderError(w, http.StatusTooManyRequests, "rate_limited", "Too many optimization requests", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if subject := GetSubject(r.Context()); subject != "" {
		return "subject:" + subject
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
