package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/conduit-lang/eggmath/internal/optimizer"
)

func TestTokenBucket(t *testing.T) {
	now := time.Unix(1000, 0)
	tb := NewTokenBucket(2, time.Minute)
	tb.now = func() time.Time { return now }
	ctx := context.Background()

	for i, want := range []bool{true, true, false} {
		info, err := tb.Allow(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, want, info.Allowed, "request %d", i)
		assert.Equal(t, 2, info.Limit)
	}

	info, err := tb.Allow(ctx, "b")
	require.NoError(t, err)
	assert.True(t, info.Allowed, "keys are independent")
	assert.Equal(t, 1, info.Remaining)

	// one token comes back every 30s
	now = now.Add(30 * time.Second)
	info, err = tb.Allow(ctx, "a")
	require.NoError(t, err)
	assert.True(t, info.Allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Equal(t, now.Add(time.Minute), info.ResetAt)
}

func TestTokenBucketPrunesIdleKeys(t *testing.T) {
	now := time.Unix(1000, 0)
	tb := NewTokenBucket(5, time.Second)
	tb.now = func() time.Time { return now }

	_, _ = tb.Allow(context.Background(), "a")
	_, _ = tb.Allow(context.Background(), "b")
	assert.Equal(t, 2, tb.Len())

	now = now.Add(2 * time.Second)
	_, _ = tb.Allow(context.Background(), "c")
	assert.Equal(t, 1, tb.Len())
}

func TestRedisLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	l := NewRedisLimiter(client, 2, time.Minute, "eggmath:ratelimit:")
	t.Cleanup(func() { _ = l.Close() })
	ctx := context.Background()

	for i, want := range []bool{true, true, false} {
		info, err := l.Allow(ctx, "ip:10.0.0.1")
		require.NoError(t, err)
		assert.Equal(t, want, info.Allowed, "request %d", i)
	}
	assert.True(t, mr.Exists("eggmath:ratelimit:ip:10.0.0.1"))

	info, err := l.Allow(ctx, "ip:10.0.0.2")
	require.NoError(t, err)
	assert.True(t, info.Allowed)
	assert.Equal(t, 1, info.Remaining)

	mr.Close()
	_, err = l.Allow(ctx, "ip:10.0.0.1")
	assert.ErrorContains(t, err, "rate limit check failed")
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (*LimitInfo, error) {
	return nil, errors.New("backend down")
}

func TestRateLimitMiddleware(t *testing.T) {
	opt, err := optimizer.New(optimizer.WithGroups("id-reduce-fp-safe"))
	require.NoError(t, err)
	s := New(opt, nil, WithRateLimit(NewTokenBucket(1, time.Hour)))

	w := do(t, s, http.MethodPost, "/v1/optimize", `{"expr": "(+ x 0)"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = do(t, s, http.MethodPost, "/v1/optimize", `{"expr": "(+ x 0)"}`)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "rate_limited", decode[ErrorResponse](t, w).Error)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// metadata routes are not throttled
	w = do(t, s, http.MethodGet, "/v1/vocabulary", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitFailsOpen(t *testing.T) {
	h := RateLimit(failingLimiter{}, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/optimize", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestClientKey(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.7:5123"
	assert.Equal(t, "ip:192.0.2.7", clientKey(r))

	r = r.WithContext(context.WithValue(r.Context(), subjectKey{}, "ci-bot"))
	assert.Equal(t, "subject:ci-bot", clientKey(r))
}
