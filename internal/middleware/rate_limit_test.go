package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pool-flow-service/internal/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeClock is advanced by hand so window resets are deterministic.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*RateLimiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(limit, window, 4, clock.Now)
	t.Cleanup(rl.Stop)
	return rl, clock
}

func TestNewRateLimiter(t *testing.T) {
	rl := NewRateLimiter(10, time.Minute)
	defer rl.Stop()

	assert.Len(t, rl.shards, defaultLimiterShards)
	assert.Equal(t, 10, rl.limit)
	assert.Equal(t, time.Minute, rl.window)
}

func TestRateLimiter_Take(t *testing.T) {
	tests := []struct {
		name        string
		limit       int
		requests    int
		wantAllowed int
	}{
		{name: "under the limit", limit: 5, requests: 3, wantAllowed: 3},
		{name: "exactly the limit", limit: 5, requests: 5, wantAllowed: 5},
		{name: "over the limit", limit: 5, requests: 8, wantAllowed: 5},
		{name: "one request per window", limit: 1, requests: 3, wantAllowed: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl, _ := newTestLimiter(t, tt.limit, time.Minute)

			allowed := 0
			for i := 0; i < tt.requests; i++ {
				if ok, _, _ := rl.take("subject:ops"); ok {
					allowed++
				}
			}
			assert.Equal(t, tt.wantAllowed, allowed)
		})
	}
}

func TestRateLimiter_RemainingAndReset(t *testing.T) {
	rl, clock := newTestLimiter(t, 3, time.Minute)
	start := clock.Now()

	for want := 2; want >= 0; want-- {
		ok, remaining, resetAt := rl.take("subject:ops")
		require.True(t, ok)
		assert.Equal(t, want, remaining)
		assert.Equal(t, start.Add(time.Minute), resetAt)
	}

	ok, remaining, _ := rl.take("subject:ops")
	assert.False(t, ok)
	assert.Zero(t, remaining)

	clock.Advance(time.Minute)
	ok, remaining, resetAt := rl.take("subject:ops")
	assert.True(t, ok)
	assert.Equal(t, 2, remaining)
	assert.Equal(t, start.Add(2*time.Minute), resetAt)
}

func TestRateLimiter_SeparateCallers(t *testing.T) {
	rl, _ := newTestLimiter(t, 2, time.Minute)

	for _, key := range []string{"subject:ops", "subject:design", "ip:10.0.0.1"} {
		for i := 0; i < 2; i++ {
			ok, _, _ := rl.take(key)
			assert.True(t, ok, "%s request %d", key, i+1)
		}
		ok, _, _ := rl.take(key)
		assert.False(t, ok, "%s should be limited", key)
	}
}

func TestRateLimiter_DropExpired(t *testing.T) {
	rl, clock := newTestLimiter(t, 2, time.Minute)
	rl.take("subject:ops")
	rl.take("ip:10.0.0.1")

	clock.Advance(30 * time.Second)
	rl.take("subject:design")
	clock.Advance(30 * time.Second)
	rl.dropExpired()

	total := 0
	for _, shard := range rl.shards {
		total += len(shard.quotas)
	}
	assert.Equal(t, 1, total)
}

func TestRateLimiter_Middleware(t *testing.T) {
	tests := []struct {
		name        string
		subject     string
		limit       int
		requests    int
		wantOK      int
		wantKeyType string
	}{
		{name: "token holder limited by subject", subject: "ops@summerlit", limit: 3, requests: 5, wantOK: 3, wantKeyType: "subject"},
		{name: "api key holder limited by ip", subject: APIKeySubject, limit: 2, requests: 3, wantOK: 2, wantKeyType: "ip"},
		{name: "anonymous caller limited by ip", limit: 2, requests: 2, wantOK: 2, wantKeyType: "ip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl, _ := newTestLimiter(t, tt.limit, time.Minute)
			before := testutil.ToFloat64(metrics.RateLimitedTotal.WithLabelValues(tt.wantKeyType))

			router := gin.New()
			router.Use(RequestID())
			router.Use(func(c *gin.Context) {
				if tt.subject != "" {
					c.Set(ContextKeySubject, tt.subject)
				}
				c.Next()
			})
			router.Use(rl.Middleware())
			router.POST("/api/calculate", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			ok, limited := 0, 0
			var last *httptest.ResponseRecorder
			for i := 0; i < tt.requests; i++ {
				req := httptest.NewRequest(http.MethodPost, "/api/calculate", nil)
				req.RemoteAddr = "192.168.1.1:12345"
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)
				switch w.Code {
				case http.StatusOK:
					ok++
				case http.StatusTooManyRequests:
					limited++
					last = w
				}
			}

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.requests-tt.wantOK, limited)
			assert.Equal(t, before+float64(limited), testutil.ToFloat64(metrics.RateLimitedTotal.WithLabelValues(tt.wantKeyType)))
			if last != nil {
				assert.Equal(t, "60", last.Header().Get("Retry-After"))
				assert.Contains(t, last.Body.String(), "rate_limit")
			}
		})
	}
}

func TestRateLimiter_Headers(t *testing.T) {
	rl, clock := newTestLimiter(t, 3, time.Minute)

	router := gin.New()
	router.Use(rl.Middleware())
	router.GET("/api/runs/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/runs/abc", nil))

	assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, strconv.FormatInt(clock.Now().Add(time.Minute).Unix(), 10), w.Header().Get("X-RateLimit-Reset"))
	assert.Empty(t, w.Header().Get("Retry-After"))
}

func TestRateLimiter_CallerKey(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		want    string
	}{
		{name: "token subject", subject: "ops@summerlit", want: "subject:ops@summerlit"},
		{name: "api key subject", subject: APIKeySubject, want: "ip:192.168.1.1"},
		{name: "anonymous", want: "ip:192.168.1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = "192.168.1.1:12345"
			if tt.subject != "" {
				c.Set(ContextKeySubject, tt.subject)
			}

			assert.Equal(t, tt.want, callerKey(c))
		})
	}
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	assert.NotPanics(t, func() {
		rl.Stop()
		rl.Stop()
	})
}
