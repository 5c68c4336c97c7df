package middleware

import (
	"hash/fnv"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pool-flow-service/internal/domain/dto"
	"github.com/guttosm/pool-flow-service/internal/i18n"
	"github.com/guttosm/pool-flow-service/internal/metrics"
)

const defaultLimiterShards = 16

// quota is the fixed-window allowance of one caller.
type quota struct {
	used    int
	resetAt time.Time
}

type limiterShard struct {
	mu     sync.Mutex
	quotas map[string]*quota
}

// RateLimiter gives every caller a fixed number of API requests per window.
// Token holders are keyed by subject; API key holders and anonymous
// callers share the one API key subject, so they are keyed by client IP.
// Callers are spread over shards so concurrent requests rarely share a lock.
type RateLimiter struct {
	shards   []*limiterShard
	limit    int
	window   time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter allows limit requests per window and starts the sweep of idle callers.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return newRateLimiter(limit, window, defaultLimiterShards, time.Now)
}

func newRateLimiter(limit int, window time.Duration, shards int, now func() time.Time) *RateLimiter {
	if shards <= 0 {
		shards = defaultLimiterShards
	}
	rl := &RateLimiter{
		shards: make([]*limiterShard, shards),
		limit:  limit,
		window: window,
		now:    now,
		stopCh: make(chan struct{}),
	}
	for i := range rl.shards {
		rl.shards[i] = &limiterShard{quotas: make(map[string]*quota)}
	}

	go rl.sweep()
	return rl
}

// Middleware enforces the quota and reports it in X-RateLimit-* headers.
// It must run after Authenticate to see the subject.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := callerKey(c)
		allowed, remaining, resetAt := rl.take(key)

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if allowed {
			c.Next()
			return
		}

		metrics.RecordRateLimited(strings.SplitN(key, ":", 2)[0])
		wait := int(math.Ceil(resetAt.Sub(rl.now()).Seconds()))
		if wait < 1 {
			wait = 1
		}
		c.Header("Retry-After", strconv.Itoa(wait))

		message := i18n.GetTranslator().Translate(i18n.ErrKeyRateLimitExceeded, i18n.GetLocale(c))
		c.AbortWithStatusJSON(http.StatusTooManyRequests,
			dto.NewError(dto.ErrCodeRateLimit, message).WithRequestID(GetRequestID(c)))
	}
}

// callerKey returns "subject:<sub>" for token holders and "ip:<addr>" otherwise.
func callerKey(c *gin.Context) string {
	if subject := GetSubject(c); subject != "" && subject != APIKeySubject {
		return "subject:" + subject
	}
	return "ip:" + c.ClientIP()
}

// take spends one request from key's quota, opening a new window when the old one ended.
func (rl *RateLimiter) take(key string) (allowed bool, remaining int, resetAt time.Time) {
	shard := rl.shardFor(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	t := rl.now()
	q, ok := shard.quotas[key]
	if !ok || !t.Before(q.resetAt) {
		q = &quota{resetAt: t.Add(rl.window)}
		shard.quotas[key] = q
	}

	if q.used >= rl.limit {
		return false, 0, q.resetAt
	}
	q.used++
	return true, rl.limit - q.used, q.resetAt
}

func (rl *RateLimiter) shardFor(key string) *limiterShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return rl.shards[h.Sum32()%uint32(len(rl.shards))]
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.dropExpired()
		case <-rl.stopCh:
			return
		}
	}
}

// dropExpired forgets callers whose window ended.
func (rl *RateLimiter) dropExpired() {
	t := rl.now()
	for _, shard := range rl.shards {
		shard.mu.Lock()
		for key, q := range shard.quotas {
			if !t.Before(q.resetAt) {
				delete(shard.quotas, key)
			}
		}
		shard.mu.Unlock()
	}
}

// Stop ends the sweep goroutine. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}
