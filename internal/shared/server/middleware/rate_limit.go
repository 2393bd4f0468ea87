package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"leasing-backend/internal/shared/server/respond"
)

// Rate limit groups.
const (
	GroupRead  = "READ"
	GroupWrite = "WRITE"
)

// Rule is a token bucket: Rate tokens per second up to Burst.
type Rule struct {
	Rate  float64
	Burst int
}

type RateLimitConfig struct {
	Rules   map[string]Rule
	GroupOf func(*gin.Context) string
	Limiter *Limiter
}

// Limiter keeps one bucket per caller and group.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

type bucket struct {
	tokens float64
	last   time.Time
}

func NewLimiter(now func() time.Time) *Limiter {
	if now == nil {
		now = time.Now
	}
	return &Limiter{buckets: make(map[string]*bucket), now: now}
}

// MethodGroup puts safe methods in GroupRead and everything else in GroupWrite.
func MethodGroup(c *gin.Context) string {
	switch c.Request.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return GroupRead
	default:
		return GroupWrite
	}
}

// RateLimit rejects callers that exhaust their bucket with 429 and Retry-After.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limiter == nil {
		cfg.Limiter = NewLimiter(nil)
	}
	if cfg.GroupOf == nil {
		cfg.GroupOf = MethodGroup
	}
	return func(c *gin.Context) {
		group := cfg.GroupOf(c)
		rule, ok := cfg.Rules[group]
		if !ok {
			c.Next()
			return
		}
		caller := strings.TrimSpace(UserIDFromContext(c))
		if caller == "" {
			caller = c.ClientIP()
		}
		wait, ok := cfg.Limiter.Take(caller+"|"+group, rule)
		if ok {
			c.Next()
			return
		}
		waitMs := wait.Milliseconds()
		if waitMs <= 0 {
			waitMs = 1000
		}
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(float64(waitMs)/1000.0))))
		respond.Error(c, http.StatusTooManyRequests, "rate_limited", "Too many requests", gin.H{"retryAfterMs": waitMs})
	}
}

// Take consumes one token for key. When none is available it reports how long
// until the next one.
func (l *Limiter) Take(key string, rule Rule) (time.Duration, bool) {
	if l == nil || rule.Rate <= 0 || rule.Burst <= 0 {
		return 0, true
	}
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(rule.Burst), last: now}
		l.buckets[key] = b
	}
	if elapsed := now.Sub(b.last).Seconds(); elapsed > 0 {
		b.tokens = math.Min(float64(rule.Burst), b.tokens+elapsed*rule.Rate)
		b.last = now
	}
	if b.tokens >= 1 {
		b.tokens--
		return 0, true
	}
	wait := (1 - b.tokens) / rule.Rate
	return time.Duration(math.Ceil(wait*1000)) * time.Millisecond, false
}
