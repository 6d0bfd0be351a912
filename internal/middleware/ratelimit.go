package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cowtrack/analytics-backend-go/pkg/response"
)

// rateLimiter tracks request times per client over a sliding window.
// Stale entries are pruned on the client's next request.
type rateLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	hits   map[string][]time.Time
}

func (rl *rateLimiter) allow(key string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-rl.window)
	kept := rl.hits[key][:0]
	for _, ts := range rl.hits[key] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= rl.limit {
		rl.hits[key] = kept
		return false
	}
	rl.hits[key] = append(kept, now)
	return true
}

// RateLimit caps requests per client IP over a sliding window. It guards the
// administrative routes, where each accepted request can trigger a full
// ingestion run.
func RateLimit(limit int, window time.Duration) gin.HandlerFunc {
	rl := &rateLimiter{limit: limit, window: window, hits: make(map[string][]time.Time)}

	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP(), time.Now()) {
			response.Error(c, http.StatusTooManyRequests, "rate limit exceeded")
			c.Abort()
			return
		}
		c.Next()
	}
}
