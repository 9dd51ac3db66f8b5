package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// clientLimiter tracks a token bucket per client IP so a single client
// cannot hammer the credential endpoints.
type clientLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientEntry
	limit    rate.Limit
	burst    int
	lifetime time.Duration
}

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit returns a middleware allowing r requests per second with the
// given burst per client IP. Stale entries are evicted opportunistically.
func RateLimit(r rate.Limit, burst int) gin.HandlerFunc {
	cl := &clientLimiter{
		clients:  make(map[string]*clientEntry),
		limit:    r,
		burst:    burst,
		lifetime: 10 * time.Minute,
	}

	return func(c *gin.Context) {
		if !cl.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (cl *clientLimiter) allow(ip string) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := time.Now()
	entry, ok := cl.clients[ip]
	if !ok {
		entry = &clientEntry{limiter: rate.NewLimiter(cl.limit, cl.burst)}
		cl.clients[ip] = entry
	}
	entry.lastSeen = now

	if len(cl.clients) > 1024 {
		for key, e := range cl.clients {
			if now.Sub(e.lastSeen) > cl.lifetime {
				delete(cl.clients, key)
			}
		}
	}

	return entry.limiter.Allow()
}
