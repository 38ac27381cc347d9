package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"voice-task-board/pkg/response"
)

// RateLimit rejects clients that exceed the configured requests per minute.
func (mw Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := extractIP(c.Request)
		if !mw.limiter.Allow(ip) {
			mw.l.Warnf(c.Request.Context(), "middleware.RateLimit: limit exceeded for %s on %s", ip, c.FullPath())
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}

// extractIP extracts client IP from request
func extractIP(r *http.Request) string {
	// Check X-Forwarded-For header (proxy/load balancer)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}

	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// rateLimiter keeps one token bucket per client, evicting idle ones.
type rateLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
	disabled bool
}

func newRateLimiter(requestsPerMin int) *rateLimiter {
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](
			1000,          // Max 1000 unique clients
			nil,           // No eviction callback
			time.Minute*5, // TTL: 5 minutes
		),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0), // Per second
		burst:    burst,
		disabled: requestsPerMin <= 0,
	}
}

func (rl *rateLimiter) Allow(key string) bool {
	if rl.disabled {
		return true
	}
	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}
	return limiter.Allow()
}
