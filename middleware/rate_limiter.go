package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// TokenBucket is a simple per-key token bucket.
type TokenBucket struct {
	rate       float64 // tokens refilled per second
	capacity   int
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

// NewTokenBucket creates a full bucket.
func NewTokenBucket(rate float64, capacity int) *TokenBucket {
	return &TokenBucket{
		rate:       rate,
		capacity:   capacity,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// Allow consumes one token if available.
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.lastRefill = now

	tb.tokens += elapsed * tb.rate
	if tb.tokens > float64(tb.capacity) {
		tb.tokens = float64(tb.capacity)
	}

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

var (
	ipLimiters   = make(map[string]*TokenBucket)
	ipLimitersMu sync.Mutex
)

func getIPLimiter(ip string, rate float64, burst int) *TokenBucket {
	ipLimitersMu.Lock()
	defer ipLimitersMu.Unlock()

	limiter, exists := ipLimiters[ip]
	if !exists {
		limiter = NewTokenBucket(rate, burst)
		ipLimiters[ip] = limiter
	}
	return limiter
}

// RateLimit limits requests per client IP. Applied to the insight route,
// where every request costs a generative-AI provider call.
func RateLimit(rate float64, burst int) gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := getIPLimiter(c.ClientIP(), rate, burst)
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"message": "Too many requests, please slow down",
				"data":    nil,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
