// Package middleware holds gin middleware for the HTTP surface.
package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"sereno-backend/internal/model"
)

// RateLimiter enforces a fixed-window cap shared globally across all
// callers: one bucket, not one per client. The window resets wholesale
// when it elapses.
type RateLimiter struct {
	mu          sync.Mutex
	window      time.Duration
	max         int
	windowStart time.Time
	count       int
	now         func() time.Time
}

func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		window: window,
		max:    max,
		now:    time.Now,
	}
}

func (l *RateLimiter) allow() (ok bool, remaining int, reset time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if l.windowStart.IsZero() || now.Sub(l.windowStart) >= l.window {
		l.windowStart = now
		l.count = 0
	}

	reset = l.windowStart.Add(l.window)
	if l.count >= l.max {
		return false, 0, reset
	}

	l.count++
	remaining = l.max - l.count
	return true, remaining, reset
}

// Handler rejects requests over the cap with 429 and reports the window
// through the standard RateLimit headers.
func (l *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, remaining, reset := l.allow()

		c.Header("RateLimit-Limit", fmt.Sprintf("%d", l.max))
		c.Header("RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("RateLimit-Reset", fmt.Sprintf("%d", int(time.Until(reset).Seconds())))

		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, model.ErrorResponse{
				Error: "Too many requests, please try again later.",
			})
			return
		}

		c.Next()
	}
}
