// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/javajoker/draft-backend/internal/i18n"
	"github.com/javajoker/draft-backend/internal/utils"
)

const visitorTTL = 3 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiter struct {
	visitors map[string]*visitor
	mtx      sync.Mutex
	rate     rate.Limit
	burst    int
	stop     chan struct{}
	once     sync.Once
}

// NewRateLimiter allows r requests per second per client IP with burst b.
func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    b,
		stop:     make(chan struct{}),
	}

	// Clean up old visitors every minute
	go rl.cleanupVisitors(time.Minute)

	return rl
}

func (rl *RateLimiter) cleanupVisitors(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mtx.Lock()
			for ip, v := range rl.visitors {
				if time.Since(v.lastSeen) > visitorTTL {
					delete(rl.visitors, ip)
				}
			}
			rl.mtx.Unlock()
		}
	}
}

// Stop ends the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.rate, rl.burst)
		rl.visitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := rl.getVisitor(c.ClientIP())

		if !limiter.Allow() {
			lang := utils.GetLangFromContext(c)
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": i18n.T(lang, i18n.KeyRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
