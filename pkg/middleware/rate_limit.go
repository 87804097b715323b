package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yeisme/docvault/pkg/configs"
)

// limiter 表的上限；超过后整表重置，避免按 IP 维度无限增长.
const maxLimiterEntries = 10000

// RateLimitMiddleware 按配置的维度（global/ip/header:Name）做令牌桶限流.
func RateLimitMiddleware(cfg configs.RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.RPS <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	mode := strings.ToLower(strings.TrimSpace(cfg.Key))
	if mode == "" || mode == "global" {
		global := rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)

		return func(c *gin.Context) {
			if !global.Allow() {
				tooManyRequests(c)
				return
			}

			c.Next()
		}
	}

	pool := &limiterPool{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(cfg.RPS),
		burst:    cfg.Burst,
	}

	headerName := strings.TrimPrefix(mode, "header:")

	return func(c *gin.Context) {
		key := ""
		if strings.HasPrefix(mode, "header:") {
			key = c.GetHeader(headerName)
		}

		if key == "" {
			key = clientIP(c)
		}

		if key == "" {
			key = "unknown"
		}

		if !pool.get(key).Allow() {
			tooManyRequests(c)
			return
		}

		c.Next()
	}
}

type limiterPool struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func (p *limiterPool) get(key string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if l, ok := p.limiters[key]; ok {
		return l
	}

	if len(p.limiters) >= maxLimiterEntries {
		p.limiters = make(map[string]*rate.Limiter)
	}

	l := rate.NewLimiter(p.rps, p.burst)
	p.limiters[key] = l

	return l
}

func tooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
}

func clientIP(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}

	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}

	return c.Request.RemoteAddr
}
