package server

import (
	"github.com/gin-gonic/gin"
)

// QueryRateLimit throttles metric bundle reads per client IP. Redis
// outages fail open: a broken limiter must not take the dashboard down
// with it.
func (s *Server) QueryRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.queryLimiter.Enabled() {
			c.Next()
			return
		}

		allowed, err := s.queryLimiter.AllowClient(c.Request.Context(), c.ClientIP())
		if err != nil {
			if s.obsMetrics != nil {
				s.obsMetrics.RecordRateLimitDenied(c.Request.Context(), c.FullPath(), "limiter_error")
			}
			c.Next()
			return
		}
		if !allowed {
			if s.obsMetrics != nil {
				s.obsMetrics.RecordRateLimitDenied(c.Request.Context(), c.FullPath(), "throttled")
			}
			AbortWithError(c, ErrTooManyRequests)
			return
		}

		if s.obsMetrics != nil {
			s.obsMetrics.RecordRateLimitAllowed(c.Request.Context(), c.FullPath())
		}
		c.Next()
	}
}
