package middleware

import (
	"net/http"
	"time"

	"github.com/WatsonMulkey/The-Number/internal/store"
	"github.com/WatsonMulkey/The-Number/internal/util"

	"github.com/gin-gonic/gin"
)

// RateLimit caps requests per client IP for one scope over a sliding
// window, backed by the rate limit store.
func RateLimit(limits *store.RateLimitStore, scope string, max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := limits.Allow(c.ClientIP(), scope, max, window, time.Now())
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "rate limit check failed")
			c.Abort()
			return
		}
		if !ok {
			util.Error(c, http.StatusTooManyRequests, util.CodeRateLimited, "too many requests, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
