package middleware

import (
	"net/http"
	"strconv"

	"court-booking/internal/handler/httperr"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

var errRateLimited = errs.New("rate limit exceeded")

// RateLimit throttles per member when authenticated and per client ip otherwise.
func RateLimit(store *ratelimit.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if memberID, ok := GetMemberID(c); ok {
			key = "member:" + memberID.String()
		}

		if !store.Allow(key) {
			c.Header("Retry-After", strconv.Itoa(1))
			httperr.AbortWithError(c, http.StatusTooManyRequests, errRateLimited, "Too many requests", nil)
			return
		}
		c.Next()
	}
}
