package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/webtoon-api/errors"
	"github.com/kbukum/webtoon-api/ratelimit"
)

// Rate limit response headers.
const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
	HeaderRetryAfter         = "Retry-After"
)

// KeyFunc extracts the rate limit key from a request.
type KeyFunc func(*gin.Context) string

// IPBasedKey keys on the client IP as resolved by gin's trusted proxy rules.
func IPBasedKey(c *gin.Context) string {
	return c.ClientIP()
}

// RateLimit counts every request against its origin and rejects with 429
// TOO_MANY_REQUESTS once the origin's window budget is spent. Rejected
// requests never reach later handlers.
func RateLimit(limiter *ratelimit.Limiter, keyFuncs ...KeyFunc) gin.HandlerFunc {
	keyFunc := IPBasedKey
	if len(keyFuncs) > 0 && keyFuncs[0] != nil {
		keyFunc = keyFuncs[0]
	}

	return func(c *gin.Context) {
		d := limiter.Allow(keyFunc(c))

		c.Header(HeaderRateLimitLimit, strconv.Itoa(d.Limit))
		c.Header(HeaderRateLimitRemaining, strconv.Itoa(d.Remaining))
		c.Header(HeaderRateLimitReset, strconv.FormatInt(d.ResetAt.Unix(), 10))

		if !d.Allowed {
			c.Header(HeaderRetryAfter, strconv.FormatInt(int64(d.RetryAfter.Seconds()), 10))
			abortWithError(c, apperrors.TooManyRequests())
			return
		}
		c.Next()
	}
}
