package monitoring

import (
	"github.com/ZanzyTHEbar/teamsynth/internal/errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

// RequestIDMiddleware assigns every request a correlation id, reusing the
// caller's X-Request-ID when present, and echoes it on the response.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(errors.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			c.Request.Header.Set(errors.RequestIDHeader, id)
		}
		c.Set(RequestIDKey, id)
		c.Header(errors.RequestIDHeader, id)
		c.Next()
	}
}
