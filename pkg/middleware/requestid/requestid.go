package requestid

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Header is the request ID header, honored when the caller supplies one.
const Header = "X-Request-ID"

const ctxKey = "request_id"

// Middleware tags every request with an ID and echoes it back to the
// caller.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxKey, id)
		c.Writer.Header().Set(Header, id)
		c.Next()
	}
}

// Value returns the request ID for the current request, empty when the
// middleware did not run.
func Value(c *gin.Context) string {
	id, _ := c.Value(ctxKey).(string)
	return id
}
