package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an ID so log lines from one request can
// be correlated. An incoming ID from a trusted proxy is kept; otherwise one
// is generated.
func RequestID(c *gin.Context) {
	id := c.Request.Header.Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set("request_id", id)
	c.Writer.Header().Set(RequestIDHeader, id)
	c.Next()
}
