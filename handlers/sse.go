package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iliketocde/Finance-Tracker/logger"
	"github.com/iliketocde/Finance-Tracker/middleware"
	"github.com/iliketocde/Finance-Tracker/sse"
	"go.uber.org/zap"
)

// HandleSSE streams freshly recomputed spending snapshots to the insights
// screen. EventSource cannot set headers, so the token arrives as a query
// parameter and is verified with the same claims check the middleware uses.
func HandleSSE(c *gin.Context) {
	tokenString := c.DefaultQuery("token", "")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid token"})
		return
	}

	claims, err := middleware.ParseClaims(tokenString)
	if err != nil {
		logger.Get().Warn("SSE authentication failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.String(http.StatusInternalServerError, "Streaming unsupported!")
		return
	}

	stream := &sse.ClientStream{
		Messages: make(chan string, 100),
		Done:     make(chan struct{}),
	}
	sse.Register(claims.Sub, stream)
	defer sse.Unregister(claims.Sub, stream)

	logger.Get().Info("SSE stream established",
		zap.String("user_id", claims.Sub))

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-stream.Messages:
			if !ok {
				return false
			}
			c.Writer.Write([]byte("data: " + msg + "\n\n"))
			flusher.Flush()
			return true
		case <-c.Request.Context().Done():
			logger.Get().Debug("SSE client disconnected",
				zap.String("user_id", claims.Sub))
			return false
		case <-stream.Done:
			return false
		}
	})
}
