package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iliketocde/Finance-Tracker/insights"
	"github.com/iliketocde/Finance-Tracker/logger"
	"github.com/iliketocde/Finance-Tracker/middleware"
	"github.com/iliketocde/Finance-Tracker/sse"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

// HandleLiveSnapshots is the WebSocket variant of the snapshot stream, for
// clients where EventSource is unavailable. It registers the same per-user
// stream the SSE handler does, sends one snapshot immediately so the screen
// is never blank, then relays recomputed snapshots until the socket drops.
func HandleLiveSnapshots(c *gin.Context) {
	tokenString := c.DefaultQuery("token", "")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid token"})
		return
	}

	claims, err := middleware.ParseClaims(tokenString)
	if err != nil {
		logger.Get().Warn("WebSocket authentication failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Get().Error("failed to upgrade connection",
			zap.String("user_id", claims.Sub),
			zap.Error(err))
		return
	}

	stream := &sse.ClientStream{
		Messages: make(chan string, 100),
		Done:     make(chan struct{}),
	}
	sse.Register(claims.Sub, stream)

	logger.Get().Info("WebSocket stream established",
		zap.String("user_id", claims.Sub),
		zap.String("remote_addr", c.Request.RemoteAddr))

	window := insights.ParseWindow(c.Query("window"))
	if snapshot, err := RecomputeSnapshot(c.Request.Context(), claims.Sub, window); err == nil {
		if payload, err := json.Marshal(snapshot); err == nil {
			stream.Messages <- string(payload)
		}
	} else {
		logger.Get().Warn("initial snapshot unavailable",
			zap.String("user_id", claims.Sub),
			zap.Error(err))
	}

	go writeSnapshots(claims.Sub, conn, stream)
	go monitorConnection(claims.Sub, conn, stream)
}

// writeSnapshots relays the user's stream onto the socket until either side
// closes.
func writeSnapshots(userID string, conn *websocket.Conn, stream *sse.ClientStream) {
	for {
		select {
		case msg, ok := <-stream.Messages:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				logger.Get().Debug("write failed, closing stream",
					zap.String("user_id", userID),
					zap.Error(err))
				return
			}
		case <-stream.Done:
			return
		}
	}
}

// monitorConnection owns teardown: when the read loop errors (client gone or
// idle past the deadline) it closes the socket and unregisters the stream.
func monitorConnection(userID string, conn *websocket.Conn, stream *sse.ClientStream) {
	defer func() {
		close(stream.Done)
		conn.Close()
		sse.Unregister(userID, stream)
		logger.Get().Info("WebSocket stream closed",
			zap.String("user_id", userID))
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(60 * time.Second)); err != nil {
			logger.Get().Error("error setting read deadline",
				zap.String("user_id", userID),
				zap.Error(err))
			return
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			logger.Get().Debug("connection closed",
				zap.String("user_id", userID),
				zap.Error(err))
			return
		}
	}
}
