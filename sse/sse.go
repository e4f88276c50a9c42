package sse

import (
	"encoding/json"
	"sync"

	"github.com/iliketocde/Finance-Tracker/insights"
	"github.com/iliketocde/Finance-Tracker/logger"
	"go.uber.org/zap"
)

// ClientStream is one user's live snapshot subscription. Messages carries
// serialized snapshots; Done signals teardown.
type ClientStream struct {
	Messages chan string
	Done     chan struct{}
}

var (
	Connections = make(map[string]*ClientStream)
	Mu          sync.RWMutex
)

// Register attaches a stream for the user, replacing any previous one. Each
// user has at most one live stream; a new screen subscription supersedes the
// old.
func Register(userID string, stream *ClientStream) {
	Mu.Lock()
	Connections[userID] = stream
	Mu.Unlock()
}

// Unregister drops the user's stream if it is still the given one.
func Unregister(userID string, stream *ClientStream) {
	Mu.Lock()
	if Connections[userID] == stream {
		delete(Connections, userID)
	}
	Mu.Unlock()
}

// SendSnapshot delivers a freshly computed spending snapshot to the user's
// stream, if one is connected. Delivery is best-effort: a slow or gone
// client drops the snapshot rather than blocking the worker.
func SendSnapshot(userID string, snapshot insights.Snapshot) {
	Mu.RLock()
	stream, ok := Connections[userID]
	Mu.RUnlock()
	if !ok {
		logger.Get().Debug("no client stream for user",
			zap.String("user_id", userID))
		return
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		logger.Get().Error("failed to marshal snapshot",
			zap.String("user_id", userID),
			zap.Error(err))
		return
	}

	select {
	case stream.Messages <- string(payload):
		logger.Get().Debug("snapshot sent to client",
			zap.String("user_id", userID))
	default:
		logger.Get().Warn("snapshot dropped, client stream full or closed",
			zap.String("user_id", userID))
	}
}
