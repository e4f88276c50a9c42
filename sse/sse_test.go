package sse

import (
	"encoding/json"
	"testing"

	"github.com/iliketocde/Finance-Tracker/insights"
)

func TestSendSnapshotDelivers(t *testing.T) {
	stream := &ClientStream{
		Messages: make(chan string, 1),
		Done:     make(chan struct{}),
	}
	Register("user-1", stream)
	defer Unregister("user-1", stream)

	SendSnapshot("user-1", insights.Snapshot{Window: insights.WindowMonthly, TotalSpent: 42})

	select {
	case payload := <-stream.Messages:
		var snap insights.Snapshot
		if err := json.Unmarshal([]byte(payload), &snap); err != nil {
			t.Fatalf("payload not a snapshot: %v", err)
		}
		if snap.TotalSpent != 42 {
			t.Errorf("total = %v, want 42", snap.TotalSpent)
		}
	default:
		t.Fatal("no snapshot delivered")
	}
}

func TestSendSnapshotNoSubscriber(t *testing.T) {
	// Must not panic or block when nobody is listening.
	SendSnapshot("nobody", insights.Snapshot{})
}

func TestSendSnapshotFullStreamDrops(t *testing.T) {
	stream := &ClientStream{
		Messages: make(chan string), // unbuffered, no reader
		Done:     make(chan struct{}),
	}
	Register("user-2", stream)
	defer Unregister("user-2", stream)

	// Must drop instead of blocking.
	SendSnapshot("user-2", insights.Snapshot{})
}

func TestUnregisterOnlyRemovesOwnStream(t *testing.T) {
	old := &ClientStream{Messages: make(chan string, 1), Done: make(chan struct{})}
	replacement := &ClientStream{Messages: make(chan string, 1), Done: make(chan struct{})}

	Register("user-3", old)
	Register("user-3", replacement)
	Unregister("user-3", old) // stale teardown must not drop the new stream

	SendSnapshot("user-3", insights.Snapshot{TotalSpent: 7})
	select {
	case <-replacement.Messages:
	default:
		t.Fatal("replacement stream lost its registration")
	}
	Unregister("user-3", replacement)
}
