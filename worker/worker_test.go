package worker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/iliketocde/Finance-Tracker/insights"
	"github.com/iliketocde/Finance-Tracker/models"
	"github.com/iliketocde/Finance-Tracker/sse"
)

func TestWorkerPoolRecomputesAndDelivers(t *testing.T) {
	recompute := func(ctx context.Context, userID string) (insights.Snapshot, error) {
		return insights.Snapshot{Window: insights.WindowMonthly, TotalSpent: 99}, nil
	}

	pool := NewWorkerPool(2, recompute)
	pool.Start()
	defer pool.Stop()

	stream := &sse.ClientStream{
		Messages: make(chan string, 1),
		Done:     make(chan struct{}),
	}
	sse.Register("worker-test-user", stream)
	defer sse.Unregister("worker-test-user", stream)

	job, err := json.Marshal(models.ExpenseEvent{UserID: "worker-test-user", ExpenseID: "e1", Amount: 10})
	if err != nil {
		t.Fatal(err)
	}
	pool.Submit(job, 0)

	select {
	case payload := <-stream.Messages:
		var snap insights.Snapshot
		if err := json.Unmarshal([]byte(payload), &snap); err != nil {
			t.Fatalf("payload not a snapshot: %v", err)
		}
		if snap.TotalSpent != 99 {
			t.Errorf("total = %v, want 99", snap.TotalSpent)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot delivered within 2s")
	}
}

func TestWorkerPoolSkipsMalformedJobs(t *testing.T) {
	recompute := func(ctx context.Context, userID string) (insights.Snapshot, error) {
		t.Error("recompute called for malformed job")
		return insights.Snapshot{}, nil
	}

	pool := NewWorkerPool(1, recompute)
	pool.Start()

	pool.Submit([]byte("{not json"), 0)
	time.Sleep(50 * time.Millisecond)
	pool.Stop()
}

func TestWorkerPoolModuloPartitions(t *testing.T) {
	done := make(chan string, 1)
	recompute := func(ctx context.Context, userID string) (insights.Snapshot, error) {
		done <- userID
		return insights.Snapshot{}, nil
	}

	pool := NewWorkerPool(2, recompute)
	pool.Start()
	defer pool.Stop()

	job, _ := json.Marshal(models.ExpenseEvent{UserID: "u"})
	pool.Submit(job, 7) // partition beyond pool size maps onto a worker

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job on high partition never processed")
	}
}
