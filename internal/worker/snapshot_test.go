package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/finfolio/folio/internal/valuation"
)

type mockSnapshotGenerator struct {
	mu     sync.Mutex
	owners []string
}

func (m *mockSnapshotGenerator) Generate(_ context.Context, owner string, _ time.Time) (valuation.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.owners = append(m.owners, owner)
	return valuation.Snapshot{Owner: owner}, nil
}

type mockHook struct {
	callCount atomic.Int32
}

func (m *mockHook) Export(_ context.Context, _ valuation.Snapshot) error {
	m.callCount.Add(1)
	return nil
}

func TestSnapshotWorkerRunsAndShutdown(t *testing.T) {
	mock := &mockSnapshotGenerator{}
	w := NewSnapshotWorker(mock, []string{"alice", "bob"}, 50*time.Millisecond, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	w.Run(ctx)

	mock.mu.Lock()
	defer mock.mu.Unlock()
	if len(mock.owners) < 2 {
		t.Fatalf("generated %d snapshots, want >= 2", len(mock.owners))
	}
	if mock.owners[0] != "alice" || mock.owners[1] != "bob" {
		t.Errorf("first round owners = %v, want [alice bob]", mock.owners[:2])
	}
}

func TestSnapshotWorkerCallsHook(t *testing.T) {
	mock := &mockSnapshotGenerator{}
	hook := &mockHook{}
	w := NewSnapshotWorker(mock, []string{"alice"}, time.Hour, hook)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	w.Run(ctx)

	if got := hook.callCount.Load(); got < 1 {
		t.Errorf("hook call count = %d, want >= 1", got)
	}
}

func TestSnapshotWorkerNoOwnersReturns(t *testing.T) {
	mock := &mockSnapshotGenerator{}
	w := NewSnapshotWorker(mock, nil, time.Hour, nil)

	done := make(chan struct{})
	go func() {
		w.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker with no owners should return immediately")
	}
}
