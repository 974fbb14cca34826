package queue

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/HariniKartheeswaran/queuectl/job"
	"github.com/HariniKartheeswaran/queuectl/store"
)

func awaitStatus(t *testing.T, m *Manager, id uuid.UUID, want job.Status, within time.Duration) *job.Job {
	t.Helper()
	deadline := time.Now().Add(within)
	for time.Now().Before(deadline) {
		j, err := m.GetJob(context.Background(), id)
		if err != nil {
			t.Fatalf("GetJob: %v", err)
		}
		if j != nil && j.Status == want {
			return j
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("job %s did not reach state %s within %s", id, want, within)
	return nil
}

func TestWorkerCompletesEnqueuedJob(t *testing.T) {
	dir := t.TempDir()
	st, err := store.New(filepath.Join(dir, "jobs.json"))
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	m := NewManager(st, filepath.Join(dir, "jobs.json.lock"), 2, SystemClock{})

	ctx := context.Background()
	j, err := m.Enqueue(ctx, "echo hi", 0, 3, nil, nil)
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	w := NewWorker("worker-1", m, 20*time.Millisecond, 5, noopLogger{})
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop(time.Second)

	done := awaitStatus(t, m, j.Id, job.Completed, 2*time.Second)
	if done.Output != "hi" {
		t.Fatalf("expected output 'hi', got %q", done.Output)
	}
	if done.ExecutionTime == nil || *done.ExecutionTime < 0 {
		t.Fatalf("expected a recorded execution time, got %v", done.ExecutionTime)
	}
}

func TestWorkerStopDoesNotDoubleStop(t *testing.T) {
	dir := t.TempDir()
	st, err := store.New(filepath.Join(dir, "jobs.json"))
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	m := NewManager(st, filepath.Join(dir, "jobs.json.lock"), 2, SystemClock{})
	w := NewWorker("worker-1", m, 20*time.Millisecond, 5, noopLogger{})
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := w.Stop(time.Second); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := w.Stop(time.Second); err != ErrDoubleStopped {
		t.Fatalf("expected ErrDoubleStopped, got %v", err)
	}
}
