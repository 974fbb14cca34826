package queue

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/HariniKartheeswaran/queuectl/job"
	"github.com/HariniKartheeswaran/queuectl/store"
)

func newTestManager(t *testing.T, clock Clock) *Manager {
	t.Helper()
	dir := t.TempDir()
	st, err := store.New(filepath.Join(dir, "jobs.json"))
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	return NewManager(st, filepath.Join(dir, "jobs.json.lock"), 2, clock)
}

func TestEnqueueGetJobRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, newFakeClock(time.Unix(0, 0)))
	timeout := 30
	j, err := m.Enqueue(ctx, "echo hi", 5, 3, &timeout, nil)
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	got, err := m.GetJob(ctx, j.Id)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if got == nil {
		t.Fatalf("expected job, got nil")
	}
	if got.Command != "echo hi" || got.Priority != 5 || got.MaxRetries != 3 {
		t.Fatalf("round-trip mismatch: %#v", got)
	}
	if got.Status != job.Pending {
		t.Fatalf("expected pending, got %s", got.Status)
	}
	if got.Timeout == nil || *got.Timeout != 30 {
		t.Fatalf("expected timeout 30, got %v", got.Timeout)
	}
}

func TestClaimOrdersByPriorityThenAge(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock(time.Now())
	m := newTestManager(t, clock)

	for _, p := range []int{1, 10, 5} {
		if _, err := m.Enqueue(ctx, "noop", p, 3, nil, nil); err != nil {
			t.Fatalf("Enqueue: %v", err)
		}
		clock.Advance(time.Second)
	}

	var got []int
	for i := 0; i < 3; i++ {
		j, err := m.Claim(ctx, "w1")
		if err != nil {
			t.Fatalf("Claim: %v", err)
		}
		if j == nil {
			t.Fatalf("expected a job on claim %d", i)
		}
		got = append(got, j.Priority)
	}
	want := []int{10, 5, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("claim order = %v, want %v", got, want)
		}
	}
}

func TestClaimRespectsSchedule(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock(time.Now())
	m := newTestManager(t, clock)

	runAt := clock.Now().Add(5 * time.Second)
	j, err := m.Enqueue(ctx, "noop", 0, 3, nil, &runAt)
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if j.Status != job.Scheduled {
		t.Fatalf("expected scheduled, got %s", j.Status)
	}

	none, err := m.Claim(ctx, "w1")
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if none != nil {
		t.Fatalf("expected no claim before run_at, got %#v", none)
	}

	clock.Advance(6 * time.Second)
	claimed, err := m.Claim(ctx, "w1")
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if claimed == nil || claimed.Id != j.Id {
		t.Fatalf("expected claim of scheduled job once due, got %#v", claimed)
	}
	if claimed.Status != job.Running {
		t.Fatalf("expected running, got %s", claimed.Status)
	}
}

func TestMarkFailedRetriesThenDlq(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock(time.Now())
	m := newTestManager(t, clock)

	enq, err := m.Enqueue(ctx, "exit 1", 0, 2, nil, nil)
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	for attempt := 1; attempt <= 2; attempt++ {
		claimed, err := m.Claim(ctx, "w1")
		if err != nil {
			t.Fatalf("Claim: %v", err)
		}
		if claimed == nil {
			t.Fatalf("attempt %d: expected a claimable job", attempt)
		}
		if err := m.MarkFailed(ctx, claimed.Id, "boom"); err != nil {
			t.Fatalf("MarkFailed: %v", err)
		}
		current, err := m.GetJob(ctx, enq.Id)
		if err != nil {
			t.Fatalf("GetJob: %v", err)
		}
		if current.Attempts != uint32(attempt) {
			t.Fatalf("attempt %d: attempts = %d", attempt, current.Attempts)
		}
		if attempt < 2 {
			if current.Status != job.Failed {
				t.Fatalf("attempt %d: expected failed, got %s", attempt, current.Status)
			}
			clock.Advance(10 * time.Second)
			retryable, err := m.GetRetryableJobs(ctx)
			if err != nil {
				t.Fatalf("GetRetryableJobs: %v", err)
			}
			if len(retryable) != 1 {
				t.Fatalf("expected 1 retryable job, got %d", len(retryable))
			}
			if err := m.ResetForRetry(ctx, retryable[0].Id); err != nil {
				t.Fatalf("ResetForRetry: %v", err)
			}
		} else {
			if current.Status != job.Dlq {
				t.Fatalf("expected dlq after exhausting retries, got %s", current.Status)
			}
			if current.DlqAt == nil {
				t.Fatalf("expected dlq_at to be set")
			}
		}
	}
}

func TestCancelJobOnlyFromPendingOrScheduled(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, newFakeClock(time.Now()))

	j, err := m.Enqueue(ctx, "noop", 0, 3, nil, nil)
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	ok, err := m.CancelJob(ctx, j.Id)
	if err != nil {
		t.Fatalf("CancelJob: %v", err)
	}
	if !ok {
		t.Fatalf("expected cancel from pending to succeed")
	}

	claimed, err := m.Claim(ctx, "w1")
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if claimed != nil {
		t.Fatalf("cancelled job must not be claimable")
	}
}

func TestRetryJobFromDlq(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, newFakeClock(time.Now()))

	j, err := m.Enqueue(ctx, "exit 1", 0, 1, nil, nil)
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	claimed, err := m.Claim(ctx, "w1")
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if err := m.MarkFailed(ctx, claimed.Id, "boom"); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}
	current, err := m.GetJob(ctx, j.Id)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if current.Status != job.Dlq {
		t.Fatalf("expected dlq, got %s", current.Status)
	}

	ok, err := m.RetryJob(ctx, j.Id)
	if err != nil {
		t.Fatalf("RetryJob: %v", err)
	}
	if !ok {
		t.Fatalf("expected retry from dlq to succeed")
	}
	current, err = m.GetJob(ctx, j.Id)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if current.Status != job.Pending || current.Attempts != 0 {
		t.Fatalf("expected reset to pending/attempts=0, got %#v", current)
	}
}

func TestPurgeCompletedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock(time.Now())
	m := newTestManager(t, clock)

	j, err := m.Enqueue(ctx, "echo hi", 0, 3, nil, nil)
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	claimed, err := m.Claim(ctx, "w1")
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if err := m.MarkCompleted(ctx, claimed.Id, "hi", 0.1); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}

	n, err := m.PurgeCompleted(ctx)
	if err != nil {
		t.Fatalf("PurgeCompleted: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 purged job, got %d", n)
	}
	again, err := m.PurgeCompleted(ctx)
	if err != nil {
		t.Fatalf("PurgeCompleted (again): %v", err)
	}
	if again != 0 {
		t.Fatalf("expected idempotent purge to return 0, got %d", again)
	}
	if got, _ := m.GetJob(ctx, j.Id); got != nil {
		t.Fatalf("expected job to be gone after purge, got %#v", got)
	}
}

func TestStatsConsistency(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, newFakeClock(time.Now()))

	if _, err := m.Enqueue(ctx, "echo a", 0, 3, nil, nil); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	j2, err := m.Enqueue(ctx, "echo b", 0, 3, nil, nil)
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	claimed, err := m.Claim(ctx, "w1")
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if err := m.MarkCompleted(ctx, claimed.Id, "b", 1.5); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}

	stats, err := m.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	sum := stats.Pending + stats.Scheduled + stats.Running + stats.Completed +
		stats.Failed + stats.Dlq + stats.Cancelled
	if sum != stats.Total {
		t.Fatalf("sum of per-state counts = %d, want total %d", sum, stats.Total)
	}
	if stats.Total != 2 {
		t.Fatalf("expected 2 total jobs, got %d", stats.Total)
	}
	wantRate := 100.0 * float64(stats.Completed) / float64(stats.Total)
	if stats.SuccessRate != wantRate {
		t.Fatalf("success_rate = %v, want %v", stats.SuccessRate, wantRate)
	}
	_ = j2
}
