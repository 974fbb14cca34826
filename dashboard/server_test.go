package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/HariniKartheeswaran/queuectl/job"
	"github.com/HariniKartheeswaran/queuectl/queue"
)

// fakeObserver is a minimal queue.Observer stub, avoiding the need to
// spin up a real store/Manager pair just to exercise the HTTP layer.
type fakeObserver struct {
	jobs  []*job.Job
	stats *queue.Stats
}

func (f *fakeObserver) GetJob(_ context.Context, id uuid.UUID) (*job.Job, error) {
	for _, j := range f.jobs {
		if j.Id == id {
			return j, nil
		}
	}
	return nil, nil
}

func (f *fakeObserver) ListJobs(_ context.Context, status job.Status, limit int) ([]*job.Job, error) {
	out := f.jobs
	if status != job.Unknown {
		out = nil
		for _, j := range f.jobs {
			if j.Status == status {
				out = append(out, j)
			}
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeObserver) GetStats(_ context.Context) (*queue.Stats, error) {
	return f.stats, nil
}

func TestHandleStatsServesObserverStats(t *testing.T) {
	obs := &fakeObserver{stats: &queue.Stats{Total: 3, Pending: 1, Completed: 2, SuccessRate: 100}}
	srv := New(obs, ":0")

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	srv.handleStats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got queue.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Total != 3 || got.Pending != 1 || got.Completed != 2 {
		t.Fatalf("unexpected stats: %#v", got)
	}
}

func TestHandleJobsReturnsEmptyArrayNotNull(t *testing.T) {
	obs := &fakeObserver{}
	srv := New(obs, ":0")

	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	rec := httptest.NewRecorder()
	srv.handleJobs(rec, req)

	if rec.Body.String() != "[]\n" {
		t.Fatalf("expected empty JSON array, got %q", rec.Body.String())
	}
}

func TestHandleJobsServesObserverJobs(t *testing.T) {
	j := &job.Job{Id: uuid.New(), Command: "echo hi", Status: job.Pending}
	obs := &fakeObserver{jobs: []*job.Job{j}}
	srv := New(obs, ":0")

	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	rec := httptest.NewRecorder()
	srv.handleJobs(rec, req)

	var got []*job.Job
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 1 || got[0].Command != "echo hi" {
		t.Fatalf("unexpected jobs: %#v", got)
	}
}

func TestHandleIndexServesHTML(t *testing.T) {
	obs := &fakeObserver{}
	srv := New(obs, ":0")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.handleIndex(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type: %q", ct)
	}
}

func TestHandleIndexNotFoundForOtherPaths(t *testing.T) {
	obs := &fakeObserver{}
	srv := New(obs, ":0")

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	srv.handleIndex(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
