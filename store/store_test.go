package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/HariniKartheeswaran/queuectl/job"
)

func TestLoadMissingFileReturnsEmptyDocument(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "jobs.json"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	doc := s.Load()
	if doc == nil || doc.Jobs == nil {
		t.Fatalf("expected non-nil empty document, got %#v", doc)
	}
	if len(doc.Jobs) != 0 {
		t.Fatalf("expected 0 jobs, got %d", len(doc.Jobs))
	}
}

func TestLoadCorruptFileReturnsEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	s, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := writeRaw(path, "{not json"); err != nil {
		t.Fatalf("writeRaw: %v", err)
	}
	doc := s.Load()
	if len(doc.Jobs) != 0 {
		t.Fatalf("expected empty document for corrupt file, got %#v", doc)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	s, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	doc := NewDocument()
	id := uuid.New()
	doc.Jobs[id.String()] = &job.Job{
		Id:        id,
		Command:   "echo hi",
		Status:    job.Pending,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.Save(doc); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded := s.Load()
	got, ok := loaded.Jobs[id.String()]
	if !ok {
		t.Fatalf("expected job %s to round-trip", id)
	}
	if got.Command != "echo hi" || got.Status != job.Pending {
		t.Fatalf("unexpected round-tripped job: %#v", got)
	}
}

func TestSaveIsFullReplace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	s, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	first := NewDocument()
	first.Jobs["a"] = &job.Job{Id: uuid.New(), Command: "a"}
	if err := s.Save(first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	second := NewDocument()
	second.Jobs["b"] = &job.Job{Id: uuid.New(), Command: "b"}
	if err := s.Save(second); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded := s.Load()
	if _, ok := loaded.Jobs["a"]; ok {
		t.Fatalf("expected full replace, but job 'a' survived")
	}
	if _, ok := loaded.Jobs["b"]; !ok {
		t.Fatalf("expected job 'b' to be present")
	}
}
