// Package store provides the durable, atomically-updated document that
// backs every Job in queuectl.
//
// The document is a single JSON file: { "jobs": { "<id>": <job>, ... } }.
// Store itself holds no in-process state between calls; every Load
// returns a fresh snapshot and every Save fully replaces the on-disk
// file via write-temp-then-rename. Concurrency correctness across the
// CLI process and every worker process comes from internal.FileLock,
// which queue.JobManager acquires around each read-modify-write.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"oss.nandlabs.io/golly/l3"

	"github.com/HariniKartheeswaran/queuectl/job"
)

var log = l3.Get()

// Document is the on-disk shape of the job store.
type Document struct {
	Jobs map[string]*job.Job `json:"jobs"`
}

// NewDocument returns an empty, ready-to-use Document.
func NewDocument() *Document {
	return &Document{Jobs: make(map[string]*job.Job)}
}

// Store reads and writes a Document at a fixed path on disk.
type Store struct {
	path string
}

// New returns a Store backed by the JSON document at path. The parent
// directory is created if it does not exist.
func New(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create dir %s: %w", dir, err)
	}
	return &Store{path: path}, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the current document snapshot. A missing file yields an
// empty document. A file that fails to parse is treated as empty and
// logged as a warning, so that a freshly created or briefly truncated
// file never turns into a hard failure (StoreFailure is tolerated, per
// design: load never errors the caller).
func (s *Store) Load() *Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("store: read failed, treating as empty", "path", s.path, "err", err)
		}
		return NewDocument()
	}
	if len(data) == 0 {
		return NewDocument()
	}
	doc := NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		log.Warn("store: corrupt document, treating as empty", "path", s.path, "err", err)
		return NewDocument()
	}
	if doc.Jobs == nil {
		doc.Jobs = make(map[string]*job.Job)
	}
	return doc
}

// Save atomically replaces the on-disk document: it writes to a
// temporary file in the same directory, fsyncs it, then renames it
// over the destination. A crash at any point leaves the prior document
// (or the new one) intact, never a partial write.
func (s *Store) Save(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal: %w", err)
	}
	tmp := s.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("store: open temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("store: write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("store: fsync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("store: close temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("store: rename: %w", err)
	}
	return nil
}
