package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"oss.nandlabs.io/golly/l3"

	"github.com/HariniKartheeswaran/queuectl/job"
	"github.com/HariniKartheeswaran/queuectl/queue"
)

var log = l3.Get()

// recentJobsLimit is the "up to 50 recent Jobs" cap SPEC_FULL.md §6.4
// places on GET /api/jobs.
const recentJobsLimit = 50

// Server is the read-only dashboard HTTP server. It holds no mutable
// state of its own; every request re-reads queue.Observer.
type Server struct {
	observer queue.Observer
	srv      *http.Server
}

// New builds a dashboard Server over observer, listening on addr
// (e.g. ":8080") once ListenAndServe is called.
func New(observer queue.Observer, addr string) *Server {
	s := &Server{observer: observer}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/jobs", s.handleJobs)
	mux.HandleFunc("/", s.handleIndex)
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// ListenAndServe blocks serving requests until the server is shut down
// or a fatal listen error occurs.
func (s *Server) ListenAndServe() error {
	log.Info("dashboard listening", "addr", s.srv.Addr)
	err := s.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server, waiting up to ctx's deadline
// for in-flight requests to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.observer.GetStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, stats)
}

func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.observer.ListJobs(r.Context(), job.Unknown, recentJobsLimit)
	if err != nil {
		writeError(w, err)
		return
	}
	if jobs == nil {
		jobs = []*job.Job{}
	}
	writeJSON(w, jobs)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexPage))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("dashboard: encode response failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	log.Error("dashboard: handler failed", "err", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
