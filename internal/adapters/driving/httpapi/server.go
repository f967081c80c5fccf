package httpapi

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/talentia-labs/talentia/internal/auth"
	"github.com/talentia-labs/talentia/internal/core/ports/driven"
	"github.com/talentia-labs/talentia/internal/core/ports/driving"
	"github.com/talentia-labs/talentia/internal/core/services"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Options wires the server to the core.
type Options struct {
	Addr       string
	AdminKey   string
	Candidates driving.CandidateService
	Matcher    driving.Matcher
	Repairer   driving.Repairer
	Ingestor   driving.Ingestor
	Jobs       driven.JobStore
	Auth       *auth.Service
	Tasks      *services.TaskQueue

	// Queries returns the current scrape query list; background ingestion
	// triggered from HTTP uses it. May be nil when ingestion is disabled.
	Queries       func() []string
	Location      string
	PerQueryLimit int

	Logger *zap.Logger
}

// Server is the HTTP boundary of the matching engine.
type Server struct {
	opts   Options
	logger *zap.Logger
	http   *http.Server
}

// New builds a server from opts. Call Start to begin serving.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{opts: opts, logger: logger.Named("http")}
	s.http = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

// Handler returns the routing table, useful for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("listening", zap.String("addr", s.opts.Addr))
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests with a bounded grace period.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return s.http.Shutdown(ctx)
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("GET /auth/me", s.handleMe)

	mux.Handle("POST /candidates/upload", s.requireUser(s.handleUpload))
	mux.Handle("GET /candidates/{id}", s.requireUser(s.handleGetCandidate))

	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.HandleFunc("GET /jobs/search", s.handleSearchJobs)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)
	mux.Handle("GET /jobs/match/{candidateID}", s.requireUser(s.handleMatch))
	mux.HandleFunc("POST /jobs/scrape", s.handleScrape)

	mux.Handle("POST /admin/reembed", s.requireAdmin(s.handleReembed))
	mux.Handle("DELETE /admin/jobs/mock", s.requireAdmin(s.handlePurgeMock))
	mux.Handle("GET /admin/uploads", s.requireAdmin(s.handleUploadJournal))

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// enqueueIngest schedules a background ingestion run. It is fire and forget:
// a full queue is logged and dropped, never surfaced to the caller.
func (s *Server) enqueueIngest(trigger string) {
	if s.opts.Tasks == nil || s.opts.Ingestor == nil || s.opts.Queries == nil {
		return
	}
	queries := s.opts.Queries()
	if len(queries) == 0 {
		return
	}
	ok := s.opts.Tasks.Enqueue(ingestTask(s.opts.Ingestor, queries, s.opts.Location, s.opts.PerQueryLimit))
	if !ok {
		s.logger.Warn("ingest task dropped, queue full", zap.String("trigger", trigger))
	}
}

func ingestTask(ingestor driving.Ingestor, queries []string, location string, perQueryLimit int) services.Task {
	return services.Task{
		Name: "ingest",
		Run: func(ctx context.Context) error {
			_, err := ingestor.Ingest(ctx, queries, location, perQueryLimit)
			return err
		},
	}
}
