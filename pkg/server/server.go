// Package server exposes the sheet pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz            liveness probe
//	GET  /api/v1/adapters    supported chord sites
//	POST /api/v1/render      fetch or parse a song and render a sheet
//	POST /api/v1/transpose   transpose a song JSON document
//	POST /api/v1/key         resolve a song's key
//
// Sources are fetched from public addresses only unless the server was
// created with [WithPrivateSources].
//
// Errors are returned as {"error": {"code", "message"}, "request_id"} with
// the status from [errs.HTTPStatus].
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/chordsheet/pkg/fetch"
	"github.com/matzehuels/chordsheet/pkg/pipeline"
)

const (
	// DefaultMaxBodySize bounds request bodies, which may carry a whole page.
	DefaultMaxBodySize = 4 << 20

	// DefaultTimeout bounds a single request, including page fetches.
	DefaultTimeout = 60 * time.Second

	shutdownTimeout = 10 * time.Second
)

// Server serves the chordsheet API.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	origins []string
	maxBody int64
	timeout time.Duration
	private bool
}

// Option configures a Server.
type Option func(*Server)

// WithAllowedOrigins restricts CORS to the given origins. By default any
// origin may call the API.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) { s.origins = origins }
}

// WithMaxBodySize sets the request body limit in bytes.
func WithMaxBodySize(n int64) Option {
	return func(s *Server) { s.maxBody = n }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// WithPrivateSources lets render requests fetch loopback and private
// network hosts. Only use it when every caller is trusted.
func WithPrivateSources() Option {
	return func(s *Server) { s.private = true }
}

// New creates a Server that renders through runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:  runner,
		logger:  logger,
		maxBody: DefaultMaxBodySize,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if !s.private && runner.Fetcher != nil && !runner.Fetcher.PublicOnly() {
		r := *runner
		r.Fetcher = runner.Fetcher.With(fetch.WithPublicOnly())
		s.runner = &r
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(s.cors)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/adapters", s.handleAdapters)
		r.Post("/render", s.handleRender)
		r.Post("/transpose", s.handleTranspose)
		r.Post("/key", s.handleKey)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" not allowed on "+r.URL.Path)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
