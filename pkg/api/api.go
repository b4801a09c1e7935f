// Package api exposes the solve pipeline over HTTP.
//
// The API is a thin JSON wrapper around [pipeline.Runner]:
//
//	POST /v1/solve    solve a height profile, optionally with trace and artifacts
//	GET  /healthz     liveness probe
//
// Every request gets a UUID request ID (echoed in the X-Request-ID header)
// and structured request logging. Errors are returned as JSON with the
// machine-readable codes from the errors package.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/skylinelab/watertower/pkg/pipeline"
)

// Server is the Watertower HTTP API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	http   *http.Server
}

// NewServer creates a server around the given runner, listening on addr.
func NewServer(addr string, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
	})

	s.http = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.http.Addr)
		errc <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}
