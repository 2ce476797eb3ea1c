// Package server exposes the render pipeline and the chart store over HTTP.
//
// Routes:
//
//	GET    /healthz
//	POST   /v1/render?format=svg|png|json&hover=<key>&x=<px>&style=<style>
//	GET    /v1/charts
//	POST   /v1/charts
//	GET    /v1/charts/{id}
//	PUT    /v1/charts/{id}
//	DELETE /v1/charts/{id}
//	GET    /v1/charts/{id}/render?format=&hover=&x=&style=
//
// Request bodies are chart definitions in JSON, or TOML when the
// Content-Type is application/toml. Errors are JSON objects carrying the
// error code; caller mistakes map to 4xx and everything else to 500.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/stackchart/pkg/pipeline"
	"github.com/matzehuels/stackchart/pkg/store"
)

// MaxBodySize bounds request bodies.
const MaxBodySize = 4 << 20

// ShutdownTimeout is how long in-flight requests get after the context
// passed to [Server.ListenAndServe] is cancelled.
const ShutdownTimeout = 10 * time.Second

// Server serves chart renders and stored definitions.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	router chi.Router
}

// New creates a server. A nil logger uses log.Default().
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, store: st, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Route("/charts", func(r chi.Router) {
			r.Get("/", s.handleListCharts)
			r.Post("/", s.handleCreateChart)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetChart)
				r.Put("/", s.handleUpdateChart)
				r.Delete("/", s.handleDeleteChart)
				r.Get("/render", s.handleRenderChart)
			})
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
