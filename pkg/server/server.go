// Package server exposes the route planner over HTTP.
//
// # Endpoints
//
//	GET /healthz                    liveness plus map size and build version
//	GET /api/v1/nodes               nodes with their degree
//	GET /api/v1/graph               the map as JSON
//	GET /api/v1/route               one route: ?from=&to=&algorithm=&refresh=
//	GET /api/v1/paths               enumerated paths: ?from=&to=&algorithm=&limit=
//	GET /api/v1/route/render        rendered map: ?from=&to=&algorithm=&format=
//
// Errors are JSON objects {"code": ..., "message": ...} with the status
// given by [errors.HTTPStatus]. Every response carries an X-Request-ID
// header; an incoming one is reused.
//
// [errors.HTTPStatus]: https://pkg.go.dev/github.com/matzehuels/waypath/pkg/errors#HTTPStatus
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/waypath/pkg/planner"
	"github.com/matzehuels/waypath/pkg/search"
)

// Options configures a [Server].
type Options struct {
	// Algorithm is used when a request names none.
	Algorithm search.Algorithm

	// Limit is the default and maximum number of paths per request.
	Limit int

	Logger *log.Logger
}

// Server serves one dataset through a planner.
type Server struct {
	runner    *planner.Runner
	ds        *planner.Dataset
	algorithm search.Algorithm
	limit     int
	logger    *log.Logger
	router    chi.Router
}

// New creates a server and builds its routes.
func New(runner *planner.Runner, ds *planner.Dataset, opts Options) *Server {
	if opts.Algorithm == "" {
		opts.Algorithm = search.BFS
	}
	if opts.Limit < 1 {
		opts.Limit = 10
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	s := &Server{
		runner:    runner,
		ds:        ds,
		algorithm: opts.Algorithm,
		limit:     opts.Limit,
		logger:    opts.Logger.WithPrefix("http"),
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/nodes", s.handleNodes)
		r.Get("/graph", s.handleGraph)
		r.Get("/route", s.handleRoute)
		r.Get("/route/render", s.handleRender)
		r.Get("/paths", s.handlePaths)
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

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "nodes", s.ds.Graph.NodeCount())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
