// Package server exposes the frame pipeline over HTTP.
//
// Routes:
//
//	GET /healthz          liveness probe
//	GET /version          build information
//	GET /regions          named viewports
//	GET /regions/{name}   one named viewport
//	GET /frame            render a frame
//
// /frame takes the same inputs as the CLI as query parameters (xmin, xmax,
// ymin, ymax, width, height, iters, region, charset, format, field) and
// answers with text/plain rows or a JSON document. The X-Frame-Cache header
// reports whether the escape field came from the cache.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/glyphbrot/pkg/fractal"
	"github.com/matzehuels/glyphbrot/pkg/httputil"
	"github.com/matzehuels/glyphbrot/pkg/pipeline"
)

// shutdownTimeout bounds how long Run waits for in-flight requests.
const shutdownTimeout = 10 * time.Second

// Config holds server settings.
type Config struct {
	Addr         string
	MaxCells     int // per-frame cell limit; 0 disables
	MaxIters     int // per-frame iteration limit; 0 disables
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server serves frames rendered by a pipeline.Runner.
type Server struct {
	cfg     Config
	runner  *pipeline.Runner
	regions *fractal.Regions
	logger  *log.Logger
	router  chi.Router
}

// New builds a server. A nil regions table means the built-ins only.
func New(cfg Config, runner *pipeline.Runner, regions *fractal.Regions, logger *log.Logger) *Server {
	if regions == nil {
		regions = fractal.NewRegions()
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		cfg:     cfg,
		runner:  runner,
		regions: regions,
		logger:  logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(httputil.RequestID)
	r.Use(httputil.AccessLog(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Get("/regions", s.handleRegions)
	r.Get("/regions/{name}", s.handleRegion)
	r.Get("/frame", s.handleFrame)
	return r
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Run listens on cfg.Addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
