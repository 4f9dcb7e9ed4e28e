// Package server exposes the commit dataset, selections and the project
// listing over HTTP, reloading loc.csv when it changes on disk.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/codefolio/internal/dataset"
	"github.com/Sumatoshi-tech/codefolio/internal/github"
	"github.com/Sumatoshi-tech/codefolio/internal/observability"
	"github.com/Sumatoshi-tech/codefolio/pkg/commits"
	"github.com/Sumatoshi-tech/codefolio/pkg/projects"
)

const (
	serverReadTimeout  = 30 * time.Second
	serverWriteTimeout = 60 * time.Second
	serverIdleTimeout  = 120 * time.Second
	shutdownTimeout    = 10 * time.Second
)

// ErrNotLoaded is reported by /readyz until a dataset has been loaded.
var ErrNotLoaded = errors.New("dataset not loaded")

// ProfileFetcher returns GitHub profile counters.
type ProfileFetcher interface {
	Profile(ctx context.Context, user string) (github.ProfileStats, error)
}

// Config describes what the server serves.
type Config struct {
	Addr          string
	LocPath       string
	ProjectsPath  string
	CommitOptions commits.Options
	Watch         bool
	GitHubUser    string
}

type projectsState struct {
	list []projects.Project
	err  error
}

// Server serves the HTTP API.
type Server struct {
	cfg            Config
	logger         *slog.Logger
	tracer         trace.Tracer
	metrics        *observability.REDMetrics
	metricsHandler http.Handler
	github         ProfileFetcher

	dataset  atomic.Pointer[dataset.Dataset]
	projects atomic.Pointer[projectsState]
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithTracer sets the tracer used for request spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Server) { s.tracer = tracer }
}

// WithMetrics records RED metrics and dataset reloads.
func WithMetrics(metrics *observability.REDMetrics) Option {
	return func(s *Server) { s.metrics = metrics }
}

// WithMetricsHandler mounts a Prometheus scrape handler on /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.metricsHandler = h }
}

// WithGitHub enables /api/github.
func WithGitHub(f ProfileFetcher) Option {
	return func(s *Server) { s.github = f }
}

// New creates a server. Call Load before serving.
func New(cfg Config, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg,
		logger: slog.New(slog.DiscardHandler),
		tracer: noop.NewTracerProvider().Tracer("codefolio"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Dataset returns the current dataset, or nil before the first load.
func (s *Server) Dataset() *dataset.Dataset {
	return s.dataset.Load()
}

// Load reads the dataset and the project listing. A broken project listing
// is kept as an error for /api/projects rather than failing the load.
func (s *Server) Load(ctx context.Context) error {
	err := s.reloadDataset(ctx)
	if err != nil {
		return err
	}

	s.reloadProjects(ctx)

	return nil
}

func (s *Server) reloadDataset(ctx context.Context) error {
	ds, err := dataset.Load(ctx, s.cfg.LocPath, s.cfg.CommitOptions, s.logger)
	if err != nil {
		return err
	}

	s.dataset.Store(ds)

	if s.metrics != nil {
		s.metrics.RecordDataset(ctx, ds.Store.Len())
	}

	return nil
}

func (s *Server) reloadProjects(ctx context.Context) {
	if s.cfg.ProjectsPath == "" {
		s.projects.Store(&projectsState{})

		return
	}

	list, err := projects.Load(s.cfg.ProjectsPath)
	if err != nil {
		s.logger.WarnContext(ctx, "project listing unavailable", "path", s.cfg.ProjectsPath, "error", err)
	}

	s.projects.Store(&projectsState{list: list, err: err})
}

// Handler returns the routed API wrapped in tracing and metrics middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/commits", s.handleCommits)
	mux.HandleFunc("GET /api/commits/{id}", s.handleCommit)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("POST /api/selection", s.handleSelection)
	mux.HandleFunc("GET /api/projects", s.handleProjects)
	mux.HandleFunc("GET /api/github", s.handleGitHub)
	mux.Handle("GET /healthz", observability.HealthHandler())
	mux.Handle("GET /readyz", observability.ReadyHandler(s.ready))

	if s.metricsHandler != nil {
		mux.Handle("GET /metrics", s.metricsHandler)
	}

	return observability.HTTPMiddleware(s.tracer, s.metrics, mux)
}

func (s *Server) ready(_ context.Context) error {
	if s.dataset.Load() == nil {
		return ErrNotLoaded
	}

	return nil
}

// Run serves until ctx is canceled, then shuts down gracefully. The dataset
// must already be loaded.
func (s *Server) Run(ctx context.Context) error {
	if s.cfg.Watch {
		w, err := newWatcher(s.cfg.LocPath, s.logger, func() {
			reloadErr := s.reloadDataset(ctx)
			if reloadErr != nil {
				s.logger.ErrorContext(ctx, "dataset reload failed", "error", reloadErr)
			}
		})
		if err != nil {
			return err
		}
		defer w.Close()
	}

	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.InfoContext(ctx, "server starting", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	s.logger.InfoContext(ctx, "server stopped")

	return nil
}
