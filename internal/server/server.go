// Package server exposes the render pipeline over HTTP.
//
// Routes:
//
//	POST /generate-pdf       {"picks": [...]} -> application/pdf attachment
//	POST /api/v1/render      same body, ?format=pdf|svg|png|json|dot|picks
//	GET  /healthz            liveness
//	GET  /version            build information
//	GET  /metrics            Prometheus exposition
//
// Every request gets an X-Request-ID, panic recovery, a request log line,
// a tracing span and (for render routes) a per-IP rate limit and a body size
// limit. Requests are independent: each builds its own bracket.
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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/bracketgen/pkg/config"
	"github.com/matzehuels/bracketgen/pkg/observability"
	"github.com/matzehuels/bracketgen/pkg/pipeline"
)

// Server serves render requests.
type Server struct {
	runner   *pipeline.Runner
	cfg      config.ServerConfig
	defaults pipeline.Options
	logger   *log.Logger
	registry *prometheus.Registry
	limiter  *ipRateLimiter
	handler  http.Handler
}

// Option customizes a Server.
type Option func(*Server)

// WithDefaults sets the render options every request starts from (title,
// style, scale, compression). Picks and formats come from the request.
func WithDefaults(opts pipeline.Options) Option {
	return func(s *Server) { s.defaults = opts }
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a server around runner. Metrics for the pipeline, cache and
// server hooks are registered on a private registry exposed at /metrics.
func New(runner *pipeline.Runner, cfg config.ServerConfig, opts ...Option) *Server {
	s := &Server{
		runner:   runner,
		cfg:      cfg,
		logger:   log.Default(),
		registry: prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := observability.NewPrometheus(s.registry)
	observability.Register(m)

	if cfg.RateLimit > 0 {
		s.limiter = newIPRateLimiter(cfg.RateLimit, cfg.RateBurst)
	}
	s.handler = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(
		requestID,
		middleware.RealIP,
		s.recoverer,
		s.logRequests,
		s.cors(),
		traceRequests,
	)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(s.rateLimit, s.limitBody)
		r.Post("/generate-pdf", s.handleGeneratePDF)
		r.Post("/api/v1/render", s.handleRender)
	})
	return r
}

// Serve listens on the configured address until ctx is cancelled, then
// shuts down gracefully within the configured timeout.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln until ctx is cancelled. ln is closed on return.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		timeout := s.cfg.ShutdownTimeout.Duration
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
