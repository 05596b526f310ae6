package server

//go:generate mockgen -source=server.go -destination=mocks/mock_server.go -package=mocks

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/logging"
	"github.com/agbru/fibseq/internal/sequence"
)

const tracerName = "github.com/agbru/fibseq/internal/server"

// Resolver is the part of sequence.Resolver the transport depends on.
type Resolver interface {
	// QueryString parses raw as a term count and resolves it.
	QueryString(raw string) (sequence.Result, error)
	// Stats returns the resolver counters.
	Stats() sequence.ResolverStats
}

// CacheInfo reports cache occupancy for the health endpoint.
type CacheInfo interface {
	Ceiling() int
	Materialized() int
}

// Config holds the transport settings.
type Config struct {
	Host            string
	Port            int
	ServiceName     string // normalized route prefix, e.g. "/fib/"
	MaxConcurrent   int    // sequence requests served at once; <= 0 means unlimited
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	Security        SecurityConfig
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics replaces the server's Prometheus collectors, letting the caller
// share them with the cache observer.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithCacheInfo attaches the cache to the health report.
func WithCacheInfo(c CacheInfo) Option {
	return func(s *Server) { s.cache = c }
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(s *Server) { s.tracer = t }
}

// Server serves the sequence over HTTP.
type Server struct {
	cfg      Config
	resolver Resolver
	cache    CacheInfo
	logger   logging.Logger
	metrics  *Metrics
	tracer   trace.Tracer
	workers  *semaphore.Weighted
	ready    atomic.Bool
	started  time.Time
}

// New builds a server. The server reports ready immediately; call SetReady(false)
// before Start to hold readiness until a warm-up finishes.
func New(resolver Resolver, cfg Config, logger logging.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "/fib/"
	}
	s := &Server{
		cfg:      cfg,
		resolver: resolver,
		logger:   logger,
		started:  time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	if cfg.MaxConcurrent > 0 {
		s.workers = semaphore.NewWeighted(int64(cfg.MaxConcurrent))
	}
	if s.cache != nil {
		s.metrics.SetCacheCeiling(s.cache.Ceiling())
	}
	s.ready.Store(true)
	return s
}

// SetReady flips the readiness probe.
func (s *Server) SetReady(ready bool) { s.ready.Store(ready) }

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics { return s.metrics }

// Handler returns the routed and wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.cfg.ServiceName, s.limitMiddleware(s.handleSequence))
	mux.HandleFunc("/metrics", s.handleMetrics)
	mux.HandleFunc("/healthz", s.handleLiveness)
	mux.HandleFunc("/readyz", s.handleReadiness)
	mux.HandleFunc("/health", s.handleHealth)
	return SecurityMiddleware(s.cfg.Security, s.metricsMiddleware(s.loggingMiddleware(mux.ServeHTTP)))
}

// Start listens on the configured address and serves until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Addr())
	if err != nil {
		return apperrors.ServeError{Addr: s.cfg.Addr(), Cause: err}
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully within ShutdownTimeout. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server listening",
			logging.String("addr", ln.Addr().String()),
			logging.String("route", s.cfg.ServiceName))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return apperrors.ServeError{Addr: ln.Addr().String(), Cause: err}
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		timeout := s.cfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		s.logger.Info("shutting down", logging.Duration("timeout", timeout))
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return apperrors.WrapError(err, "graceful shutdown")
		}
		return nil
	})
	return g.Wait()
}
