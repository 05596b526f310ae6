// Package app wires configuration, the sequence cache, the HTTP server and
// telemetry into a runnable service.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/fibseq/internal/config"
	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/format"
	"github.com/agbru/fibseq/internal/logging"
	"github.com/agbru/fibseq/internal/metrics"
	"github.com/agbru/fibseq/internal/sequence"
	"github.com/agbru/fibseq/internal/server"
	"github.com/agbru/fibseq/internal/telemetry"
	"github.com/agbru/fibseq/internal/ui"
)

// Application represents the fibseq service instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer

	logger   logging.Logger
	listener net.Listener
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger replaces the zerolog logger built from --verbose.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.logger = l }
}

// WithListener serves on ln instead of listening on --host/--port.
func WithListener(ln net.Listener) AppOption {
	return func(a *Application) { a.listener = ln }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "fibseq"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if app.logger == nil {
		app.logger = logging.NewLeveledLogger(errWriter, "fibseq", logging.LevelFromVerbosity(cfg.Verbose))
	}
	return app, nil
}

// Run serves until ctx is canceled or SIGINT/SIGTERM arrives and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	err := a.serve(ctx, out)
	if err != nil {
		a.logger.Error("service stopped", err)
		theme := ui.GetCurrentTheme()
		fmt.Fprintf(a.ErrWriter, "%sError:%s %v\n", theme.Error, theme.Reset, err)
	} else {
		a.logger.Info("service stopped")
	}
	return apperrors.ExitCodeFor(err)
}

func (a *Application) serve(ctx context.Context, out io.Writer) error {
	started := time.Now()
	cfg := a.Config

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		Exporter:       cfg.TraceExporter,
		SampleRatio:    cfg.TraceSampleRatio,
		ServiceName:    "fibseq",
		ServiceVersion: Version,
	}, out)
	if err != nil {
		return apperrors.NewConfigError("tracing: %v", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			a.logger.Error("flushing spans", err)
		}
	}()

	promMetrics := server.NewMetrics()
	cache, err := sequence.New(cfg.CacheSize,
		sequence.WithLogger(a.logger),
		sequence.WithObserver(promMetrics.ObserveExtension))
	if err != nil {
		return err
	}
	resolver := sequence.NewResolver(cache, sequence.WithResolverLogger(a.logger))

	srv := server.New(resolver, server.Config{
		Host:            cfg.Host,
		Port:            cfg.Port,
		ServiceName:     cfg.ServiceName,
		MaxConcurrent:   cfg.NumThreads,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Security: server.SecurityConfig{
			EnableCORS:     true,
			AllowedOrigins: []string{"*"},
			AllowedMethods: server.DefaultSecurityConfig().AllowedMethods,
			MaxCount:       cfg.MaxCount,
		},
	}, a.logger, server.WithMetrics(promMetrics), server.WithCacheInfo(cache))

	addr := cfg.Addr()
	if a.listener != nil {
		addr = a.listener.Addr().String()
	}
	a.logger.Info("service starting",
		logging.String("addr", addr),
		logging.String("route", cfg.ServiceName),
		logging.Int("cache_size", cfg.CacheSize),
		logging.Int("num_threads", cfg.NumThreads))
	fmt.Fprintln(out, ui.RenderBanner(ui.BannerInfo{
		Version:   Version,
		Addr:      addr,
		Route:     cfg.ServiceName,
		CacheSize: cfg.CacheSize,
		Workers:   cfg.NumThreads,
		Warm:      cfg.Warm,
		Tracing:   cfg.TraceExporter,
		Startup:   time.Since(started),
	}))

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Warm {
		srv.SetReady(false)
		g.Go(func() error {
			warm(cache, a.logger)
			srv.SetReady(true)
			return nil
		})
	}
	g.Go(func() error {
		if a.listener != nil {
			return srv.Serve(gctx, a.listener)
		}
		return srv.Start(gctx)
	})
	return g.Wait()
}

// warm fills the cache up to its ceiling.
func warm(cache *sequence.Cache, logger logging.Logger) {
	mc := metrics.NewMemoryCollector()
	before := mc.Snapshot()
	start := time.Now()
	n, _ := cache.Ensure(cache.Ceiling())
	after := mc.Snapshot()
	logger.Info("cache warmed",
		logging.Int("terms", n),
		logging.String("elapsed", format.FormatExecutionDuration(time.Since(start))),
		logging.String("heap_growth", format.FormatBytes(metrics.HeapGrowth(before, after))))
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
