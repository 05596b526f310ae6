// Package config parses the service configuration from command-line flags,
// FIBSEQ_ environment variables and an optional JSON-with-comments file.
//
// Priority, highest first: flags, environment, config file, defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/telemetry"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FIBSEQ_"

// Defaults.
const (
	DefaultPort            = 8080
	DefaultCacheSize       = 1000
	DefaultNumThreads      = 4
	DefaultVerbose         = 1
	DefaultServiceName     = "fib"
	DefaultShutdownTimeout = 10 * time.Second
)

// AppConfig holds the validated service configuration.
type AppConfig struct {
	Host             string
	Port             int
	CacheSize        int
	NumThreads       int
	Verbose          int
	ServiceName      string // normalized, e.g. "/fib/"
	Warm             bool
	ShutdownTimeout  time.Duration
	MaxCount         int
	TraceExporter    string
	TraceSampleRatio float64
	ConfigFile       string
	NoColor          bool
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() AppConfig {
	return AppConfig{
		Port:             DefaultPort,
		CacheSize:        DefaultCacheSize,
		NumThreads:       DefaultNumThreads,
		Verbose:          DefaultVerbose,
		ServiceName:      DefaultServiceName,
		ShutdownTimeout:  DefaultShutdownTimeout,
		TraceExporter:    telemetry.ExporterNone,
		TraceSampleRatio: 1,
	}
}

// ParseConfig parses args (without the program name) into a validated
// configuration. Usage and flag errors are written to errWriter; --help
// returns an error matching flag.ErrHelp.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := DefaultConfig()

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [options]\n\nServes the Fibonacci sequence over HTTP.\n\nOptions:\n", programName)
		fs.PrintDefaults()
		fmt.Fprintf(errWriter, "\nEvery option except --config, --no-color and --version can also be set with %s<NAME>,\ne.g. %sCACHE_SIZE=5000.\n", EnvPrefix, EnvPrefix)
	}

	fs.StringVar(&cfg.Host, "host", cfg.Host, "Host to listen on (empty for all interfaces).")
	fs.IntVar(&cfg.Port, "port", cfg.Port, "Port to listen to.")
	fs.IntVar(&cfg.CacheSize, "cache-size", cfg.CacheSize, "Maximum number of terms kept in the cache.")
	fs.IntVar(&cfg.NumThreads, "num-threads", cfg.NumThreads, "Maximum number of sequence requests served at once.")
	fs.IntVar(&cfg.Verbose, "verbose", cfg.Verbose, "Verbosity: 0 warnings, 1 info, 2 debug.")
	fs.StringVar(&cfg.ServiceName, "service-name", cfg.ServiceName, "Route prefix of the sequence endpoint.")
	fs.BoolVar(&cfg.Warm, "warm", cfg.Warm, "Fill the cache up to --cache-size before reporting ready.")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "Grace period for in-flight requests on shutdown.")
	fs.IntVar(&cfg.MaxCount, "max-count", cfg.MaxCount, "Reject requests for more terms than this (0 for no limit).")
	fs.StringVar(&cfg.TraceExporter, "trace-exporter", cfg.TraceExporter, "Span exporter: none, stdout or otlp.")
	fs.Float64Var(&cfg.TraceSampleRatio, "trace-sample-ratio", cfg.TraceSampleRatio, "Fraction of requests traced (0..1).")
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "Path to a JSON-with-comments config file.")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable colored output.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	path := cfg.ConfigFile
	if !isFlagSet(fs, "config") {
		path = getEnvString("CONFIG", path)
	}
	if path != "" {
		fc, err := LoadFile(path)
		if err != nil {
			return AppConfig{}, apperrors.NewConfigError("%v", err)
		}
		applyFileOverrides(&cfg, fc, fs)
		cfg.ConfigFile = path
	}
	applyEnvOverrides(&cfg, fs)

	cfg.ServiceName = NormalizeServiceName(cfg.ServiceName)
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Addr returns the listen address.
func (c AppConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// NormalizeServiceName wraps name in slashes: "fib" becomes "/fib/".
func NormalizeServiceName(name string) string {
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	if !strings.HasSuffix(name, "/") {
		name += "/"
	}
	return name
}

// Validate checks the configuration and returns a *apperrors.ConfigError
// naming the first offending option.
func (c AppConfig) Validate() error {
	switch {
	case c.Port < 0 || c.Port > 65535:
		return apperrors.NewConfigError("--port must be between 0 and 65535, got %d", c.Port)
	case c.CacheSize < 0:
		return apperrors.NewConfigError("--cache-size must be non-negative, got %d", c.CacheSize)
	case c.NumThreads < 1:
		return apperrors.NewConfigError("--num-threads must be at least 1, got %d", c.NumThreads)
	case c.Verbose < 0:
		return apperrors.NewConfigError("--verbose must be non-negative, got %d", c.Verbose)
	case c.ServiceName == "/" || strings.Contains(strings.Trim(c.ServiceName, "/"), "/"):
		return apperrors.NewConfigError("--service-name must be a single path segment, got %q", c.ServiceName)
	case c.ShutdownTimeout <= 0:
		return apperrors.NewConfigError("--shutdown-timeout must be positive, got %s", c.ShutdownTimeout)
	case c.MaxCount < 0:
		return apperrors.NewConfigError("--max-count must be non-negative, got %d", c.MaxCount)
	case !telemetry.ValidExporter(c.TraceExporter):
		return apperrors.NewConfigError("--trace-exporter must be none, stdout or otlp, got %q", c.TraceExporter)
	case c.TraceSampleRatio < 0 || c.TraceSampleRatio > 1:
		return apperrors.NewConfigError("--trace-sample-ratio must be between 0 and 1, got %g", c.TraceSampleRatio)
	}
	return nil
}
