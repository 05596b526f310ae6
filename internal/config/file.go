package config

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tailscale/hujson"
)

// FileConfig mirrors AppConfig for the config file. Absent keys stay nil and
// leave the lower-priority value untouched.
type FileConfig struct {
	Host             *string  `json:"host,omitempty"`
	Port             *int     `json:"port,omitempty"`
	CacheSize        *int     `json:"cache_size,omitempty"`
	NumThreads       *int     `json:"num_threads,omitempty"`
	Verbose          *int     `json:"verbose,omitempty"`
	ServiceName      *string  `json:"service_name,omitempty"`
	Warm             *bool    `json:"warm,omitempty"`
	ShutdownTimeout  *string  `json:"shutdown_timeout,omitempty"`
	MaxCount         *int     `json:"max_count,omitempty"`
	TraceExporter    *string  `json:"trace_exporter,omitempty"`
	TraceSampleRatio *float64 `json:"trace_sample_ratio,omitempty"`
}

// LoadFile reads a JSON-with-comments config file. Unknown keys are rejected.
func LoadFile(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, fmt.Errorf("reading config file: %w", err)
	}
	return ParseFile(data)
}

// ParseFile decodes JSONC config data.
func ParseFile(data []byte) (FileConfig, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return FileConfig{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var fc FileConfig
	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		return FileConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	if fc.ShutdownTimeout != nil {
		if _, err := time.ParseDuration(*fc.ShutdownTimeout); err != nil {
			return FileConfig{}, fmt.Errorf("invalid shutdown_timeout %q: %w", *fc.ShutdownTimeout, err)
		}
	}
	return fc, nil
}

// fileOverride applies one config file key unless its flag was set.
type fileOverride struct {
	flags []string
	apply func(*AppConfig, FileConfig)
}

var fileOverrides = []fileOverride{
	{[]string{"host"}, func(c *AppConfig, f FileConfig) { setIf(&c.Host, f.Host) }},
	{[]string{"port"}, func(c *AppConfig, f FileConfig) { setIf(&c.Port, f.Port) }},
	{[]string{"cache-size"}, func(c *AppConfig, f FileConfig) { setIf(&c.CacheSize, f.CacheSize) }},
	{[]string{"num-threads"}, func(c *AppConfig, f FileConfig) { setIf(&c.NumThreads, f.NumThreads) }},
	{[]string{"verbose"}, func(c *AppConfig, f FileConfig) { setIf(&c.Verbose, f.Verbose) }},
	{[]string{"service-name"}, func(c *AppConfig, f FileConfig) { setIf(&c.ServiceName, f.ServiceName) }},
	{[]string{"warm"}, func(c *AppConfig, f FileConfig) { setIf(&c.Warm, f.Warm) }},
	{[]string{"shutdown-timeout"}, func(c *AppConfig, f FileConfig) {
		if f.ShutdownTimeout != nil {
			// Already checked by ParseFile.
			c.ShutdownTimeout, _ = time.ParseDuration(*f.ShutdownTimeout)
		}
	}},
	{[]string{"max-count"}, func(c *AppConfig, f FileConfig) { setIf(&c.MaxCount, f.MaxCount) }},
	{[]string{"trace-exporter"}, func(c *AppConfig, f FileConfig) { setIf(&c.TraceExporter, f.TraceExporter) }},
	{[]string{"trace-sample-ratio"}, func(c *AppConfig, f FileConfig) { setIf(&c.TraceSampleRatio, f.TraceSampleRatio) }},
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func applyFileOverrides(config *AppConfig, fc FileConfig, fs *flag.FlagSet) {
	for _, o := range fileOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		o.apply(config, fc)
	}
}
