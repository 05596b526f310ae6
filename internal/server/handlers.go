package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/fibseq/internal/fibonacci"
	"github.com/agbru/fibseq/internal/logging"
	"github.com/agbru/fibseq/internal/metrics"
	"github.com/agbru/fibseq/internal/sequence"
	"github.com/agbru/fibseq/internal/sysmon"
)

// kindInvalid labels rejected requests in the responses metric.
const kindInvalid = "invalid"

// handleSequence serves GET /<service>/<n>.
func (s *Server) handleSequence(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeSequence(w, http.StatusMethodNotAllowed, fibonacci.EmptySequence)
		return
	}

	raw := strings.TrimPrefix(r.URL.Path, s.cfg.ServiceName)
	_, span := s.tracer.Start(r.Context(), "sequence.resolve",
		trace.WithAttributes(attribute.String("sequence.raw_count", raw)))
	defer span.End()

	if limit := s.cfg.Security.MaxCount; limit > 0 {
		if n, err := sequence.ParseCount(raw); err == nil && n > limit {
			s.metrics.ObserveResponse(kindInvalid, 0)
			span.SetStatus(codes.Error, "count above limit")
			s.logger.Debug("count above limit", logging.Int("count", n), logging.Int("max", limit))
			writeSequence(w, http.StatusBadRequest, fibonacci.EmptySequence)
			return
		}
	}

	res, err := s.resolver.QueryString(raw)
	if err != nil {
		s.metrics.ObserveResponse(kindInvalid, 0)
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		if errors.Is(err, sequence.ErrInvalidRequest) {
			s.logger.Debug("invalid request", logging.String("path", r.URL.Path), logging.Err(err))
		} else {
			s.logger.Error("resolve failed", err, logging.String("path", r.URL.Path))
		}
		writeSequence(w, http.StatusBadRequest, fibonacci.EmptySequence)
		return
	}

	span.SetAttributes(
		attribute.String("sequence.kind", res.Kind.String()),
		attribute.Int("sequence.live_terms", res.LiveTerms),
	)
	s.metrics.ObserveResponse(res.Kind.String(), res.LiveTerms)
	writeSequence(w, http.StatusOK, res.Body)
}

func writeSequence(w http.ResponseWriter, status int, body string) {
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Content-Length", strconv.Itoa(len(body)))
	h.Set("Connection", "close")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// handleMetrics serves the Prometheus registry.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("method not allowed", logging.String("method", r.Method), logging.String("path", r.URL.Path))
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadiness(w http.ResponseWriter, _ *http.Request) {
	if !s.ready.Load() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "warming"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// HealthReport is the body of GET /health.
type HealthReport struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Uptime    string                 `json:"uptime"`
	Cache     *CacheReport           `json:"cache,omitempty"`
	Requests  sequence.ResolverStats `json:"requests"`
	Memory    metrics.MemorySnapshot `json:"memory"`
	System    sysmon.Stats           `json:"system"`
}

// CacheReport describes cache occupancy.
type CacheReport struct {
	Ceiling      int `json:"ceiling"`
	Materialized int `json:"materialized"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if !s.ready.Load() {
		status = "warming"
	}
	report := HealthReport{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Requests:  s.resolver.Stats(),
		Memory:    metrics.NewMemoryCollector().Snapshot(),
		System:    sysmon.Sample(r.Context()),
	}
	if s.cache != nil {
		report.Cache = &CacheReport{Ceiling: s.cache.Ceiling(), Materialized: s.cache.Materialized()}
	}
	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
