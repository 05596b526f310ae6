package server

import (
	"net/http"
	"time"

	"github.com/agbru/fibseq/internal/fibonacci"
	"github.com/agbru/fibseq/internal/logging"
)

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func recorderFor(w http.ResponseWriter) *statusRecorder {
	if rec, ok := w.(*statusRecorder); ok {
		return rec
	}
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

// metricsMiddleware tracks in-flight requests, status codes and latency.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := recorderFor(w)
		start := time.Now()
		next(rec, r)
		s.metrics.ObserveRequest(rec.status, time.Since(start))
	}
}

func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := recorderFor(w)
		start := time.Now()
		next(rec, r)
		s.logger.Debug("request served",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", rec.status),
			logging.Duration("elapsed", time.Since(start)))
	}
}

// limitMiddleware bounds the number of sequence requests served at once.
// Waiters give up when their request context is canceled.
func (s *Server) limitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	if s.workers == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.workers.Acquire(r.Context(), 1); err != nil {
			s.metrics.ObserveRejected()
			s.logger.Debug("request abandoned while queued", logging.Err(err))
			writeSequence(w, http.StatusServiceUnavailable, fibonacci.EmptySequence)
			return
		}
		defer s.workers.Release(1)
		next(w, r)
	}
}
