// Package server exposes the sequence resolver over HTTP.
//
// Routes:
//
//	GET /<service>/<n>   first n terms, e.g. /fib/5 -> [1, 1, 2, 3, 5]
//	GET /metrics         Prometheus exposition
//	GET /healthz         liveness
//	GET /readyz          readiness (cache initialized and warmed if requested)
//	GET /health          detailed JSON health report
//
// An unparsable or negative n yields 400 with body "[]"; n = 0 yields 200 "[]".
package server
