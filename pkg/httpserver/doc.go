// Package httpserver wraps net/http.Server with sensible defaults, graceful
// shutdown on SIGINT/SIGTERM or context cancellation, and a health-check
// handler for liveness/readiness probes.
package httpserver
