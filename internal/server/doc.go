// Package server provides the MCP server context and operational HTTP
// endpoints for the mailbridge application.
//
// # Key Components
//
// ServerContext carries the shared Mail client and instrumentation hooks
// (metrics recorder, audit logger) that tool handlers need. It owns a
// cancellable context so in-flight script executions can be stopped on
// shutdown.
//
// MetricsServer serves Prometheus metrics on a dedicated port, keeping
// operational metrics off the main MCP transport.
//
// HealthChecker provides /healthz and /readyz endpoints for liveness and
// readiness probes when running the HTTP transport.
package server
