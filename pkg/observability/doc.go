// Package observability provides structured logging, Prometheus metrics,
// health checks, and graceful shutdown for the service.
//
// The Logger emits JSON via log/slog and supports contextual fields and
// request-scoped plumbing through context.Context. Metrics cover the HTTP
// surface, the cache layer, and upstream GitHub calls. The HealthChecker
// treats Redis as an optional dependency: the service is degraded, never
// unhealthy, when the cache is down.
package observability
