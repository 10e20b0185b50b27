// Package middleware provides HTTP middleware for the public API surface:
// per-client rate limiting, security headers, and request ID propagation.
package middleware
