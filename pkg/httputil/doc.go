// Package httputil provides HTTP handler utilities for consistent JSON
// responses, error bodies, and request parsing.
//
// All error responses share one shape: {"error": kind, "message": text,
// "statusCode": code}.
package httputil
