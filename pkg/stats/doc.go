// Package stats derives wrapped-summary metrics from contribution and
// repository data.
//
// Every function here is pure: no I/O, no clock reads, no hidden state.
// Identical input always yields identical output, so the functions are safe
// to call concurrently and trivially cacheable by callers.
package stats
