// Package cache implements a best-effort cache-aside store over Redis.
//
// The Store never surfaces a cache fault to its callers: a backend that was
// never configured, failed to connect, or errors mid-call degrades every
// read to a miss and every write to a no-op, with a log line and a metric.
// GetOrCompute wraps a computation with get-or-compute-and-store semantics.
// Concurrent misses for the same key may compute twice and both write; the
// last writer wins, which is accepted because results are idempotent for the
// same inputs within a TTL window.
//
// An optional in-process LRU sits in front of Redis to absorb hot keys. It
// is only consulted while the Redis backend is available, so a disabled or
// unreachable backend still behaves as pure pass-through.
package cache
