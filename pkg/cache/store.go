package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/octowrap/octowrap/pkg/observability"
)

// State is the connection state of the cache backend.
type State int

const (
	// StateUnconfigured means no backend was configured; all operations are
	// pass-through.
	StateUnconfigured State = iota
	// StateConnecting means Connect is in flight.
	StateConnecting
	// StateAvailable means the backend answered the connect ping.
	StateAvailable
	// StateUnavailable means the connect attempt failed; all operations are
	// pass-through.
	StateUnavailable
)

func (s State) String() string {
	return []string{"unconfigured", "connecting", "available", "unavailable"}[s]
}

// Config holds cache backend configuration.
type Config struct {
	// Enabled gates the whole cache layer. When false the store stays
	// unconfigured regardless of the URL.
	Enabled bool
	// RedisURL is a redis:// connection URL. Empty means unconfigured.
	RedisURL string
	// RedisPassword overrides the password in the URL if set.
	RedisPassword string
	// RedisDB overrides the database in the URL if >= 0.
	RedisDB int
	// RedisMaxRetries sets the per-command retry count if > 0.
	RedisMaxRetries int
	// RedisPoolSize sets the connection pool size if > 0.
	RedisPoolSize int
	// L1Size is the entry capacity of the in-process LRU. 0 disables it.
	L1Size int
}

// DefaultConfig returns cache settings matching a local Redis.
func DefaultConfig() Config {
	return Config{
		Enabled:  true,
		RedisURL: "redis://localhost:6379",
		RedisDB:  -1,
	}
}

// Store is a best-effort cache client. All methods are safe for concurrent
// use and none of them ever return a cache fault to the caller.
type Store struct {
	mu      sync.RWMutex
	state   State
	client  *redis.Client
	l1      *lru.Cache[string, []byte]
	logger  *observability.Logger
	metrics *observability.Metrics
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithMetrics attaches Prometheus metrics for hit/miss/fault counting.
func WithMetrics(m *observability.Metrics) StoreOption {
	return func(s *Store) { s.metrics = m }
}

// NewStore creates a Store from config. The returned store starts in
// StateUnconfigured; call Connect to probe the backend. A disabled config or
// empty URL leaves the store permanently pass-through.
func NewStore(cfg Config, logger *observability.Logger, opts ...StoreOption) *Store {
	s := &Store{
		state:  StateUnconfigured,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	if !cfg.Enabled || cfg.RedisURL == "" {
		return s
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.WithError(err).Warn("Invalid Redis URL, running without cache")
		return s
	}
	if cfg.RedisPassword != "" {
		redisOpts.Password = cfg.RedisPassword
	}
	if cfg.RedisDB >= 0 {
		redisOpts.DB = cfg.RedisDB
	}
	if cfg.RedisMaxRetries > 0 {
		redisOpts.MaxRetries = cfg.RedisMaxRetries
	}
	if cfg.RedisPoolSize > 0 {
		redisOpts.PoolSize = cfg.RedisPoolSize
	}
	redisOpts.DialTimeout = 5 * time.Second
	redisOpts.ReadTimeout = 3 * time.Second
	redisOpts.WriteTimeout = 3 * time.Second

	s.client = redis.NewClient(redisOpts)

	if cfg.L1Size > 0 {
		// lru.New only fails on a non-positive size
		if l1, err := lru.New[string, []byte](cfg.L1Size); err == nil {
			s.l1 = l1
		}
	}

	return s
}

// Connect probes the backend and settles the store into Available or
// Unavailable. The error is informational; callers are expected to keep
// running without a cache when it is non-nil.
func (s *Store) Connect(ctx context.Context) error {
	s.mu.Lock()
	if s.client == nil {
		s.mu.Unlock()
		return nil
	}
	s.state = StateConnecting
	s.mu.Unlock()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := s.client.Ping(pingCtx).Err()

	s.mu.Lock()
	if err != nil {
		s.state = StateUnavailable
	} else {
		s.state = StateAvailable
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.WithError(err).Warn("Failed to connect to Redis, running without cache")
		return err
	}
	s.logger.Info("Connected to Redis")
	return nil
}

// State returns the current connection state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Available reports whether cache operations will reach the backend.
func (s *Store) Available() bool {
	return s.State() == StateAvailable
}

// Client exposes the underlying Redis client for health checks. Nil when the
// store is unconfigured.
func (s *Store) Client() *redis.Client {
	return s.client
}

// Close releases the backend connection.
func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Get reads key into dest. It returns false on miss, on corrupt data, on any
// backend fault, and whenever the backend is not available.
func (s *Store) Get(ctx context.Context, key string, dest interface{}) bool {
	if !s.Available() {
		return false
	}

	if s.l1 != nil {
		if data, ok := s.l1.Get(key); ok {
			if err := json.Unmarshal(data, dest); err == nil {
				s.countHit("l1")
				return true
			}
			s.l1.Remove(key)
		}
	}

	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		s.countMiss()
		return false
	}
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Cache get error")
		s.countFault("get")
		return false
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		// Corrupt entry: drop it and treat as a miss
		s.logger.WithError(err).WithField("key", key).Warn("Corrupt cache entry, deleting")
		s.client.Del(ctx, key)
		s.countFault("decode")
		return false
	}

	if s.l1 != nil {
		s.l1.Add(key, []byte(data))
	}
	s.countHit("redis")
	return true
}

// Set writes value under key with a relative TTL. Serialization and backend
// faults are logged and swallowed.
func (s *Store) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if !s.Available() {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Cache set encode error")
		s.countFault("encode")
		return
	}

	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Cache set error")
		s.countFault("set")
		return
	}

	if s.l1 != nil {
		s.l1.Add(key, data)
	}
}

// Invalidate removes key from every cache layer. Faults are swallowed.
func (s *Store) Invalidate(ctx context.Context, key string) {
	if s.l1 != nil {
		s.l1.Remove(key)
	}
	if !s.Available() {
		return
	}
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Cache delete error")
		s.countFault("delete")
	}
}

func (s *Store) countHit(layer string) {
	if s.metrics != nil {
		s.metrics.CacheHitsTotal.WithLabelValues(layer).Inc()
	}
}

func (s *Store) countMiss() {
	if s.metrics != nil {
		s.metrics.CacheMissesTotal.WithLabelValues("redis").Inc()
	}
}

func (s *Store) countFault(operation string) {
	if s.metrics != nil {
		s.metrics.CacheErrorsTotal.WithLabelValues(operation).Inc()
	}
}

// GetOrCompute returns the cached value for key, or invokes compute and
// caches its result. Errors from compute propagate unchanged; cache faults
// never do. There is no single-flight guard: concurrent misses may compute
// more than once and the last write wins.
func GetOrCompute[T any](ctx context.Context, s *Store, key string, ttl time.Duration, compute func() (T, error)) (T, error) {
	var cached T
	if s.Get(ctx, key, &cached) {
		return cached, nil
	}

	value, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}

	s.Set(ctx, key, value, ttl)
	return value, nil
}
