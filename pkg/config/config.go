package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/octowrap/octowrap/pkg/cache"
	"github.com/octowrap/octowrap/pkg/observability"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// GitHub upstream configuration
	GitHub GitHubConfig

	// Cache configuration
	Cache cache.Config

	// Observability configuration
	Observability ObservabilityConfig

	// RateLimit configuration for the public API surface
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Health/metrics server (separate port for probes)
	HealthPort string
}

// GitHubConfig holds upstream API settings
type GitHubConfig struct {
	Token    string
	Endpoint string
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel       observability.LogLevel
	MetricsEnabled bool
}

// RateLimitConfig holds inbound rate limit settings
type RateLimitConfig struct {
	RequestsPerWindow int
	WindowDuration    time.Duration
	BurstSize         int
}

// LoadConfig loads configuration from environment variables. A .env file in
// the working directory is merged in first when present; missing files are
// not an error.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server:        loadServerConfig(),
		GitHub:        loadGitHubConfig(),
		Cache:         loadCacheConfig(),
		Observability: loadObservabilityConfig(),
		RateLimit:     loadRateLimitConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadServerConfig loads server configuration from environment
func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("OCTOWRAP_HOST", "0.0.0.0"),
		Port:            getEnv("OCTOWRAP_PORT", "8080"),
		ReadTimeout:     getEnvDuration("OCTOWRAP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("OCTOWRAP_WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:     getEnvDuration("OCTOWRAP_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("OCTOWRAP_SHUTDOWN_TIMEOUT", 30*time.Second),
		HealthPort:      getEnv("OCTOWRAP_HEALTH_PORT", "9090"),
	}
}

// loadGitHubConfig loads upstream API configuration from environment
func loadGitHubConfig() GitHubConfig {
	return GitHubConfig{
		Token:    getEnv("GITHUB_TOKEN", ""),
		Endpoint: getEnv("GITHUB_GRAPHQL_URL", "https://api.github.com/graphql"),
	}
}

// loadCacheConfig loads cache configuration from environment
func loadCacheConfig() cache.Config {
	cfg := cache.DefaultConfig()

	cfg.Enabled = getEnvBool("OCTOWRAP_CACHE_ENABLED", true)
	if redisURL := getEnv("OCTOWRAP_REDIS_URL", ""); redisURL != "" {
		cfg.RedisURL = redisURL
	}
	if redisPassword := getEnv("OCTOWRAP_REDIS_PASSWORD", ""); redisPassword != "" {
		cfg.RedisPassword = redisPassword
	}
	if redisDB := getEnvInt("OCTOWRAP_REDIS_DB", -1); redisDB >= 0 {
		cfg.RedisDB = redisDB
	}
	if maxRetries := getEnvInt("OCTOWRAP_REDIS_MAX_RETRIES", 0); maxRetries > 0 {
		cfg.RedisMaxRetries = maxRetries
	}
	if poolSize := getEnvInt("OCTOWRAP_REDIS_POOL_SIZE", 0); poolSize > 0 {
		cfg.RedisPoolSize = poolSize
	}
	if l1Size := getEnvInt("OCTOWRAP_L1_CACHE_SIZE", 0); l1Size > 0 {
		cfg.L1Size = l1Size
	}

	return cfg
}

// loadObservabilityConfig loads observability configuration from environment
func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:       parseLogLevel(getEnv("OCTOWRAP_LOG_LEVEL", "info")),
		MetricsEnabled: getEnvBool("OCTOWRAP_METRICS_ENABLED", true),
	}
}

// loadRateLimitConfig loads inbound rate limit configuration from environment
func loadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerWindow: getEnvInt("OCTOWRAP_RATELIMIT_REQUESTS", 100),
		WindowDuration:    getEnvDuration("OCTOWRAP_RATELIMIT_WINDOW", 15*time.Minute),
		BurstSize:         getEnvInt("OCTOWRAP_RATELIMIT_BURST", 10),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must be different")
	}

	if c.GitHub.Token == "" {
		return fmt.Errorf("GITHUB_TOKEN is required")
	}
	if c.GitHub.Endpoint == "" {
		return fmt.Errorf("GitHub GraphQL endpoint is required")
	}

	if c.RateLimit.RequestsPerWindow <= 0 {
		return fmt.Errorf("rate limit requests per window must be positive")
	}
	if c.RateLimit.WindowDuration <= 0 {
		return fmt.Errorf("rate limit window must be positive")
	}

	return nil
}

// parseLogLevel parses a log level string
func parseLogLevel(level string) observability.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return observability.DebugLevel
	case "info":
		return observability.InfoLevel
	case "warn", "warning":
		return observability.WarnLevel
	case "error":
		return observability.ErrorLevel
	default:
		return observability.InfoLevel
	}
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
