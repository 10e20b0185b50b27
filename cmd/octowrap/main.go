package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/octowrap/octowrap/pkg/api"
	"github.com/octowrap/octowrap/pkg/cache"
	"github.com/octowrap/octowrap/pkg/config"
	"github.com/octowrap/octowrap/pkg/github"
	"github.com/octowrap/octowrap/pkg/httputil"
	"github.com/octowrap/octowrap/pkg/middleware"
	"github.com/octowrap/octowrap/pkg/observability"
	"github.com/octowrap/octowrap/pkg/wrapped"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	flag.Parse()

	startupLog := logrus.New()
	startupLog.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig()
	if err != nil {
		startupLog.WithError(err).Fatal("Failed to load configuration")
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)
	logger.WithField("version", version).Info("Starting octowrap")

	registry := prometheus.NewRegistry()
	var metrics *observability.Metrics
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(registry)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cache is optional; a failed Redis connection degrades to pass-through.
	store := cache.NewStore(cfg.Cache, logger, cache.WithMetrics(metrics))
	if err := store.Connect(ctx); err != nil {
		logger.WithError(err).Warn("Starting without cache")
	}

	ghOpts := []github.Option{github.WithEndpoint(cfg.GitHub.Endpoint)}
	if metrics != nil {
		ghOpts = append(ghOpts, github.WithMetrics(metrics))
	}
	ghClient := github.NewClient(cfg.GitHub.Token, logger, ghOpts...)

	service := wrapped.NewService(ghClient, store, logger)
	server := api.NewServer(service, ghClient, logger, version)

	rateLimit := middleware.NewRateLimitMiddleware(&middleware.RateLimitConfig{
		RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
		WindowDuration:    cfg.RateLimit.WindowDuration,
		BurstSize:         cfg.RateLimit.BurstSize,
	}, metrics)
	rateLimit.StartCleanup(ctx)

	var handler http.Handler = server
	handler = rateLimit.Handler(handler)
	handler = httputil.RecoveryMiddleware(logger)(handler)
	handler = httputil.LoggingMiddleware(logger)(handler)
	if metrics != nil {
		handler = observability.HTTPMetricsMiddleware(metrics)(handler)
	}
	handler = httputil.CORSMiddleware(handler)
	handler = middleware.SecurityHeaders(handler)
	handler = middleware.RequestID(handler)

	apiServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Health and metrics are served on a separate port, outside the public
	// middleware chain.
	healthMux := http.NewServeMux()
	healthChecker := observability.NewHealthChecker(store.Client(), version)
	observability.RegisterHealthRoutes(healthMux, healthChecker)
	if cfg.Observability.MetricsEnabled {
		observability.RegisterMetricsEndpoint(healthMux, registry)
	}
	healthServer := &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.Host, cfg.Server.HealthPort),
		Handler: healthMux,
	}

	shutdown := observability.NewShutdownManager(logger, cfg.Server.ShutdownTimeout, apiServer, healthServer)
	shutdown.RegisterShutdownFunc(func(context.Context) error {
		return store.Close()
	})

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("API server listening on %s", apiServer.Addr)
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		logger.Infof("Health server listening on %s", healthServer.Addr)
		if err := healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return shutdown.WaitForShutdown()
	})

	if err := g.Wait(); err != nil {
		startupLog.WithError(err).Fatal("Server exited with error")
	}
}
