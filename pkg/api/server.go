package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/octowrap/octowrap/pkg/github"
	"github.com/octowrap/octowrap/pkg/observability"
	"github.com/octowrap/octowrap/pkg/wrapped"
)

// WrappedService is the orchestration layer the handlers call into.
type WrappedService interface {
	GetProfile(ctx context.Context, username string) (wrapped.Profile, error)
	GetUserStats(ctx context.Context, username string) (wrapped.UserStats, error)
	GetWrapped(ctx context.Context, username string, year int) (wrapped.Summary, error)
}

// RateLimitChecker reports the upstream API quota for the configured token.
type RateLimitChecker interface {
	CheckRateLimit(ctx context.Context) (*github.RateLimit, error)
}

// Server represents our API server
type Server struct {
	service   WrappedService
	rateLimit RateLimitChecker
	router    *mux.Router
	logger    *observability.Logger
	version   string
}

// NewServer creates a new API server
func NewServer(service WrappedService, rateLimit RateLimitChecker, logger *observability.Logger, version string) *Server {
	s := &Server{
		service:   service,
		rateLimit: rateLimit,
		router:    mux.NewRouter(),
		logger:    logger,
		version:   version,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all the API routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/", s.root).Methods("GET")

	s.router.HandleFunc("/v1/user/{username}/profile", s.getProfile).Methods("GET")
	s.router.HandleFunc("/v1/user/{username}/stats", s.getUserStats).Methods("GET")
	s.router.HandleFunc("/v1/wrapped/{username}", s.getWrapped).Methods("GET")

	s.router.HandleFunc("/v1/health", s.health).Methods("GET")
	s.router.HandleFunc("/v1/rate-limit", s.getRateLimit).Methods("GET")
}

// Router returns the underlying mux router, for wrapping in middleware.
func (s *Server) Router() *mux.Router {
	return s.router
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
