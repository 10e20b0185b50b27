package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/octowrap/octowrap/pkg/github"
	"github.com/octowrap/octowrap/pkg/httputil"
)

const minWrappedYear = 2008

// root handles GET / and returns service metadata
func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	httputil.WriteSuccess(w, map[string]interface{}{
		"message": "GitHub Wrapped API",
		"version": s.version,
		"endpoints": map[string]string{
			"profile":   "/v1/user/:username/profile",
			"stats":     "/v1/user/:username/stats",
			"wrapped":   "/v1/wrapped/:username?year=YYYY",
			"health":    "/v1/health",
			"rateLimit": "/v1/rate-limit",
		},
	})
}

// getProfile handles GET /v1/user/{username}/profile
func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	username, ok := s.requireUsername(w, r)
	if !ok {
		return
	}

	profile, err := s.service.GetProfile(r.Context(), username)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	httputil.WriteSuccess(w, profile)
}

// getUserStats handles GET /v1/user/{username}/stats
func (s *Server) getUserStats(w http.ResponseWriter, r *http.Request) {
	username, ok := s.requireUsername(w, r)
	if !ok {
		return
	}

	stats, err := s.service.GetUserStats(r.Context(), username)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	httputil.WriteSuccess(w, stats)
}

// getWrapped handles GET /v1/wrapped/{username}?year=YYYY
func (s *Server) getWrapped(w http.ResponseWriter, r *http.Request) {
	username, ok := s.requireUsername(w, r)
	if !ok {
		return
	}

	currentYear := time.Now().UTC().Year()
	year, ok := httputil.ParseQueryInt(r, "year", currentYear)
	if !ok || year < minWrappedYear || year > currentYear {
		httputil.WriteValidationError(w, "Invalid year. Must be between 2008 and current year.")
		return
	}

	summary, err := s.service.GetWrapped(r.Context(), username, year)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	httputil.WriteSuccess(w, summary)
}

// health handles GET /v1/health
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteSuccess(w, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   s.version,
	})
}

// getRateLimit handles GET /v1/rate-limit
func (s *Server) getRateLimit(w http.ResponseWriter, r *http.Request) {
	limit, err := s.rateLimit.CheckRateLimit(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("rate limit check failed")
		httputil.WriteInternalError(w, "Failed to check rate limit")
		return
	}

	httputil.WriteSuccess(w, limit)
}

// requireUsername extracts and validates the username path parameter
func (s *Server) requireUsername(w http.ResponseWriter, r *http.Request) (string, bool) {
	username := strings.TrimSpace(httputil.ParsePathString(r, "username"))
	if username == "" {
		httputil.WriteValidationError(w, "Username parameter is required")
		return "", false
	}
	return username, true
}

// writeServiceError maps orchestration errors onto the standard error body
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if apiErr, ok := github.AsAPIError(err); ok {
		if apiErr.StatusCode >= http.StatusInternalServerError {
			s.logger.WithError(err).WithFields(map[string]interface{}{
				"path":   r.URL.Path,
				"status": apiErr.StatusCode,
			}).Error("request failed")
		}
		httputil.WriteError(w, apiErr.StatusCode, http.StatusText(apiErr.StatusCode), apiErr.Message)
		return
	}

	s.logger.WithError(err).WithField("path", r.URL.Path).Error("request failed")
	httputil.WriteInternalError(w, "An unexpected error occurred")
}
