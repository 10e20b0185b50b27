package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/octowrap/octowrap/pkg/observability"
)

const defaultEndpoint = "https://api.github.com/graphql"

// Client issues GraphQL queries against the GitHub API. It holds no mutable
// state beyond the token-bearing transport and is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	endpoint   string
	logger     *observability.Logger
	metrics    *observability.Metrics
}

// Option customizes a Client.
type Option func(*Client)

// WithEndpoint overrides the GraphQL endpoint (used by tests and proxies).
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMetrics attaches Prometheus metrics for upstream call instrumentation.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a GitHub GraphQL client authenticated with the given
// token.
func NewClient(token string, logger *observability.Logger, opts ...Option) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), src)
	httpClient.Timeout = 30 * time.Second

	c := &Client{
		httpClient: httpClient,
		endpoint:   defaultEndpoint,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// Query executes a GraphQL document and decodes the response data into out.
// All failure modes return an *APIError.
func (c *Client) Query(ctx context.Context, document string, variables map[string]interface{}, out interface{}) error {
	start := time.Now()
	err := c.query(ctx, document, variables, out)
	if c.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		c.metrics.UpstreamRequestsTotal.WithLabelValues(status).Inc()
		c.metrics.UpstreamRequestDuration.Observe(time.Since(start).Seconds())
	}
	return err
}

func (c *Client) query(ctx context.Context, document string, variables map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(graphQLRequest{Query: document, Variables: variables})
	if err != nil {
		return NewAPIError("failed to encode GraphQL request", http.StatusInternalServerError, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return NewAPIError("failed to build GraphQL request", http.StatusInternalServerError, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return NewAPIError("GitHub API request failed", http.StatusInternalServerError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return NewAPIError(
			fmt.Sprintf("GitHub API returned status %d", resp.StatusCode),
			resp.StatusCode,
			nil,
		)
	}

	var envelope graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return NewAPIError("failed to decode GitHub API response", http.StatusInternalServerError, err)
	}

	// A missing user arrives as a NOT_FOUND error next to a null user node.
	// That case decodes to a nil root entity rather than failing the call.
	if len(envelope.Errors) > 0 && !allNotFound(envelope.Errors) {
		c.logger.WithField("graphql_error", envelope.Errors[0].Message).Warn("GitHub API returned GraphQL errors")
		return NewAPIError(
			fmt.Sprintf("GitHub API error: %s", envelope.Errors[0].Message),
			http.StatusBadGateway,
			nil,
		)
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return NewAPIError("unexpected GitHub API response shape", http.StatusInternalServerError, err)
		}
	}

	return nil
}

func allNotFound(errs []graphQLError) bool {
	for _, e := range errs {
		if e.Type != "NOT_FOUND" {
			return false
		}
	}
	return true
}

// FetchWrapped fetches contribution and repository data for one year window.
// A nil user with a nil error means the user does not exist.
func (c *Client) FetchWrapped(ctx context.Context, username string, from, to time.Time) (*WrappedUser, error) {
	var resp wrappedStatsResponse
	err := c.Query(ctx, wrappedStatsQuery, map[string]interface{}{
		"username": username,
		"from":     from.UTC().Format(time.RFC3339),
		"to":       to.UTC().Format(time.RFC3339),
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.User, nil
}

// FetchLanguages fetches language byte counts across the user's owned
// repositories. A nil user with a nil error means the user does not exist.
func (c *Client) FetchLanguages(ctx context.Context, username string) (*LanguagesUser, error) {
	var resp languageStatsResponse
	err := c.Query(ctx, languageStatsQuery, map[string]interface{}{"username": username}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.User, nil
}

// FetchUserStats fetches lifetime contribution totals and owned repository
// star counts. A nil user with a nil error means the user does not exist.
func (c *Client) FetchUserStats(ctx context.Context, username string) (*StatsUser, error) {
	var resp userStatsResponse
	err := c.Query(ctx, userStatsQuery, map[string]interface{}{"username": username}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.User, nil
}

// FetchProfile fetches profile fields and pinned repositories. A nil user
// with a nil error means the user does not exist.
func (c *Client) FetchProfile(ctx context.Context, username string) (*ProfileUser, error) {
	var resp userProfileResponse
	err := c.Query(ctx, userProfileQuery, map[string]interface{}{"username": username}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.User, nil
}

// CheckRateLimit reports the remaining GitHub API quota for the token.
func (c *Client) CheckRateLimit(ctx context.Context) (*RateLimit, error) {
	var resp rateLimitResponse
	if err := c.Query(ctx, rateLimitQuery, nil, &resp); err != nil {
		return nil, NewAPIError("failed to check rate limit", http.StatusInternalServerError, err)
	}
	return &resp.RateLimit, nil
}
