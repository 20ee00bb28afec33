// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/marquee/internal/metrics"
)

const (
	// DefaultBaseURL is the public TMDB v3 API root.
	DefaultBaseURL = "https://api.themoviedb.org/3"

	defaultTimeout = 10 * time.Second

	// maxErrorBodySize limits how much of an error response is kept for diagnostics.
	maxErrorBodySize = 64 * 1024

	// maxPage is the highest page the discover endpoint will serve.
	maxPage = 500
)

// HTTPClient is the subset of *http.Client used by Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API root (useful for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(h HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = h
	}
}

// WithAPIKey authenticates with the api_key query parameter.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithBearerToken authenticates with an Authorization header.
func WithBearerToken(token string) ClientOption {
	return func(c *Client) {
		c.bearerToken = token
	}
}

// WithLanguage sets the response language (e.g. "en-US").
func WithLanguage(lang string) ClientOption {
	return func(c *Client) {
		c.language = lang
	}
}

// WithRegion sets the release region used by date filters.
func WithRegion(region string) ClientOption {
	return func(c *Client) {
		c.region = region
	}
}

// WithRateLimit replaces the default limiter. A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger.With().Str("component", "catalog").Logger()
	}
}

// Client talks to a TMDB-compatible discover endpoint.
type Client struct {
	baseURL     string
	apiKey      string
	bearerToken string
	language    string
	region      string
	httpClient  HTTPClient
	limiter     *rate.Limiter
	logger      zerolog.Logger
}

// NewClient creates a client. Without options it targets the public API,
// unauthenticated, limited to 20 requests per second.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(20), 10),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Discover fetches one page of results for filter. page is 1-based.
func (c *Client) Discover(ctx context.Context, filter FilterSpec, page int) (*Page, error) {
	if page < 1 || page > maxPage {
		return nil, &Error{Op: "discover", Page: page, Err: fmt.Errorf("%w: page must be in [1,%d]", ErrBadRequest, maxPage)}
	}

	params := filter.Params()
	params.Set("page", strconv.Itoa(page))
	params.Set("include_adult", "false")
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
	if c.language != "" {
		params.Set("language", c.language)
	}
	if c.region != "" {
		params.Set("region", c.region)
	}

	var result Page
	if err := c.get(ctx, "discover", page, "/discover/movie?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	if result.Results == nil {
		result.Results = []Movie{}
	}
	return &result, nil
}

func (c *Client) get(ctx context.Context, op string, page int, path string, out interface{}) error {
	start := time.Now()
	status := "error"
	defer func() {
		metrics.CatalogRequests.WithLabelValues(op, status).Inc()
		metrics.CatalogRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			status = "cancelled"
			return &Error{Op: op, Page: page, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return &Error{Op: op, Page: page, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Op: op, Page: page, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		sentinel := statusError(resp.StatusCode)
		if sentinel == ErrRateLimited {
			status = "rate_limited"
		}
		c.logger.Debug().
			Str("op", op).
			Int("page", page).
			Int("status", resp.StatusCode).
			Msg("Catalog request failed")
		return &Error{
			Op:         op,
			Page:       page,
			StatusCode: resp.StatusCode,
			Body:       string(readBodyForError(resp.Body)),
			Err:        sentinel,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: op, Page: page, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	status = "success"
	return nil
}

// readBodyForError reads at most maxErrorBodySize bytes of r.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}
