// Package data912 provides a client for the data912.com live market feed
package data912

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/ann0nip/IEB-Investment-Tracker/internal/common"
	"github.com/ann0nip/IEB-Investment-Tracker/internal/interfaces"
	"github.com/ann0nip/IEB-Investment-Tracker/internal/models"
	"github.com/ann0nip/IEB-Investment-Tracker/internal/ticker"
)

const (
	DefaultBaseURL    = "https://data912.com"
	DefaultTimeout    = 10 * time.Second // per attempt, not per logical fetch
	DefaultMaxRetries = 2
	DefaultRetryDelay = 1 * time.Second
	DefaultRateLimit  = 10 // requests per second
)

// endpoints maps each retrievable category to its live feed path.
var endpoints = map[ticker.Category]string{
	ticker.CategoryCEDEAR: "/live/arg_cedears",
	ticker.CategoryBond:   "/live/arg_bonds",
	ticker.CategoryCorp:   "/live/arg_corp",
	ticker.CategoryStock:  "/live/arg_stocks",
	ticker.CategoryNote:   "/live/arg_notes",
}

// Client implements the MarketDataClient interface against data912.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	limiter    *rate.Limiter
	logger     *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the per-attempt timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithRetryPolicy sets the retry count and the fixed inter-attempt delay
func WithRetryPolicy(maxRetries int, delay time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.retryDelay = delay
	}
}

// WithHTTPClient sets the underlying HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new data912 client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:     common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a non-2xx feed response
type APIError struct {
	StatusCode int
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("data912 API error (status: %d, endpoint: %s)", e.StatusCode, e.Endpoint)
}

// FetchCategory retrieves the latest snapshot for every instrument in the
// category. Each attempt is bounded by the per-attempt timeout; transport
// failures and non-2xx responses are retried with a fixed delay. After
// exhausting retries the call fails with *models.DataSourceUnavailable
// carrying the category and the underlying cause. A payload that is not a
// JSON array degrades to an empty result.
func (c *Client) FetchCategory(ctx context.Context, category ticker.Category) ([]models.InstrumentQuote, error) {
	path, ok := endpoints[category]
	if !ok {
		return nil, &models.DataSourceUnavailable{
			Category: string(category),
			Cause:    fmt.Errorf("no endpoint for category %q", category),
		}
	}

	var quotes []models.InstrumentQuote
	attempt := 0

	operation := func() error {
		attempt++
		result, err := c.get(ctx, path)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			c.logger.Warn().
				Str("category", string(category)).
				Int("attempt", attempt).
				Err(err).
				Msg("data912 fetch attempt failed")
			return err
		}
		quotes = result
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryDelay), uint64(c.maxRetries)),
		ctx,
	)

	if err := backoff.Retry(operation, policy); err != nil {
		return nil, &models.DataSourceUnavailable{Category: string(category), Cause: err}
	}

	c.logger.Debug().
		Str("category", string(category)).
		Int("instruments", len(quotes)).
		Msg("data912 category fetched")

	return quotes, nil
}

// get performs one rate-limited, timeout-bounded GET attempt.
func (c *Client) get(ctx context.Context, path string) ([]models.InstrumentQuote, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &APIError{StatusCode: resp.StatusCode, Endpoint: path}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var quotes []models.InstrumentQuote
	if err := json.Unmarshal(body, &quotes); err != nil {
		// Shape check only: a non-array or otherwise malformed payload is
		// an empty result, not a parse failure to propagate.
		c.logger.Warn().Str("endpoint", path).Msg("data912 returned malformed payload, treating as empty")
		return []models.InstrumentQuote{}, nil
	}

	return quotes, nil
}

// Ensure Client implements MarketDataClient
var _ interfaces.MarketDataClient = (*Client)(nil)
