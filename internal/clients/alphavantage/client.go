// Package alphavantage provides a client for the Alpha Vantage API
package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/stockpulse/internal/common"
	"github.com/bobmcallan/stockpulse/internal/interfaces"
)

//go:generate mockgen -package=alphavantage_test -destination=mock_http_doer_test.go -source=client.go HTTPDoer

const (
	DefaultBaseURL   = "https://www.alphavantage.co"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second

	maxBodyBytes = 32 << 20
)

// HTTPDoer executes HTTP requests. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements MarketDataSource against Alpha Vantage
type Client struct {
	baseURL    string
	apiKey     string
	httpClient HTTPDoer
	timeout    time.Duration
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the client-side request rate
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// WithTimeout bounds each upstream call, including the rate-limit wait
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient replaces the HTTP transport
func WithHTTPClient(doer HTTPDoer) ClientOption {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// NewClient creates a new Alpha Vantage client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:     common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError describes a failed upstream call. It unwraps to one of the
// common source error kinds.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
	Kind       error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("alphavantage API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

// envelope carries the provider's in-band error signals, which arrive with
// HTTP 200.
type envelope struct {
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

// get performs a rate-limited GET against /query and decodes into result.
func (c *Client) get(ctx context.Context, function string, params url.Values, result any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return classifyTransportError(function, ctx.Err())
		}
		// The wait would overrun the deadline
		return fmt.Errorf("%w: %s: rate limit wait: %v", common.ErrSourceRateLimited, function, err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("function", function)
	params.Set("apikey", c.apiKey)

	reqURL := fmt.Sprintf("%s/query?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", common.ErrSourceUnavailable, err)
	}

	start := time.Now()
	c.logger.Debug().Str("function", function).Str("symbol", params.Get("symbol")).Msg("Alpha Vantage API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(function, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return classifyTransportError(function, fmt.Errorf("read body: %w", err))
	}

	c.logger.Debug().
		Str("function", function).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Alpha Vantage API response")

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return &APIError{StatusCode: resp.StatusCode, Message: "too many requests", Endpoint: function, Kind: common.ErrSourceRateLimited}
	case resp.StatusCode != http.StatusOK:
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body)), Endpoint: function, Kind: common.ErrSourceUnavailable}
	case len(body) == 0:
		return &APIError{StatusCode: resp.StatusCode, Message: "empty response", Endpoint: function, Kind: common.ErrSourceUnavailable}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: "malformed response: " + err.Error(), Endpoint: function, Kind: common.ErrSourceUnavailable}
	}
	if msg := firstNonEmpty(env.Note, env.Information); msg != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: msg, Endpoint: function, Kind: common.ErrSourceRateLimited}
	}
	if env.ErrorMessage != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: env.ErrorMessage, Endpoint: function, Kind: common.ErrSourceUnavailable}
	}

	if err := json.Unmarshal(body, result); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: "malformed response: " + err.Error(), Endpoint: function, Kind: common.ErrSourceUnavailable}
	}
	return nil
}

func classifyTransportError(function string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %s: %v", common.ErrSourceTimeout, function, err)
	}
	return fmt.Errorf("%w: %s: %v", common.ErrSourceUnavailable, function, err)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// Ensure Client implements MarketDataSource
var _ interfaces.MarketDataSource = (*Client)(nil)
