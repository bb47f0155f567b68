package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tempmail/client-go/internal/apierrors"
)

// Default values for client configuration.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "tempmail-client-go"
)

// Config holds configuration for creating a new API client.
type Config struct {
	// BaseURL is the API endpoint. Actions are sent as the "action" query
	// parameter against this URL.
	BaseURL string

	// HTTPClient is an optional custom HTTP client. When set, Timeout is ignored.
	HTTPClient *http.Client

	// Timeout bounds each request, including reading the body.
	Timeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// Logger receives per-request debug lines. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Client is the HTTP API client.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
	logger     *zap.Logger
}

// NewClient creates a new API client with the given configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must include scheme and host", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:    base,
		httpClient: httpClient,
		userAgent:  userAgent,
		logger:     logger,
	}, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) buildURL(action string, params url.Values) string {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("action", action)

	u := *c.baseURL
	u.RawQuery = q.Encode()
	return u.String()
}

// open sends a GET for action and returns the response on a 2xx status.
// The caller must close the body.
func (c *Client) open(ctx context.Context, action string, params url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(action, params), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("action", action),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, &apierrors.NetworkError{Err: err, Action: action}
	}

	c.logger.Debug("request completed",
		zap.String("action", action),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, parseErrorResponse(action, resp)
	}
	return resp, nil
}

// get sends a GET for action and returns the full response body.
func (c *Client) get(ctx context.Context, action string, params url.Values) ([]byte, error) {
	resp, err := c.open(ctx, action, params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apierrors.NetworkError{Err: err, Action: action}
	}
	return body, nil
}

func parseErrorResponse(action string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &apierrors.APIError{
		StatusCode: resp.StatusCode,
		Action:     action,
		Message:    strings.TrimSpace(string(body)),
	}
}
