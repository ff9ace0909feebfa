package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is where the stock research backend listens in development
	DefaultBaseURL = "http://localhost:5000"

	apiPrefix = "/api"

	// DefaultFinancialsDelay is how long the financials placeholder takes to settle
	DefaultFinancialsDelay = time.Second
)

// Client is an HTTP client for the stock research backend
type Client struct {
	baseURL         string
	httpClient      *http.Client
	financialsDelay time.Duration
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithFinancialsDelay sets how long Financials waits before settling
func WithFinancialsDelay(d time.Duration) Option {
	return func(c *Client) {
		c.financialsDelay = d
	}
}

// NewClient creates a new backend API client rooted at baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		financialsDelay: DefaultFinancialsDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health probes the backend and returns its status message
func (c *Client) Health(ctx context.Context) (string, error) {
	var resp HealthResponse
	if err := c.getJSON(ctx, apiPrefix+"/health", &resp); err != nil {
		return "", fmt.Errorf("health check failed: %w", err)
	}
	return resp.Message, nil
}

// Search looks up tickers matching the query
func (c *Client) Search(ctx context.Context, query string) ([]Stock, error) {
	var resp SearchResponse
	if err := c.getJSON(ctx, apiPrefix+"/search/"+url.PathEscape(query), &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	if resp.Results == nil {
		return []Stock{}, nil
	}
	return resp.Results, nil
}

// Overview fetches the per-source company overview for a ticker
func (c *Client) Overview(ctx context.Context, ticker string) (SourceReport, error) {
	body, err := c.get(ctx, stockPath(ticker, "overview"))
	if err != nil {
		return nil, fmt.Errorf("overview for %s: %w", ticker, err)
	}

	report, err := ParseSourceReport(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse overview for %s: %w", ticker, err)
	}
	return report, nil
}

// PriceHistory fetches per-source historical prices for a ticker
func (c *Client) PriceHistory(ctx context.Context, ticker string) (PriceHistory, error) {
	body, err := c.get(ctx, stockPath(ticker, "price-history"))
	if err != nil {
		return PriceHistory{}, fmt.Errorf("price history for %s: %w", ticker, err)
	}

	history, err := ParsePriceHistory(body)
	if err != nil {
		return PriceHistory{}, fmt.Errorf("failed to parse price history for %s: %w", ticker, err)
	}
	return history, nil
}

// News fetches recent articles about a ticker
func (c *Client) News(ctx context.Context, ticker string) ([]Article, error) {
	var articles []Article
	if err := c.getJSON(ctx, stockPath(ticker, "news"), &articles); err != nil {
		return nil, fmt.Errorf("news for %s: %w", ticker, err)
	}
	return articles, nil
}

// Financials returns the financial metrics for a ticker.
//
// The backend does not serve financials yet, so this settles after the
// configured delay with a fixed notice instead of making a request.
// TODO: call /api/stock/{ticker}/financials once the backend exposes it.
func (c *Client) Financials(ctx context.Context, ticker string) (Financials, error) {
	timer := time.NewTimer(c.financialsDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return Financials{}, ctx.Err()
	case <-timer.C:
	}

	return Financials{
		Ticker:  ticker,
		Message: FinancialsNotImplemented,
	}, nil
}

func stockPath(ticker, resource string) string {
	return fmt.Sprintf("%s/stock/%s/%s", apiPrefix, url.PathEscape(ticker), resource)
}

// getJSON fetches path and decodes the body into v
func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	body, err := c.get(ctx, path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse response from %s: %w", path, err)
	}
	return nil
}

// get issues a GET for path and returns the body of a 2xx response
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	// Make HTTP request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	// Any non-2xx is a failure regardless of body
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Status: resp.StatusCode, Path: path}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}
