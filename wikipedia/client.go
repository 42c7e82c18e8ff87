// Package wikipedia is a read-only client for the Wikipedia (MediaWiki) query
// API: search, random and geo lookups, page metadata and per-page content,
// with cursor-based pagination over multi-page result sets.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/olgasafonova/wikipedia-mcp-server/internal/infobox"
	"github.com/olgasafonova/wikipedia-mcp-server/internal/infra"
	"github.com/olgasafonova/wikipedia-mcp-server/metrics"
	"github.com/olgasafonova/wikipedia-mcp-server/tracing"
)

// HTTPDoer sends one HTTP request. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// InfoboxParser turns the wikitext of a page's lead section into infobox
// key/value pairs.
type InfoboxParser interface {
	Parse(wikitext string) (map[string]string, error)
}

// Client issues query API requests against one Wikipedia edition.
// It is safe for concurrent use.
type Client struct {
	config     *Config
	endpoint   *url.URL
	httpClient HTTPDoer
	logger     *slog.Logger
	breaker    *infra.CircuitBreaker
	infobox    InfoboxParser
	maxPages   int
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithHTTPClient sets the transport used for requests
func WithHTTPClient(h HTTPDoer) ClientOption {
	return func(c *Client) {
		c.httpClient = h
	}
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// WithInfoboxParser replaces the wikitext infobox parser
func WithInfoboxParser(p InfoboxParser) ClientOption {
	return func(c *Client) {
		c.infobox = p
	}
}

// WithCircuitBreaker tunes the breaker guarding the endpoint
func WithCircuitBreaker(failureThreshold int, resetTimeout time.Duration) ClientOption {
	return func(c *Client) {
		c.breaker = infra.NewCircuitBreakerWithConfig(failureThreshold, resetTimeout, infra.DefaultHalfOpenMax)
	}
}

// WithoutCircuitBreaker sends every request regardless of earlier failures
func WithoutCircuitBreaker() ClientOption {
	return func(c *Client) {
		c.breaker = nil
	}
}

// WithMaxAggregatePages bounds how many pages Aggregate and All follow.
// Non-positive values keep MaxAggregatePages.
func WithMaxAggregatePages(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxPages = n
		}
	}
}

// NewClient creates a client. A nil config means DefaultConfig().
func NewClient(config *Config, opts ...ClientOption) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	endpoint, err := config.Endpoint()
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q: scheme and host are required", endpoint)
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		config:     config,
		endpoint:   u,
		httpClient: newHTTPClient(timeout),
		logger:     slog.Default(),
		breaker:    infra.NewCircuitBreaker(),
		infobox:    infobox.New(),
		maxPages:   MaxAggregatePages,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Endpoint returns the api.php URL the client talks to
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// CircuitBreakerStats returns the current circuit breaker state
func (c *Client) CircuitBreakerStats() infra.CircuitBreakerStats {
	if c.breaker == nil {
		return infra.CircuitBreakerStats{State: infra.CircuitClosed.String()}
	}
	return c.breaker.Stats()
}

// Query issues one query API request and returns the parsed JSON body.
// format=json and action=query are always sent and win over params.
// The request is bound to ctx; there are no retries.
func (c *Client) Query(ctx context.Context, params Params) (Response, error) {
	return c.query(ctx, "query", params)
}

// query is Query with an operation label for metrics, tracing and logs
func (c *Client) query(ctx context.Context, operation string, params Params) (Response, error) {
	ctx, span := tracing.StartQuerySpan(ctx, operation, c.endpoint.String(), firstNonEmpty(params["titles"], params["bltitle"]))
	defer span.End()

	start := time.Now()
	resp, err := c.do(ctx, params)
	duration := time.Since(start).Seconds()
	metrics.RecordAPICall(operation, duration, err == nil, errorKind(err))
	tracing.Finish(span, err)

	if err != nil {
		c.logger.Warn("Wikipedia API request failed",
			"operation", operation,
			"duration_seconds", duration,
			"error", err)
		return nil, err
	}

	return resp, nil
}

func (c *Client) do(ctx context.Context, params Params) (Response, error) {
	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}
	values.Set("format", "json")
	values.Set("action", "query")

	u := *c.endpoint
	u.RawQuery = values.Encode()
	reqURL := u.String()

	if err := ctx.Err(); err != nil {
		return nil, &TransportError{URL: reqURL, Err: err}
	}

	if c.breaker != nil && !c.breaker.Allow() {
		metrics.CircuitOpenRejections.Inc()
		stats := c.breaker.Stats()
		return nil, &TransportError{
			URL: reqURL,
			Err: &infra.ErrCircuitOpen{
				State:    stats.State,
				RetryAt:  stats.RetryAt,
				Failures: stats.ConsecutiveFails,
			},
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", firstNonEmpty(c.config.UserAgent, DefaultUserAgent))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordTransportFailure(ctx)
		return nil, &TransportError{URL: reqURL, Err: err}
	}

	body, err := readAndClose(resp)
	if err != nil {
		c.recordTransportFailure(ctx)
		return nil, &TransportError{URL: reqURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			c.recordFailure()
		} else {
			c.recordSuccess()
		}
		return nil, &TransportError{
			URL:        reqURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s: %s", http.StatusText(resp.StatusCode), truncate(string(body), 200)),
		}
	}
	c.recordSuccess()

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &ParseError{Snippet: truncate(string(body), 200), Err: err}
	}
	if result == nil {
		return nil, &ParseError{Snippet: truncate(string(body), 200), Err: fmt.Errorf("response is not a JSON object")}
	}

	if errObj := getMap(result["error"]); errObj != nil {
		return nil, &APIError{
			Code: getString(errObj["code"]),
			Info: getString(errObj["info"]),
		}
	}

	return Response(result), nil
}

// recordTransportFailure counts a failed exchange against the breaker unless
// the caller's own context ended it.
func (c *Client) recordTransportFailure(ctx context.Context) {
	if ctx.Err() != nil {
		if c.breaker != nil {
			c.breaker.Release()
		}
		return
	}
	c.recordFailure()
}

func (c *Client) recordFailure() {
	if c.breaker != nil {
		c.breaker.RecordFailure()
	}
}

func (c *Client) recordSuccess() {
	if c.breaker != nil {
		c.breaker.RecordSuccess()
	}
}

// readAndClose reads the response body and closes it
func readAndClose(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return body, err
}

// newHTTPClient creates an HTTP client with connection reuse tuned for one API host
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		IdleConnTimeout:       120 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
