// Package httpclient wraps fasthttp for the JSON market data providers.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"crypto_dashboard/internal/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StatusError is returned when the provider answers with a non-200 status.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d: %s", e.URL, e.StatusCode, e.Body)
}

// Options configures a JSONClient.
type Options struct {
	Source            string // metrics label, e.g. "coincap"
	Timeout           time.Duration
	RequestsPerSecond float64
	Headers           map[string]string
}

// JSONClient performs rate-limited GET requests and decodes JSON bodies.
type JSONClient struct {
	client  *fasthttp.Client
	source  string
	timeout time.Duration
	limiter *rate.Limiter
	headers map[string]string
	logger  *zap.Logger
}

// NewJSONClient creates a client. A non-positive rate disables limiting.
func NewJSONClient(opts Options, logger *zap.Logger) *JSONClient {
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &JSONClient{
		client:  &fasthttp.Client{},
		source:  opts.Source,
		timeout: opts.Timeout,
		limiter: rate.NewLimiter(limit, 1),
		headers: opts.Headers,
		logger:  logger,
	}
}

// GetJSON fetches url and unmarshals the body into out.
func (c *JSONClient) GetJSON(ctx context.Context, url string, out any) error {
	body, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Error("Failed to unmarshal response", zap.String("url", url), zap.Error(err))
		return fmt.Errorf("failed to unmarshal response from %s: %w", url, err)
	}
	return nil
}

// Get fetches url and returns a copy of the body of a 200 response.
func (c *JSONClient) Get(ctx context.Context, url string) (body []byte, err error) {
	started := time.Now()
	defer func() { metrics.ObserveUpstream(c.source, started, err) }()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait for %s: %w", url, err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	c.logger.Debug("Sending request", zap.String("url", url))

	// Если у контекста есть дедлайн, используем его, иначе таймаут клиента.
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	if err != nil {
		c.logger.Error("Failed to execute request", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request to %s: %w", url, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("Request failed",
			zap.String("url", url),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", resp.Body()),
		)
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode(), Body: truncate(string(resp.Body()), 256)}
	}

	// тело принадлежит resp и освобождается вместе с ним
	return append([]byte(nil), resp.Body()...), nil
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
