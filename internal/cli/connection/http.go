package connection

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/spot-go/internal/telemetry/logger"
	"github.com/yndnr/spot-go/internal/telemetry/metric"
)

// DefaultTimeout bounds every request, from dial to the last body byte.
const DefaultTimeout = 15 * time.Second

// DefaultUserAgent is sent when Config.UserAgent is empty.
const DefaultUserAgent = "spot-cli/1.0"

// maxBodySize caps how much of a response body is read.
const maxBodySize = 10 << 20

// Config configures an HTTPClient.
type Config struct {
	// BaseURL is the API root, e.g. http://localhost:5000/api.
	// A missing scheme defaults to http://.
	BaseURL string
	// Timeout is the per-request timeout. Zero means DefaultTimeout.
	Timeout time.Duration
	// UserAgent overrides DefaultUserAgent.
	UserAgent string
	// RateLimit caps outgoing requests per second. Zero disables it.
	RateLimit float64
	// TLSConfig is used for https endpoints when set.
	TLSConfig *tls.Config
}

// Doer issues one API call. out receives the decoded 2xx body.
type Doer interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// HTTPClient provides HTTP communication with the API.
type HTTPClient struct {
	baseURL   string
	client    *http.Client
	tokens    TokenSource
	userAgent string
	limiter   *rate.Limiter
	logger    logger.Logger
	metrics   *metric.ClientMetrics
	newID     func() string
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithLogger sets the logger used for request diagnostics. Without it the
// logger carried by the request context is used.
func WithLogger(l logger.Logger) Option {
	return func(c *HTTPClient) {
		c.logger = l
	}
}

// WithMetrics records request counts and latency into m.
func WithMetrics(m *metric.ClientMetrics) Option {
	return func(c *HTTPClient) {
		c.metrics = m
	}
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *HTTPClient) {
		c.client.Transport = rt
	}
}

// WithRequestIDFunc overrides how X-Request-ID values are generated.
func WithRequestIDFunc(fn func() string) Option {
	return func(c *HTTPClient) {
		c.newID = fn
	}
}

// NewHTTPClient creates a client for cfg.BaseURL that reads the bearer
// token from tokens on every request. tokens may be nil.
func NewHTTPClient(cfg Config, tokens TokenSource, opts ...Option) (*HTTPClient, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errors.New("connection: base URL is required")
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if tokens == nil {
		tokens = StaticToken("")
	}

	httpClient := &http.Client{Timeout: timeout}
	if cfg.TLSConfig != nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = cfg.TLSConfig
		httpClient.Transport = transport
	}

	c := &HTTPClient{
		baseURL:   baseURL,
		client:    httpClient,
		tokens:    tokens,
		userAgent: userAgent,
		newID:     func() string { return ulid.Make().String() },
	}
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the base URL of the client.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Timeout returns the per-request timeout.
func (c *HTTPClient) Timeout() time.Duration {
	return c.client.Timeout
}

// Do sends one request and decodes a 2xx body into out.
//
// body, when non-nil, is sent as JSON. out may be nil to discard the body;
// an empty 2xx body leaves out untouched.
func (c *HTTPClient) Do(ctx context.Context, method, path string, body, out any) error {
	requestID := c.newID()
	ctx = logger.WithRequestID(ctx, requestID)
	log := c.log(ctx).With("method", method, "path", path)
	start := time.Now()

	resp, err := c.send(ctx, method, path, body, requestID)
	if err != nil {
		var le *localError
		switch {
		case errors.As(err, &le):
			c.observe(method, metric.OutcomeLocalError, start)
			log.Debug("request not sent", "error", le.err)
			return le.err
		case errors.Is(err, context.Canceled):
			c.observe(method, metric.OutcomeLocalError, start)
			log.Debug("request cancelled", "error", err)
			return err
		default:
			// Dial failures, resets and timeouts, including a caller deadline.
			c.observe(method, metric.OutcomeUnreachable, start)
			log.Debug("no response", "error", err, "duration", time.Since(start))
			return &APIError{Kind: KindUnreachable, Message: MsgNoResponse, Cause: err}
		}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		c.observe(method, metric.OutcomeUnreachable, start)
		log.Debug("response body cut short", "status", resp.StatusCode, "error", err)
		return &APIError{Kind: KindUnreachable, Message: MsgNoResponse, Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := serverMessage(data)
		c.observe(method, metric.OutcomeServerError, start)
		log.Debug("request rejected", "status", resp.StatusCode, "message", msg, "duration", time.Since(start))
		return &APIError{Kind: KindServer, Message: msg, Status: resp.StatusCode}
	}

	c.observe(method, metric.OutcomeOK, start)
	log.Debug("request complete", "status", resp.StatusCode, "duration", time.Since(start))

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// localError marks a failure that happened before anything was sent.
type localError struct{ err error }

func (e *localError) Error() string { return e.err.Error() }
func (e *localError) Unwrap() error { return e.err }

// send builds and executes the request. Failures before the round trip are
// wrapped in localError so Do can return the original error unchanged.
func (c *HTTPClient) send(ctx context.Context, method, path string, body any, requestID string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &localError{err}
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, &localError{err}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &localError{err}
		}
	}

	c.addHeaders(req, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.client.Do(req)
}

// addHeaders adds authentication and common headers.
func (c *HTTPClient) addHeaders(req *http.Request, requestID string) {
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
}

func (c *HTTPClient) log(ctx context.Context) logger.Logger {
	if c.logger != nil {
		return c.logger.With("request_id", logger.RequestIDFromContext(ctx))
	}
	return logger.L(ctx)
}

func (c *HTTPClient) observe(method string, outcome metric.Outcome, start time.Time) {
	c.metrics.ObserveRequest(method, outcome, time.Since(start))
}
