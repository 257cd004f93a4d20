package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"multisafepay-sdk/api"
	"multisafepay-sdk/monitoring"
)

const (
	LiveURL = "https://api.multisafepay.com/v1/json/"
	TestURL = "https://testapi.multisafepay.com/v1/json/"

	DefaultLocale = "en_US"

	minAPIKeyLength     = 5
	defaultTimeout      = 10 * time.Second
	instrumentationName = "multisafepay-sdk/client"
	apiKeyHeader        = "api_key"
)

// Client sends authenticated requests to the MultiSafepay JSON API. It is
// safe for concurrent use.
type Client struct {
	apiKey      string
	url         string
	locale      string
	strictMode  atomic.Bool
	httpClient  api.Doer
	limiter     *rate.Limiter
	logger      *zap.Logger
	tracer      trace.Tracer
	instruments *monitoring.Instruments
}

// New creates a client for the production or test environment. A
// malformed API key fails here, before any request is made.
func New(apiKey string, isProduction bool, opts ...Option) (*Client, error) {
	if len(apiKey) < minAPIKeyLength {
		return nil, api.ErrInvalidAPIKey
	}

	c := &Client{
		apiKey: apiKey,
		url:    TestURL,
		locale: DefaultLocale,
		logger: zap.NewNop(),
		tracer: otel.Tracer(instrumentationName),
	}
	if isProduction {
		c.url = LiveURL
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   defaultTimeout,
		}
	}
	if c.instruments == nil {
		instruments, err := monitoring.NewInstruments(otel.Meter(instrumentationName))
		if err != nil {
			return nil, fmt.Errorf("create instruments: %w", err)
		}
		c.instruments = instruments
	}

	return c, nil
}

// CreatePostRequest sends body as JSON to endpoint.
func (c *Client) CreatePostRequest(ctx context.Context, endpoint string, body api.RequestBody) (*api.Response, error) {
	var payload []byte
	if body != nil {
		data, err := body.Data(c.StrictMode())
		if err != nil {
			return nil, err
		}
		payload, err = api.Encode(data)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.RequestURL(endpoint, nil), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header[apiKeyHeader] = []string{c.apiKey}
	req.Header.Set("accept-encoding", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Length", strconv.Itoa(len(payload)))
	req.ContentLength = int64(len(payload))

	return c.do(req, endpoint, api.RequestContext{RequestBody: string(payload)})
}

// CreateGetRequest fetches endpoint with the given query parameters.
func (c *Client) CreateGetRequest(ctx context.Context, endpoint string, params url.Values) (*api.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.RequestURL(endpoint, params), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header[apiKeyHeader] = []string{c.apiKey}
	req.Header.Set("accept-encoding", "application/json")

	return c.do(req, endpoint, api.RequestContext{RequestParams: params})
}

// RequestURL builds the full URL for endpoint. The locale parameter is
// always appended last and overrides any locale in params.
func (c *Client) RequestURL(endpoint string, params url.Values) string {
	query := url.Values{}
	for k, v := range params {
		if k == "locale" {
			continue
		}
		query[k] = v
	}

	encoded := query.Encode()
	if encoded != "" {
		encoded += "&"
	}
	encoded += "locale=" + url.QueryEscape(c.locale)

	return c.url + endpoint + "?" + encoded
}

// SetStrictMode toggles strict payload validation.
func (c *Client) SetStrictMode(strict bool) *Client {
	c.strictMode.Store(strict)
	return c
}

// StrictMode reports whether payloads are validated before sending.
func (c *Client) StrictMode() bool { return c.strictMode.Load() }

// HTTPClient returns the transport used for requests.
func (c *Client) HTTPClient() api.Doer { return c.httpClient }

// Locale returns the locale sent with every request.
func (c *Client) Locale() string { return c.locale }

func (c *Client) do(req *http.Request, endpoint string, reqCtx api.RequestContext) (*api.Response, error) {
	route := routeLabel(endpoint)
	ctx, span := c.tracer.Start(req.Context(), "msp "+req.Method+" "+route,
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()
	req = req.WithContext(ctx)

	span.SetAttributes(
		attribute.String("external.service", "multisafepay"),
		attribute.String("msp.endpoint", route),
		attribute.String("http.method", req.Method),
	)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "rate limit wait")
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	reqCtx.Method = req.Method
	reqCtx.URL = req.URL.String()
	reqCtx.Headers = redact(req.Header)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		duration := time.Since(start)
		c.record(ctx, req.Method, route, "error", duration)
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		c.logger.Error("MultiSafepay request failed",
			zap.Error(err),
			zap.String("method", req.Method),
			zap.String("endpoint", route),
			zap.Duration("duration", duration),
		)
		return nil, fmt.Errorf("failed to call multisafepay %s %s: %w", req.Method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	duration := time.Since(start)
	if err != nil {
		c.record(ctx, req.Method, route, "error", duration)
		span.RecordError(err)
		span.SetStatus(codes.Error, "read response body")
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	reqCtx.StatusCode = resp.StatusCode
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	response, err := api.NewResponse(raw, reqCtx)
	if err != nil {
		c.record(ctx, req.Method, route, "failed", duration)
		span.RecordError(err)
		span.SetStatus(codes.Error, "api error")
		c.logger.Warn("MultiSafepay request returned an error",
			zap.Error(err),
			zap.String("method", req.Method),
			zap.String("endpoint", route),
			zap.Int("status_code", resp.StatusCode),
			zap.Duration("duration", duration),
		)
		return nil, err
	}

	c.record(ctx, req.Method, route, "success", duration)
	c.logger.Debug("MultiSafepay request completed",
		zap.String("method", req.Method),
		zap.String("endpoint", route),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return response, nil
}

func (c *Client) record(ctx context.Context, method, route, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("endpoint", route),
		attribute.String("status", status),
	)
	c.instruments.APIRequests.Add(ctx, 1, attrs)
	c.instruments.APIRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// routeLabel replaces resource ids so "orders/123/refunds" becomes
// "orders/{id}/refunds".
func routeLabel(endpoint string) string {
	parts := strings.Split(strings.Trim(endpoint, "/"), "/")
	for i := 1; i < len(parts); i += 2 {
		parts[i] = "{id}"
	}
	return strings.Join(parts, "/")
}

func redact(h http.Header) http.Header {
	out := h.Clone()
	if _, ok := out[apiKeyHeader]; ok {
		out[apiKeyHeader] = []string{"***"}
	}
	return out
}
