package client

import (
	"strings"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"multisafepay-sdk/api"
	"multisafepay-sdk/monitoring"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default instrumented *http.Client.
func WithHTTPClient(httpClient api.Doer) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLocale sets the locale query parameter; empty keeps en_US.
func WithLocale(locale string) Option {
	return func(c *Client) {
		if locale != "" {
			c.locale = locale
		}
	}
}

// WithStrictMode enables payload validation before sending.
func WithStrictMode(strict bool) Option {
	return func(c *Client) {
		c.strictMode.Store(strict)
	}
}

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL == "" {
			return
		}
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		c.url = baseURL
	}
}

// WithLogger sets the logger used for request logs.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTracer sets the tracer used for request spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// WithInstruments sets the metric instruments for API calls.
func WithInstruments(instruments *monitoring.Instruments) Option {
	return func(c *Client) {
		c.instruments = instruments
	}
}

// WithRateLimiter makes every call wait for a token before it is sent.
func WithRateLimiter(limiter *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}
