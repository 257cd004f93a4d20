package config

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"multisafepay-sdk/client"
)

// Config holds application configuration
type Config struct {
	ServiceName        string        `mapstructure:"service_name"`
	APIKey             string        `mapstructure:"api_key"`
	Production         bool          `mapstructure:"production"`
	BaseURL            string        `mapstructure:"base_url"`
	Locale             string        `mapstructure:"locale"`
	StrictMode         bool          `mapstructure:"strict_mode"`
	Timeout            time.Duration `mapstructure:"timeout"`
	Port               string        `mapstructure:"port"`
	NotificationMaxAge time.Duration `mapstructure:"notification_max_age"`
	RateLimit          float64       `mapstructure:"rate_limit"`
	RateBurst          int           `mapstructure:"rate_burst"`
	OTELEndpoint       string        `mapstructure:"otel_endpoint"`
}

var defaults = map[string]any{
	"service_name":         "multisafepay-sdk",
	"api_key":              "",
	"production":           false,
	"base_url":             "",
	"locale":               client.DefaultLocale,
	"strict_mode":          false,
	"timeout":              10 * time.Second,
	"port":                 "8081",
	"notification_max_age": 5 * time.Minute,
	"rate_limit":           0.0,
	"rate_burst":           1,
	"otel_endpoint":        "localhost:4317",
}

// Load reads configuration from defaults, the optional YAML file at path
// and MSP_* environment variables, in increasing precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("MSP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("otel_endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT"); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings needed to talk to the API.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("api key is not set (MSP_API_KEY)")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// ClientOptions turns the configuration into client options.
func (c *Config) ClientOptions(logger *zap.Logger) []client.Option {
	opts := []client.Option{
		client.WithLocale(c.Locale),
		client.WithStrictMode(c.StrictMode),
		client.WithHTTPClient(&http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   c.Timeout,
		}),
	}
	if c.BaseURL != "" {
		opts = append(opts, client.WithBaseURL(c.BaseURL))
	}
	if logger != nil {
		opts = append(opts, client.WithLogger(logger))
	}
	if c.RateLimit > 0 {
		burst := c.RateBurst
		if burst < 1 {
			burst = 1
		}
		opts = append(opts, client.WithRateLimiter(rate.NewLimiter(rate.Limit(c.RateLimit), burst)))
	}
	return opts
}
