package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"multisafepay-sdk/monitoring"
)

// NewRouter wires the notification routes, health check and /metrics.
func NewRouter(serviceName string, h *NotificationHandler, instruments *monitoring.Instruments) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// OpenTelemetry middleware
	r.Use(otelgin.Middleware(serviceName))
	if instruments != nil {
		r.Use(httpMetricsMiddleware(instruments.HTTPServerDuration))
	}

	r.GET("/health", HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/notifications", h.Post)
	r.GET("/notifications", h.Get)

	return r
}

// httpMetricsMiddleware records HTTP request metrics
func httpMetricsMiddleware(duration metric.Float64Histogram) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration.Record(c.Request.Context(), float64(time.Since(start).Milliseconds()),
			metric.WithAttributes(
				attribute.String("http_method", c.Request.Method),
				attribute.String("http_route", c.FullPath()),
				attribute.String("http_status_code", strconv.Itoa(c.Writer.Status())),
			),
		)
	}
}
