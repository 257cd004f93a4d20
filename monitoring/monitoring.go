package monitoring

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"multisafepay-sdk/logging"
)

// Instruments groups the metric instruments recorded by the SDK.
type Instruments struct {
	APIRequests        metric.Int64Counter
	APIRequestDuration metric.Float64Histogram
	Orders             metric.Int64Counter
	OrderAmount        metric.Float64Histogram
	Notifications      metric.Int64Counter
	HTTPServerDuration metric.Float64Histogram
}

// NewInstruments creates the instruments on the given meter.
func NewInstruments(meter metric.Meter) (*Instruments, error) {
	var (
		ins Instruments
		err error
	)

	ins.APIRequests, err = meter.Int64Counter(
		"msp_api_requests_total",
		metric.WithDescription("Total number of requests sent to the MultiSafepay API"),
	)
	if err != nil {
		return nil, err
	}

	ins.APIRequestDuration, err = meter.Float64Histogram(
		"msp_api_request_duration_seconds",
		metric.WithDescription("Duration of MultiSafepay API calls"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	ins.Orders, err = meter.Int64Counter(
		"msp_orders_total",
		metric.WithDescription("Total number of order operations"),
	)
	if err != nil {
		return nil, err
	}

	ins.OrderAmount, err = meter.Float64Histogram(
		"msp_order_amount",
		metric.WithDescription("Order amounts in major currency units"),
	)
	if err != nil {
		return nil, err
	}

	ins.Notifications, err = meter.Int64Counter(
		"msp_notifications_total",
		metric.WithDescription("Total number of payment notifications received"),
	)
	if err != nil {
		return nil, err
	}

	ins.HTTPServerDuration, err = meter.Float64Histogram(
		"http_server_duration_milliseconds",
		metric.WithDescription("HTTP server request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &ins, nil
}

// InitTracer initializes OpenTelemetry tracing
func InitTracer(serviceName, endpoint string) (*sdktrace.TracerProvider, trace.Tracer, error) {
	ctx := context.Background()

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	tracer := tp.Tracer(serviceName)

	logging.Info("Tracing initialized", zap.String("service_name", serviceName))

	return tp, tracer, nil
}

// InitMeter initializes OpenTelemetry metrics with an OTLP exporter and a
// Prometheus reader, and creates the SDK instruments on the new meter.
func InitMeter(serviceName, endpoint string) (*sdkmetric.MeterProvider, *Instruments, error) {
	ctx := context.Background()

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	metricExporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, nil, err
	}

	// Registers with the default prometheus registry served on /metrics.
	promExporter, err := prometheus.New()
	if err != nil {
		return nil, nil, err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithReader(promExporter),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	ins, err := NewInstruments(mp.Meter(serviceName))
	if err != nil {
		return nil, nil, err
	}

	logging.Info("Metrics initialized", zap.String("endpoint", endpoint))

	return mp, ins, nil
}
