package monitoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestNewInstruments(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	ins, err := NewInstruments(mp.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	attrs := metric.WithAttributes(attribute.String("status", "success"))
	ins.APIRequests.Add(ctx, 2, attrs)
	ins.APIRequestDuration.Record(ctx, 0.25, attrs)
	ins.Orders.Add(ctx, 1, attrs)
	ins.OrderAmount.Record(ctx, 10.95)
	ins.Notifications.Add(ctx, 1)
	ins.HTTPServerDuration.Record(ctx, 12)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	names := map[string]bool{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		names[m.Name] = true
		if m.Name == "msp_api_requests_total" {
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			require.Len(t, sum.DataPoints, 1)
			assert.Equal(t, int64(2), sum.DataPoints[0].Value)
		}
	}

	for _, name := range []string{
		"msp_api_requests_total",
		"msp_api_request_duration_seconds",
		"msp_orders_total",
		"msp_order_amount",
		"msp_notifications_total",
		"http_server_duration_milliseconds",
	} {
		assert.True(t, names[name], name)
	}
}
