package metrics_test

import (
	"bytes"
	"context"
	"testing"

	"hbnb/pkg/metrics"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
)

func TestProvider_WriteText(t *testing.T) {
	ctx := context.Background()

	p, err := metrics.NewProvider()
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Shutdown(ctx) })

	meter := p.MeterProvider.Meter("hbnb/test")
	counter, err := meter.Int64Counter("test_requests")
	require.NoError(t, err)
	counter.Add(ctx, 3)

	histogram, err := meter.Float64Histogram("test_latency",
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(metrics.DefaultBuckets...))
	require.NoError(t, err)
	histogram.Record(ctx, 0.2)

	var buf bytes.Buffer
	require.NoError(t, p.WriteText(&buf))

	out := buf.String()
	require.Contains(t, out, "test_requests")
	require.Contains(t, out, "test_latency")
	require.Contains(t, out, `le="0.25"`)
}

func TestDefaultBucketsAscending(t *testing.T) {
	for i := 1; i < len(metrics.DefaultBuckets); i++ {
		require.Less(t, metrics.DefaultBuckets[i-1], metrics.DefaultBuckets[i])
	}
}
