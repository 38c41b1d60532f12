// Package metrics owns the OpenTelemetry meter provider used across the
// application and exposes the collected series in the Prometheus text format.
package metrics

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// Provider bridges an OpenTelemetry meter provider to a Prometheus registry.
type Provider struct {
	// Registry holds the series exported by MeterProvider.
	Registry *prometheus.Registry
	// MeterProvider creates the meters instruments are registered on.
	MeterProvider *sdkmetric.MeterProvider
}

// NewProvider creates a meter provider backed by a private Prometheus registry.
func NewProvider() (*Provider, error) {
	registry := prometheus.NewRegistry()

	exp, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	return &Provider{
		Registry:      registry,
		MeterProvider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)),
	}, nil
}

// WriteText gathers every registered series and writes them to w in the
// Prometheus text exposition format.
func (p *Provider) WriteText(w io.Writer) error {
	families, err := p.Registry.Gather()
	if err != nil {
		return fmt.Errorf("could not gather metrics: %w", err)
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("could not encode metric family %s: %w", mf.GetName(), err)
		}
	}

	return nil
}

// Shutdown flushes and stops the meter provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if err := p.MeterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("could not shutdown meter provider: %w", err)
	}

	return nil
}
