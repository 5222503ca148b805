package telemetry

import (
	"context"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// Summary is a point-in-time total of every counter in this package
type Summary struct {
	Refills       int64
	RefillBytes   int64
	Bypasses      int64
	RejectedBytes int64
}

// Recorder pairs a private meter provider with a manual reader so a short
// lived process can read its own totals without an exporter.
type Recorder struct {
	*Instruments
	provider *sdkmetric.MeterProvider
	reader   *sdkmetric.ManualReader
}

// NewRecorder creates instruments backed by an in-process meter provider
func NewRecorder() (*Recorder, error) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	inst, err := New(provider.Meter(ScopeName))
	if err != nil {
		return nil, err
	}

	return &Recorder{
		Instruments: inst,
		provider:    provider,
		reader:      reader,
	}, nil
}

// Summary collects the current totals
func (r *Recorder) Summary(ctx context.Context) (Summary, error) {
	var rm metricdata.ResourceMetrics
	if err := r.reader.Collect(ctx, &rm); err != nil {
		return Summary{}, fmt.Errorf("failed to collect metrics: %w", err)
	}

	var s Summary
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			total := sumInt64(m.Data)
			switch m.Name {
			case RefillsTotal:
				s.Refills = total
			case RefillBytesTotal:
				s.RefillBytes = total
			case BypassesTotal:
				s.Bypasses = total
			case RejectedBytesTotal:
				s.RejectedBytes = total
			}
		}
	}
	return s, nil
}

// Shutdown releases the meter provider
func (r *Recorder) Shutdown(ctx context.Context) error {
	return r.provider.Shutdown(ctx)
}

func sumInt64(data metricdata.Aggregation) int64 {
	sum, ok := data.(metricdata.Sum[int64])
	if !ok {
		return 0
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}
