// Package telemetry exposes pool and sampling activity as OpenTelemetry
// metrics.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// ScopeName is the instrumentation scope of every instrument in this package
const ScopeName = "github.com/eduardolat/uniqid"

// Metric names
const (
	RefillsTotal       = "uniqid_pool_refills_total"
	RefillBytesTotal   = "uniqid_pool_refill_bytes_total"
	BypassesTotal      = "uniqid_pool_bypasses_total"
	RejectedBytesTotal = "uniqid_rejected_bytes_total"
)

// Instruments records generator activity. It satisfies uniqid.Observer.
type Instruments struct {
	refills     metric.Int64Counter
	refillBytes metric.Int64Counter
	bypasses    metric.Int64Counter
	rejected    metric.Int64Counter
}

// New creates the instruments on meter
func New(meter metric.Meter) (*Instruments, error) {
	refills, err := meter.Int64Counter(RefillsTotal,
		metric.WithDescription("Number of times a byte pool was refilled from its source"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", RefillsTotal, err)
	}

	refillBytes, err := meter.Int64Counter(RefillBytesTotal,
		metric.WithDescription("Random bytes read from the source by pool refills"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", RefillBytesTotal, err)
	}

	bypasses, err := meter.Int64Counter(BypassesTotal,
		metric.WithDescription("Requests larger than the pool served directly from the source"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", BypassesTotal, err)
	}

	rejected, err := meter.Int64Counter(RejectedBytesTotal,
		metric.WithDescription("Random bytes discarded to avoid modulo bias"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", RejectedBytesTotal, err)
	}

	return &Instruments{
		refills:     refills,
		refillBytes: refillBytes,
		bypasses:    bypasses,
		rejected:    rejected,
	}, nil
}

// Refilled records a pool refill of n bytes
func (i *Instruments) Refilled(n int) {
	ctx := context.Background()
	i.refills.Add(ctx, 1)
	i.refillBytes.Add(ctx, int64(n))
}

// Bypassed records a request of n bytes that skipped the pool
func (i *Instruments) Bypassed(n int) {
	i.bypasses.Add(context.Background(), 1)
}

// Rejected records n discarded bytes
func (i *Instruments) Rejected(n int) {
	i.rejected.Add(context.Background(), int64(n))
}
