package market

import (
	"context"
	"log/slog"
	"strings"

	"github.com/yahuti/trade-engine/internal/metrics"
	"github.com/yahuti/trade-engine/internal/sim"
	domain "github.com/yahuti/trade-engine/pkg/types"
)

// Fallback decorates an Adapter so that callers always receive a well-formed
// result set: any vendor failure (non-2xx, network error, rejected payload)
// degrades to the sandbox simulation catalog instead of propagating. The
// result's DataSource tag is the only way to tell the two paths apart, and
// downstream consumers must check it rather than assume live data.
type Fallback struct {
	inner Adapter
	log   *slog.Logger
}

// NewFallback wraps an adapter with the simulation fallback policy.
func NewFallback(inner Adapter, log *slog.Logger) *Fallback {
	if log == nil {
		log = slog.Default()
	}
	return &Fallback{inner: inner, log: log}
}

// Vendor implements Adapter.
func (f *Fallback) Vendor() domain.Vendor {
	return f.inner.Vendor()
}

// Search implements Adapter.Search. It never returns an error.
func (f *Fallback) Search(ctx context.Context, q Query) (*Result, error) {
	res, err := f.inner.Search(ctx, q)
	if err == nil {
		return res, nil
	}

	f.log.Warn("vendor search degraded to simulation",
		"vendor", f.inner.Vendor(),
		"keywords", q.Keywords,
		"error", err,
	)
	metrics.SimulationFallbacksTotal.
		WithLabelValues(vendorLabel(f.inner.Vendor())).Inc()

	items := sim.Search(q.Keywords, q.Limit)
	return &Result{
		Items:      items,
		Total:      len(items),
		DataSource: f.simSource(),
	}, nil
}

// Lookup implements Adapter.Lookup. It never returns an error.
func (f *Fallback) Lookup(ctx context.Context, itemID string) (*Result, error) {
	res, err := f.inner.Lookup(ctx, itemID)
	if err == nil {
		return res, nil
	}

	f.log.Warn("vendor lookup degraded to simulation",
		"vendor", f.inner.Vendor(),
		"item_id", itemID,
		"error", err,
	)
	metrics.SimulationFallbacksTotal.
		WithLabelValues(vendorLabel(f.inner.Vendor())).Inc()

	return &Result{
		Items:      []domain.MarketplaceItem{sim.Lookup(itemID)},
		Total:      1,
		DataSource: f.simSource(),
	}, nil
}

func (f *Fallback) simSource() domain.DataSource {
	switch f.inner.Vendor() {
	case domain.VendorG2A:
		return domain.SourceG2ASimulation
	default:
		return domain.SourceEbaySimulation
	}
}

func vendorLabel(v domain.Vendor) string {
	return strings.ToLower(string(v))
}
