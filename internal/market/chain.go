package market

import (
	"context"
	"errors"
	"log/slog"

	domain "github.com/yahuti/trade-engine/pkg/types"
)

// Chain tries a primary adapter first and degrades to a secondary one when
// the primary fails. It is used to pair the eBay Browse API with the legacy
// Finding API so a Browse outage still serves live data. The secondary's
// DataSource tag is preserved so callers can see which API answered.
type Chain struct {
	primary   Adapter
	secondary Adapter
	log       *slog.Logger
}

// NewChain creates a Chain. Both adapters must report the same vendor.
func NewChain(primary, secondary Adapter, log *slog.Logger) *Chain {
	if log == nil {
		log = slog.Default()
	}
	return &Chain{primary: primary, secondary: secondary, log: log}
}

// Vendor implements Adapter.
func (c *Chain) Vendor() domain.Vendor {
	return c.primary.Vendor()
}

// Search implements Adapter.Search.
func (c *Chain) Search(ctx context.Context, q Query) (*Result, error) {
	res, err := c.primary.Search(ctx, q)
	if err == nil {
		return res, nil
	}

	c.log.Warn("primary search failed, trying secondary",
		"vendor", c.primary.Vendor(),
		"keywords", q.Keywords,
		"error", err,
	)
	return c.secondary.Search(ctx, q)
}

// Lookup implements Adapter.Lookup. When the secondary cannot serve lookups
// at all, the primary's error is returned so the caller sees the real cause.
func (c *Chain) Lookup(ctx context.Context, itemID string) (*Result, error) {
	res, err := c.primary.Lookup(ctx, itemID)
	if err == nil {
		return res, nil
	}

	c.log.Warn("primary lookup failed, trying secondary",
		"vendor", c.primary.Vendor(),
		"item_id", itemID,
		"error", err,
	)
	res, secErr := c.secondary.Lookup(ctx, itemID)
	if secErr != nil {
		if errors.Is(secErr, ErrLookupUnsupported) {
			return nil, err
		}
		return nil, secErr
	}
	return res, nil
}
