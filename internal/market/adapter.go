// Package market defines the vendor-agnostic marketplace adapter contract and
// the simulation fallback policy shared by every vendor integration.
package market

import (
	"context"
	"errors"

	domain "github.com/yahuti/trade-engine/pkg/types"
)

// ErrLookupUnsupported is returned by adapters whose vendor API has no
// single-item endpoint.
var ErrLookupUnsupported = errors.New("item lookup not supported by this adapter")

// Query holds vendor-agnostic search parameters.
type Query struct {
	Keywords string
	Category string
	MinPrice float64
	MaxPrice float64
	Sort     string
	Limit    int
}

// Result is a normalized result set tagged with the path that produced it.
type Result struct {
	Items      []domain.MarketplaceItem `json:"items"`
	Total      int                      `json:"total"`
	DataSource domain.DataSource        `json:"data_source"`
}

// Simulated reports whether the result came from the sandbox simulation.
func (r *Result) Simulated() bool {
	return r.DataSource.Simulated()
}

// Adapter maps one vendor API onto the normalized marketplace shape.
type Adapter interface {
	Vendor() domain.Vendor
	Search(ctx context.Context, q Query) (*Result, error)
	Lookup(ctx context.Context, itemID string) (*Result, error)
}
