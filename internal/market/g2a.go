package market

import (
	"context"
	"fmt"

	"github.com/yahuti/trade-engine/internal/g2a"
	domain "github.com/yahuti/trade-engine/pkg/types"
)

// G2AAdapter maps the G2A Products API onto the Adapter contract.
type G2AAdapter struct {
	client *g2a.ProductsClient
}

// NewG2AAdapter creates an adapter over a G2A products client.
func NewG2AAdapter(client *g2a.ProductsClient) *G2AAdapter {
	return &G2AAdapter{client: client}
}

// Vendor implements Adapter.
func (*G2AAdapter) Vendor() domain.Vendor {
	return domain.VendorG2A
}

// Search implements Adapter.Search against the products catalog. The API is
// page-oriented with no keyword limit parameter, so Limit truncates locally.
func (a *G2AAdapter) Search(ctx context.Context, q Query) (*Result, error) {
	resp, err := a.client.Products(ctx, g2a.ProductsRequest{
		Search:   q.Keywords,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
	})
	if err != nil {
		return nil, fmt.Errorf("g2a products: %w", err)
	}

	items, convErr := g2a.ToItems(resp.Docs)
	if len(items) == 0 && convErr != nil {
		return nil, fmt.Errorf("g2a payload rejected: %w", convErr)
	}

	if q.Limit > 0 && len(items) > q.Limit {
		items = items[:q.Limit]
	}

	return &Result{
		Items:      items,
		Total:      resp.Total,
		DataSource: domain.SourceG2AAPI,
	}, nil
}

// Lookup implements Adapter.Lookup; the export catalog has no item endpoint.
func (*G2AAdapter) Lookup(context.Context, string) (*Result, error) {
	return nil, ErrLookupUnsupported
}
