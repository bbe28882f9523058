package market

import (
	"context"
	"fmt"

	"github.com/yahuti/trade-engine/internal/ebay"
	domain "github.com/yahuti/trade-engine/pkg/types"
)

// EbayBrowseAdapter maps the eBay Browse API onto the Adapter contract.
type EbayBrowseAdapter struct {
	client ebay.Client
}

// NewEbayBrowseAdapter creates an adapter over an eBay Browse client.
func NewEbayBrowseAdapter(client ebay.Client) *EbayBrowseAdapter {
	return &EbayBrowseAdapter{client: client}
}

// Vendor implements Adapter.
func (*EbayBrowseAdapter) Vendor() domain.Vendor {
	return domain.VendorEbay
}

// Search implements Adapter.Search against the Browse API.
func (a *EbayBrowseAdapter) Search(ctx context.Context, q Query) (*Result, error) {
	resp, err := a.client.Search(ctx, ebay.SearchRequest{
		Query:      q.Keywords,
		CategoryID: q.Category,
		MinPrice:   q.MinPrice,
		MaxPrice:   q.MaxPrice,
		Sort:       q.Sort,
		Limit:      q.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("browse search: %w", err)
	}

	items, convErr := ebay.ToItems(resp.Items)
	if len(items) == 0 && convErr != nil {
		return nil, fmt.Errorf("browse payload rejected: %w", convErr)
	}

	return &Result{
		Items:      items,
		Total:      resp.Total,
		DataSource: domain.SourceEbayAPI,
	}, nil
}

// Lookup implements Adapter.Lookup against the Browse API item endpoint.
func (a *EbayBrowseAdapter) Lookup(ctx context.Context, itemID string) (*Result, error) {
	summary, err := a.client.GetItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("browse item lookup: %w", err)
	}

	items, convErr := ebay.ToItems([]ebay.ItemSummary{*summary})
	if len(items) == 0 {
		return nil, fmt.Errorf("browse item payload rejected: %w", convErr)
	}

	return &Result{
		Items:      items,
		Total:      1,
		DataSource: domain.SourceEbayAPI,
	}, nil
}

// EbayFindingAdapter maps the legacy eBay Finding API onto the Adapter
// contract. The Finding API has no single-item endpoint, so Lookup always
// reports ErrLookupUnsupported and relies on the fallback layer.
type EbayFindingAdapter struct {
	client *ebay.FindingClient
}

// NewEbayFindingAdapter creates an adapter over an eBay Finding client.
func NewEbayFindingAdapter(client *ebay.FindingClient) *EbayFindingAdapter {
	return &EbayFindingAdapter{client: client}
}

// Vendor implements Adapter.
func (*EbayFindingAdapter) Vendor() domain.Vendor {
	return domain.VendorEbay
}

// Search implements Adapter.Search against the Finding API.
func (a *EbayFindingAdapter) Search(ctx context.Context, q Query) (*Result, error) {
	rawItems, total, err := a.client.FindByKeywords(ctx, ebay.SearchRequest{
		Query:      q.Keywords,
		CategoryID: q.Category,
		MinPrice:   q.MinPrice,
		MaxPrice:   q.MaxPrice,
		Sort:       q.Sort,
		Limit:      q.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("finding search: %w", err)
	}

	items, convErr := ebay.ToItemsFromFinding(rawItems)
	if len(items) == 0 && convErr != nil {
		return nil, fmt.Errorf("finding payload rejected: %w", convErr)
	}

	return &Result{
		Items:      items,
		Total:      total,
		DataSource: domain.SourceEbayFindingAPI,
	}, nil
}

// Lookup implements Adapter.Lookup; the Finding API cannot serve it.
func (*EbayFindingAdapter) Lookup(context.Context, string) (*Result, error) {
	return nil, ErrLookupUnsupported
}
