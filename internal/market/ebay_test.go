package market_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yahuti/trade-engine/internal/ebay"
	"github.com/yahuti/trade-engine/internal/market"
	domain "github.com/yahuti/trade-engine/pkg/types"
)

// fakeEbayClient implements ebay.Client with canned responses.
type fakeEbayClient struct {
	searchResp *ebay.SearchResponse
	searchErr  error
	item       *ebay.ItemSummary
	itemErr    error
}

func (f *fakeEbayClient) Search(context.Context, ebay.SearchRequest) (*ebay.SearchResponse, error) {
	return f.searchResp, f.searchErr
}

func (f *fakeEbayClient) GetItem(context.Context, string) (*ebay.ItemSummary, error) {
	return f.item, f.itemErr
}

func TestEbayBrowseAdapter_Search(t *testing.T) {
	t.Parallel()

	adapter := market.NewEbayBrowseAdapter(&fakeEbayClient{
		searchResp: &ebay.SearchResponse{
			Items: []ebay.ItemSummary{
				{
					ItemID: "v1|1|0",
					Title:  "iPhone 15 Pro",
					Price:  ebay.ItemPrice{Value: "899.00", Currency: "USD"},
				},
			},
			Total: 40,
		},
	})

	res, err := adapter.Search(context.Background(), market.Query{Keywords: "iphone"})
	require.NoError(t, err)
	assert.Equal(t, domain.SourceEbayAPI, res.DataSource)
	assert.Equal(t, 40, res.Total)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "v1|1|0", res.Items[0].ID)
}

func TestEbayBrowseAdapter_SearchError(t *testing.T) {
	t.Parallel()

	adapter := market.NewEbayBrowseAdapter(&fakeEbayClient{
		searchErr: errors.New("status 500"),
	})

	_, err := adapter.Search(context.Background(), market.Query{Keywords: "x"})
	require.Error(t, err)
}

func TestEbayBrowseAdapter_Lookup(t *testing.T) {
	t.Parallel()

	adapter := market.NewEbayBrowseAdapter(&fakeEbayClient{
		item: &ebay.ItemSummary{
			ItemID: "v1|12345|0",
			Title:  "Apple iPhone 15 Pro Max 256GB",
			Price:  ebay.ItemPrice{Value: "1199.99", Currency: "USD"},
		},
	})

	res, err := adapter.Lookup(context.Background(), "v1|12345|0")
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.InDelta(t, 1199.99, res.Items[0].Price.Value, 0.001)
	assert.False(t, res.Simulated())
}

func TestEbayFindingAdapter_LookupUnsupported(t *testing.T) {
	t.Parallel()

	adapter := market.NewEbayFindingAdapter(ebay.NewFindingClient("app"))
	_, err := adapter.Lookup(context.Background(), "1")
	assert.ErrorIs(t, err, market.ErrLookupUnsupported)
}
