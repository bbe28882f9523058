package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yahuti/trade-engine/internal/api/handlers"
	"github.com/yahuti/trade-engine/internal/market"
	domain "github.com/yahuti/trade-engine/pkg/types"
)

// fakeAdapter implements market.Adapter with scripted responses.
type fakeAdapter struct {
	vendor     domain.Vendor
	searchRes  *market.Result
	searchErr  error
	lookupRes  *market.Result
	lookupErr  error
	lastQuery  market.Query
	lastItemID string
}

func (f *fakeAdapter) Vendor() domain.Vendor { return f.vendor }

func (f *fakeAdapter) Search(_ context.Context, q market.Query) (*market.Result, error) {
	f.lastQuery = q
	return f.searchRes, f.searchErr
}

func (f *fakeAdapter) Lookup(_ context.Context, itemID string) (*market.Result, error) {
	f.lastItemID = itemID
	return f.lookupRes, f.lookupErr
}

func searchItem(id string, price float64) domain.MarketplaceItem {
	return domain.MarketplaceItem{
		ID:       id,
		Title:    "Item " + id,
		Price:    domain.Money{Value: price, Currency: "USD"},
		Category: "Electronics",
	}
}

func TestSearchHandler_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		adapter    *fakeAdapter
		wantStatus int
		wantBody   string
	}{
		{
			name: "valid request returns items",
			path: "/api/v1/search?q=iphone&limit=5",
			adapter: &fakeAdapter{
				vendor: domain.VendorEbay,
				searchRes: &market.Result{
					Items:      []domain.MarketplaceItem{searchItem("1", 899)},
					Total:      42,
					DataSource: domain.SourceEbayAPI,
				},
			},
			wantStatus: http.StatusOK,
			wantBody:   `"total":42`,
		},
		{
			name:       "missing query returns 400",
			path:       "/api/v1/search",
			adapter:    &fakeAdapter{vendor: domain.VendorEbay},
			wantStatus: http.StatusBadRequest,
			wantBody:   `missing required parameter: q`,
		},
		{
			name: "simulated results are tagged",
			path: "/api/v1/search?q=iphone",
			adapter: &fakeAdapter{
				vendor: domain.VendorEbay,
				searchRes: &market.Result{
					Items:      []domain.MarketplaceItem{searchItem("1", 899)},
					Total:      1,
					DataSource: domain.SourceEbaySimulation,
				},
			},
			wantStatus: http.StatusOK,
			wantBody:   `Simulation`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := handlers.NewSearchHandler(map[domain.Vendor]market.Adapter{
				domain.VendorEbay: tt.adapter,
			})

			_, api := humatest.New(t)
			handlers.RegisterSearchRoutes(api, h)

			resp := api.Get(tt.path)
			require.Equal(t, tt.wantStatus, resp.Code)
			if tt.wantBody != "" {
				assert.Contains(t, resp.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestSearchHandler_QueryPlumbing(t *testing.T) {
	t.Parallel()

	adapter := &fakeAdapter{
		vendor: domain.VendorEbay,
		searchRes: &market.Result{
			DataSource: domain.SourceEbayAPI,
		},
	}
	h := handlers.NewSearchHandler(map[domain.Vendor]market.Adapter{
		domain.VendorEbay: adapter,
	})

	_, api := humatest.New(t)
	handlers.RegisterSearchRoutes(api, h)

	resp := api.Get("/api/v1/search?q=iphone&category=9355&min_price=100&max_price=1500&limit=7")
	require.Equal(t, http.StatusOK, resp.Code)

	assert.Equal(t, "iphone", adapter.lastQuery.Keywords)
	assert.Equal(t, "9355", adapter.lastQuery.Category)
	assert.InDelta(t, 100.0, adapter.lastQuery.MinPrice, 0.001)
	assert.InDelta(t, 1500.0, adapter.lastQuery.MaxPrice, 0.001)
	assert.Equal(t, 7, adapter.lastQuery.Limit)
}

func TestSearchHandler_G2AVendor(t *testing.T) {
	t.Parallel()

	g2a := &fakeAdapter{
		vendor: domain.VendorG2A,
		searchRes: &market.Result{
			Items:      []domain.MarketplaceItem{searchItem("g1", 29.99)},
			Total:      1,
			DataSource: domain.SourceG2AAPI,
		},
	}
	h := handlers.NewSearchHandler(map[domain.Vendor]market.Adapter{
		domain.VendorEbay: &fakeAdapter{vendor: domain.VendorEbay},
		domain.VendorG2A:  g2a,
	})

	_, api := humatest.New(t)
	handlers.RegisterSearchRoutes(api, h)

	resp := api.Get("/api/v1/search?q=game+key&vendor=g2a")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "G2A API")
}
