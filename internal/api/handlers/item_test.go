package handlers_test

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yahuti/trade-engine/internal/api/handlers"
	"github.com/yahuti/trade-engine/internal/market"
	"github.com/yahuti/trade-engine/internal/sim"
	domain "github.com/yahuti/trade-engine/pkg/types"
)

func TestItemHandler_GetItem(t *testing.T) {
	t.Parallel()

	adapter := &fakeAdapter{
		vendor: domain.VendorEbay,
		lookupRes: &market.Result{
			Items:      []domain.MarketplaceItem{searchItem("v1|99|0", 450)},
			Total:      1,
			DataSource: domain.SourceEbayAPI,
		},
	}

	_, api := humatest.New(t)
	handlers.RegisterItemRoutes(api, handlers.NewItemHandler(adapter))

	resp := api.Get("/api/v1/items/v1%7C99%7C0")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"v1|99|0"`)
	assert.Equal(t, "v1|99|0", adapter.lastItemID)
}

func TestItemHandler_SimulatedFallbackRecord(t *testing.T) {
	t.Parallel()

	demo := sim.FixedDemoItem()
	adapter := &fakeAdapter{
		vendor: domain.VendorEbay,
		lookupRes: &market.Result{
			Items:      []domain.MarketplaceItem{demo},
			Total:      1,
			DataSource: domain.SourceEbaySimulation,
		},
	}

	_, api := humatest.New(t)
	handlers.RegisterItemRoutes(api, handlers.NewItemHandler(adapter))

	resp := api.Get("/api/v1/items/12345")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "iPhone 15 Pro Max")
	assert.Contains(t, resp.Body.String(), "1199.99")
	assert.Contains(t, resp.Body.String(), "Simulation")
}

func TestItemHandler_EmptyResultReturns404(t *testing.T) {
	t.Parallel()

	adapter := &fakeAdapter{
		vendor:    domain.VendorEbay,
		lookupRes: &market.Result{DataSource: domain.SourceEbayAPI},
	}

	_, api := humatest.New(t)
	handlers.RegisterItemRoutes(api, handlers.NewItemHandler(adapter))

	resp := api.Get("/api/v1/items/ghost")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
