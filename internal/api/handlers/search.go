package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/yahuti/trade-engine/internal/market"
	domain "github.com/yahuti/trade-engine/pkg/types"
)

const defaultSearchLimit = 20

// SearchHandler handles marketplace search requests across vendors.
type SearchHandler struct {
	adapters map[domain.Vendor]market.Adapter
}

// NewSearchHandler creates a new SearchHandler. adapters maps each vendor
// to its fallback-wrapped search adapter.
func NewSearchHandler(adapters map[domain.Vendor]market.Adapter) *SearchHandler {
	return &SearchHandler{adapters: adapters}
}

// SearchInput is the query surface for the search endpoint. Query is
// validated by hand so an absent parameter maps to a 400, not a schema error.
type SearchInput struct {
	Query    string  `query:"q" doc:"Search keywords" example:"iphone 15 pro"`
	Vendor   string  `query:"vendor" enum:"ebay,g2a," doc:"Marketplace to search (default ebay)" example:"ebay"`
	Category string  `query:"category" doc:"Vendor category ID" example:"9355"`
	MinPrice float64 `query:"min_price" doc:"Minimum price filter" example:"100"`
	MaxPrice float64 `query:"max_price" doc:"Maximum price filter" example:"1500"`
	Sort     string  `query:"sort" doc:"Sort order" example:"price"`
	Limit    int     `query:"limit" doc:"Maximum results to return (default 20)" example:"20"`
}

// SearchOutput is the response body for the search endpoint.
type SearchOutput struct {
	Body struct {
		Success    bool                     `json:"success" doc:"Always true; failures degrade to simulated data"`
		Items      []domain.MarketplaceItem `json:"items" doc:"Matching marketplace items"`
		Total      int                      `json:"total" doc:"Total matching items reported by the vendor"`
		DataSource domain.DataSource        `json:"data_source" doc:"Where the items came from"`
	}
}

// Search runs a keyword search against the requested marketplace.
func (h *SearchHandler) Search(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	if input.Query == "" {
		return nil, huma.Error400BadRequest("missing required parameter: q")
	}

	var vendor domain.Vendor
	switch strings.ToLower(input.Vendor) {
	case "", "ebay":
		vendor = domain.VendorEbay
	case "g2a":
		vendor = domain.VendorG2A
	default:
		return nil, huma.Error400BadRequest("unknown vendor: " + input.Vendor)
	}
	adapter, ok := h.adapters[vendor]
	if !ok {
		return nil, huma.Error400BadRequest("vendor not configured: " + input.Vendor)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	res, err := adapter.Search(ctx, market.Query{
		Keywords: input.Query,
		Category: input.Category,
		MinPrice: input.MinPrice,
		MaxPrice: input.MaxPrice,
		Sort:     input.Sort,
		Limit:    limit,
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("search failed: " + err.Error())
	}

	out := &SearchOutput{}
	out.Body.Success = true
	out.Body.Items = res.Items
	out.Body.Total = res.Total
	out.Body.DataSource = res.DataSource
	return out, nil
}

// RegisterSearchRoutes registers search endpoints with the Huma API.
func RegisterSearchRoutes(api huma.API, h *SearchHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "search-marketplace",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search marketplace listings",
		Description: "Searches the requested marketplace, degrading to simulated data when the vendor is unavailable.",
		Tags:        []string{"market"},
		Errors:      []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, h.Search)
}
