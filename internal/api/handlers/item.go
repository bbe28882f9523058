package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/yahuti/trade-engine/internal/market"
	domain "github.com/yahuti/trade-engine/pkg/types"
)

// ItemHandler handles single item lookups.
type ItemHandler struct {
	adapter market.Adapter
}

// NewItemHandler creates a new ItemHandler over the eBay lookup adapter.
func NewItemHandler(adapter market.Adapter) *ItemHandler {
	return &ItemHandler{adapter: adapter}
}

// ItemInput is the path surface for the item endpoint.
type ItemInput struct {
	ID string `path:"id" doc:"Marketplace item ID" example:"v1|12345|0"`
}

// ItemOutput is the response body for the item endpoint.
type ItemOutput struct {
	Body struct {
		Success    bool                   `json:"success" doc:"Always true; failures degrade to simulated data"`
		Item       domain.MarketplaceItem `json:"item" doc:"The resolved item"`
		DataSource domain.DataSource      `json:"data_source" doc:"Where the item came from"`
	}
}

// GetItem resolves a single item by id.
func (h *ItemHandler) GetItem(ctx context.Context, input *ItemInput) (*ItemOutput, error) {
	res, err := h.adapter.Lookup(ctx, input.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("item lookup failed: " + err.Error())
	}
	if len(res.Items) == 0 {
		return nil, huma.Error404NotFound("item not found: " + input.ID)
	}

	out := &ItemOutput{}
	out.Body.Success = true
	out.Body.Item = res.Items[0]
	out.Body.DataSource = res.DataSource
	return out, nil
}

// RegisterItemRoutes registers the item endpoint with the Huma API.
func RegisterItemRoutes(api huma.API, h *ItemHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-item",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/{id}",
		Summary:     "Look up a marketplace item",
		Description: "Resolves a single item by id, degrading to simulated data when the vendor is unavailable.",
		Tags:        []string{"market"},
		Errors:      []int{http.StatusNotFound, http.StatusInternalServerError},
	}, h.GetItem)
}
