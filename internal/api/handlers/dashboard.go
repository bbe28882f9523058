package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/yahuti/trade-engine/internal/dashboard"
	domain "github.com/yahuti/trade-engine/pkg/types"
)

// DashboardHandler serves the aggregated marketplace overview.
type DashboardHandler struct {
	aggregator *dashboard.Aggregator
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(a *dashboard.Aggregator) *DashboardHandler {
	return &DashboardHandler{aggregator: a}
}

// DashboardOutput is the response body for the dashboard endpoint.
type DashboardOutput struct {
	Body struct {
		Success   bool                   `json:"success" doc:"Always true; total failure serves the demo dataset"`
		Dashboard domain.SearchAggregate `json:"dashboard" doc:"Aggregated marketplace overview"`
	}
}

// GetDashboard builds and returns the dashboard aggregate. It always
// succeeds; if every search fails the demo dataset is served instead.
func (h *DashboardHandler) GetDashboard(ctx context.Context, _ *struct{}) (*DashboardOutput, error) {
	out := &DashboardOutput{}
	out.Body.Success = true
	out.Body.Dashboard = *h.aggregator.Build(ctx)
	return out, nil
}

// RegisterDashboardRoutes registers the dashboard endpoint with the Huma API.
func RegisterDashboardRoutes(api huma.API, h *DashboardHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-dashboard",
		Method:      http.MethodGet,
		Path:        "/api/v1/dashboard",
		Summary:     "Get the marketplace dashboard",
		Description: "Fans out the configured keyword searches and returns aggregate stats. Always returns 200.",
		Tags:        []string{"dashboard"},
	}, h.GetDashboard)
}
