package client

import (
	"context"
	"net/url"
	"strconv"
	"time"

	domain "github.com/yahuti/trade-engine/pkg/types"
)

// SearchResponse wraps a marketplace search response.
type SearchResponse struct {
	Success    bool                     `json:"success"`
	Items      []domain.MarketplaceItem `json:"items"`
	Total      int                      `json:"total"`
	DataSource domain.DataSource        `json:"data_source"`
}

// SearchParams defines query parameters for marketplace searches.
type SearchParams struct {
	Query    string
	Vendor   string
	Category string
	MinPrice float64
	MaxPrice float64
	Sort     string
	Limit    int
}

// Search runs a keyword search against the API.
func (c *Client) Search(ctx context.Context, params *SearchParams) (*SearchResponse, error) {
	q := url.Values{}
	q.Set("q", params.Query)
	if params.Vendor != "" {
		q.Set("vendor", params.Vendor)
	}
	if params.Category != "" {
		q.Set("category", params.Category)
	}
	if params.MinPrice > 0 {
		q.Set("min_price", strconv.FormatFloat(params.MinPrice, 'f', -1, 64))
	}
	if params.MaxPrice > 0 {
		q.Set("max_price", strconv.FormatFloat(params.MaxPrice, 'f', -1, 64))
	}
	if params.Sort != "" {
		q.Set("sort", params.Sort)
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}

	var resp SearchResponse
	if err := c.get(ctx, "/api/v1/search?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ItemResponse wraps an item lookup response.
type ItemResponse struct {
	Success    bool                   `json:"success"`
	Item       domain.MarketplaceItem `json:"item"`
	DataSource domain.DataSource      `json:"data_source"`
}

// GetItem resolves a single item by id.
func (c *Client) GetItem(ctx context.Context, id string) (*ItemResponse, error) {
	var resp ItemResponse
	if err := c.get(ctx, "/api/v1/items/"+url.PathEscape(id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DashboardResponse wraps the dashboard aggregate response.
type DashboardResponse struct {
	Success   bool                   `json:"success"`
	Dashboard domain.SearchAggregate `json:"dashboard"`
}

// GetDashboard fetches the aggregated marketplace overview.
func (c *Client) GetDashboard(ctx context.Context) (*DashboardResponse, error) {
	var resp DashboardResponse
	if err := c.get(ctx, "/api/v1/dashboard", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SessionResponse wraps the session status response.
type SessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

// GetSession reports the authentication state of the current session.
func (c *Client) GetSession(ctx context.Context) (*SessionResponse, error) {
	var resp SessionResponse
	if err := c.get(ctx, "/api/v1/session", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// QuotaResponse wraps the eBay quota status response.
type QuotaResponse struct {
	DailyLimit int64     `json:"daily_limit"`
	DailyUsed  int64     `json:"daily_used"`
	Remaining  int64     `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
}

// GetQuota fetches the current eBay API quota status.
func (c *Client) GetQuota(ctx context.Context) (*QuotaResponse, error) {
	var resp QuotaResponse
	if err := c.get(ctx, "/api/v1/quota", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
