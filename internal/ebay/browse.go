package ebay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/yahuti/trade-engine/internal/metrics"
)

const (
	defaultBrowseURL   = "https://api.ebay.com/buy/browse/v1/item_summary/search"
	defaultItemURL     = "https://api.ebay.com/buy/browse/v1/item/"
	defaultMarketplace = "EBAY_US"
)

// BrowseClient implements Client using the eBay Browse API.
type BrowseClient struct {
	tokens      TokenProvider
	browseURL   string
	itemURL     string
	marketplace string
	client      *http.Client
	rateLimiter *RateLimiter
}

// BrowseOption configures the BrowseClient.
type BrowseOption func(*BrowseClient)

// WithBrowseURL overrides the default Browse API search endpoint.
func WithBrowseURL(u string) BrowseOption {
	return func(c *BrowseClient) {
		c.browseURL = u
	}
}

// WithItemURL overrides the default Browse API item lookup endpoint.
func WithItemURL(u string) BrowseOption {
	return func(c *BrowseClient) {
		c.itemURL = u
	}
}

// WithMarketplace overrides the default marketplace.
func WithMarketplace(m string) BrowseOption {
	return func(c *BrowseClient) {
		c.marketplace = m
	}
}

// WithBrowseHTTPClient overrides the default HTTP client.
func WithBrowseHTTPClient(hc *http.Client) BrowseOption {
	return func(c *BrowseClient) {
		c.client = hc
	}
}

// WithRateLimiter injects a rate limiter that controls per-second and daily
// API call limits. When set, every outbound call goes through Wait() first.
func WithRateLimiter(r *RateLimiter) BrowseOption {
	return func(c *BrowseClient) {
		c.rateLimiter = r
	}
}

// NewBrowseClient creates a new eBay Browse API client.
func NewBrowseClient(tokens TokenProvider, opts ...BrowseOption) *BrowseClient {
	c := &BrowseClient{
		tokens:      tokens,
		browseURL:   defaultBrowseURL,
		itemURL:     defaultItemURL,
		marketplace: defaultMarketplace,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type browseAPIResponse struct {
	ItemSummaries []ItemSummary `json:"itemSummaries"`
	Total         int           `json:"total"`
	Offset        int           `json:"offset"`
	Limit         int           `json:"limit"`
	Next          string        `json:"next"`
}

// Search implements Client.Search by querying the Browse API.
func (c *BrowseClient) Search(
	ctx context.Context,
	req SearchRequest,
) (*SearchResponse, error) {
	body, err := c.call(ctx, c.buildSearchURL(req))
	if err != nil {
		return nil, err
	}

	var apiResp browseAPIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	return &SearchResponse{
		Items:   apiResp.ItemSummaries,
		Total:   apiResp.Total,
		Offset:  apiResp.Offset,
		Limit:   apiResp.Limit,
		HasMore: apiResp.Next != "",
	}, nil
}

// GetItem implements Client.GetItem by fetching a single Browse API item.
// The item ID is the Browse API form, e.g. "v1|123456789|0".
func (c *BrowseClient) GetItem(
	ctx context.Context,
	itemID string,
) (*ItemSummary, error) {
	body, err := c.call(ctx, c.itemURL+url.PathEscape(itemID))
	if err != nil {
		return nil, err
	}

	var item ItemSummary
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, fmt.Errorf("parsing item response: %w", err)
	}

	return &item, nil
}

func (c *BrowseClient) call(ctx context.Context, u string) ([]byte, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrDailyLimitReached) {
				metrics.EbayDailyLimitHits.Inc()
			}
			return nil, fmt.Errorf("rate limit: %w", err)
		}
		metrics.EbayDailyUsage.Set(float64(c.rateLimiter.DailyCount()))
	}
	metrics.VendorAPICallsTotal.WithLabelValues("ebay").Inc()

	token, err := c.tokens.Token(ctx)
	if err != nil {
		metrics.VendorAPIErrorsTotal.WithLabelValues("ebay").Inc()
		return nil, fmt.Errorf("getting auth token: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("X-EBAY-C-MARKETPLACE-ID", c.marketplace)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		metrics.VendorAPIErrorsTotal.WithLabelValues("ebay").Inc()
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.VendorAPIErrorsTotal.WithLabelValues("ebay").Inc()
		return nil, fmt.Errorf(
			"eBay API error (status %d): %s",
			resp.StatusCode,
			string(body),
		)
	}

	return body, nil
}

func (c *BrowseClient) buildSearchURL(req SearchRequest) string {
	params := url.Values{}
	params.Set("q", req.Query)

	if req.CategoryID != "" {
		params.Set("category_ids", req.CategoryID)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	params.Set("limit", strconv.Itoa(limit))

	if req.Offset > 0 {
		params.Set("offset", strconv.Itoa(req.Offset))
	}

	if req.Sort != "" {
		params.Set("sort", req.Sort)
	}

	if f := priceFilter(req.MinPrice, req.MaxPrice); f != "" {
		params.Set("filter", f)
	}

	for k, v := range req.Filters {
		params.Set(k, v)
	}

	return c.browseURL + "?" + params.Encode()
}

// priceFilter renders the Browse API price range filter. The API requires
// priceCurrency alongside any price filter.
func priceFilter(minPrice, maxPrice float64) string {
	switch {
	case minPrice > 0 && maxPrice > 0:
		return fmt.Sprintf("price:[%.2f..%.2f],priceCurrency:USD", minPrice, maxPrice)
	case minPrice > 0:
		return fmt.Sprintf("price:[%.2f],priceCurrency:USD", minPrice)
	case maxPrice > 0:
		return fmt.Sprintf("price:[..%.2f],priceCurrency:USD", maxPrice)
	default:
		return ""
	}
}
