// Package g2a provides a client for the G2A Products API. G2A uses a static
// app-level hash/secret pair rather than user OAuth.
package g2a

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/yahuti/trade-engine/internal/fetch"
	"github.com/yahuti/trade-engine/internal/metrics"
)

const defaultProductsURL = "https://sandboxapi.g2a.com/v1/products"

// ProductsRequest defines the parameters for a G2A catalog query.
type ProductsRequest struct {
	Search   string
	Page     int
	MinQty   int
	MinPrice float64
	MaxPrice float64
}

// ProductsResponse holds one page of the G2A product catalog.
type ProductsResponse struct {
	Docs  []Product `json:"docs"`
	Total int       `json:"total"`
	Page  int       `json:"page"`
}

// Product is a single G2A catalog entry.
type Product struct {
	ID         json.Number `json:"id"`
	Name       string      `json:"name"`
	Slug       string      `json:"slug"`
	Type       string      `json:"type"`
	Qty        int         `json:"qty"`
	MinPrice   float64     `json:"minPrice"`
	Thumbnail  string      `json:"thumbnail"`
	Platform   string      `json:"platform"`
	Region     string      `json:"region"`
	Categories []Category  `json:"categories"`
}

// Category is a G2A product category.
type Category struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

// ProductsClient queries the G2A Products API.
type ProductsClient struct {
	apiHash     string
	apiSecret   string
	productsURL string
	fetcher     *fetch.Client
}

// ProductsOption configures the ProductsClient.
type ProductsOption func(*ProductsClient)

// WithProductsURL overrides the default products endpoint.
func WithProductsURL(u string) ProductsOption {
	return func(c *ProductsClient) {
		c.productsURL = u
	}
}

// WithProductsHTTPClient overrides the default HTTP client.
func WithProductsHTTPClient(hc *http.Client) ProductsOption {
	return func(c *ProductsClient) {
		c.fetcher = fetch.New(fetch.WithHTTPClient(hc))
	}
}

// NewProductsClient creates a new G2A Products API client.
func NewProductsClient(apiHash, apiSecret string, opts ...ProductsOption) *ProductsClient {
	c := &ProductsClient{
		apiHash:     apiHash,
		apiSecret:   apiSecret,
		productsURL: defaultProductsURL,
		fetcher:     fetch.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Products fetches one catalog page matching the request.
func (c *ProductsClient) Products(
	ctx context.Context,
	req ProductsRequest,
) (*ProductsResponse, error) {
	metrics.VendorAPICallsTotal.WithLabelValues("g2a").Inc()

	// G2A's export API authenticates with "hash, secret" in one header,
	// not a bearer token, so the header is set directly.
	header := http.Header{}
	header.Set("Authorization", c.apiHash+", "+c.apiSecret)
	header.Set("Content-Type", "application/json")

	res := c.fetcher.Do(ctx, fetch.Request{
		URL:    c.buildURL(req),
		Header: header,
		NoAuth: true,
	})
	if res.Err != nil {
		metrics.VendorAPIErrorsTotal.WithLabelValues("g2a").Inc()
		return nil, fmt.Errorf("products request: %w", res.Err)
	}

	var apiResp ProductsResponse
	if err := json.Unmarshal(res.RawBody, &apiResp); err != nil {
		return nil, fmt.Errorf("parsing products response: %w", err)
	}

	return &apiResp, nil
}

func (c *ProductsClient) buildURL(req ProductsRequest) string {
	params := url.Values{}

	page := req.Page
	if page <= 0 {
		page = 1
	}
	params.Set("page", strconv.Itoa(page))

	if req.Search != "" {
		params.Set("search", req.Search)
	}
	if req.MinQty > 0 {
		params.Set("minQty", strconv.Itoa(req.MinQty))
	}
	if req.MinPrice > 0 {
		params.Set("minPriceFrom", fmt.Sprintf("%.2f", req.MinPrice))
	}
	if req.MaxPrice > 0 {
		params.Set("minPriceTo", fmt.Sprintf("%.2f", req.MaxPrice))
	}

	return c.productsURL + "?" + params.Encode()
}
