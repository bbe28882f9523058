package ebay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/yahuti/trade-engine/internal/metrics"
)

const (
	defaultFindingURL = "https://svcs.ebay.com/services/search/FindingService/v1"

	findingOperation = "findItemsByKeywords"
	findingVersion   = "1.0.0"
)

// FindingClient queries the legacy eBay Finding API. Unlike the Browse API
// it authenticates with the app ID alone, so it works without any user or
// app OAuth token. Responses use the legacy everything-is-an-array JSON
// rendering of the old XML service.
type FindingClient struct {
	appID      string
	findingURL string
	client     *http.Client
}

// FindingOption configures the FindingClient.
type FindingOption func(*FindingClient)

// WithFindingURL overrides the default Finding API endpoint.
func WithFindingURL(u string) FindingOption {
	return func(c *FindingClient) {
		c.findingURL = u
	}
}

// WithFindingHTTPClient overrides the default HTTP client.
func WithFindingHTTPClient(hc *http.Client) FindingOption {
	return func(c *FindingClient) {
		c.client = hc
	}
}

// NewFindingClient creates a new Finding API client.
func NewFindingClient(appID string, opts ...FindingOption) *FindingClient {
	c := &FindingClient{
		appID:      appID,
		findingURL: defaultFindingURL,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FindByKeywords searches the Finding API and returns the raw legacy items
// plus the reported total.
func (c *FindingClient) FindByKeywords(
	ctx context.Context,
	req SearchRequest,
) ([]FindingItem, int, error) {
	metrics.VendorAPICallsTotal.WithLabelValues("ebay").Inc()

	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.buildURL(req), http.NoBody,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("creating HTTP request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		metrics.VendorAPIErrorsTotal.WithLabelValues("ebay").Inc()
		return nil, 0, fmt.Errorf("executing finding request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.VendorAPIErrorsTotal.WithLabelValues("ebay").Inc()
		return nil, 0, fmt.Errorf(
			"Finding API error (status %d): %s",
			resp.StatusCode,
			string(body),
		)
	}

	var apiResp findingResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, 0, fmt.Errorf("parsing finding response: %w", err)
	}

	if len(apiResp.FindItemsByKeywordsResponse) == 0 {
		return nil, 0, fmt.Errorf("finding response missing envelope")
	}

	result := apiResp.FindItemsByKeywordsResponse[0]
	if len(result.Ack) == 0 || result.Ack[0] != "Success" {
		metrics.VendorAPIErrorsTotal.WithLabelValues("ebay").Inc()
		return nil, 0, fmt.Errorf("finding ack was not Success: %v", result.Ack)
	}

	var items []FindingItem
	if len(result.SearchResult) > 0 {
		items = result.SearchResult[0].Item
	}

	total := 0
	if len(result.Pagination) > 0 && len(result.Pagination[0].TotalEntries) > 0 {
		total, _ = strconv.Atoi(result.Pagination[0].TotalEntries[0]) //nolint:errcheck // zero on parse failure
	}

	return items, total, nil
}

func (c *FindingClient) buildURL(req SearchRequest) string {
	params := url.Values{}
	params.Set("OPERATION-NAME", findingOperation)
	params.Set("SERVICE-VERSION", findingVersion)
	params.Set("SECURITY-APPNAME", c.appID)
	params.Set("RESPONSE-DATA-FORMAT", "JSON")
	params.Set("REST-PAYLOAD", "")
	params.Set("keywords", req.Query)

	limit := req.Limit
	if limit <= 0 {
		limit = 20
	}
	params.Set("paginationInput.entriesPerPage", strconv.Itoa(limit))

	if req.CategoryID != "" {
		params.Set("categoryId", req.CategoryID)
	}

	idx := 0
	if req.MinPrice > 0 {
		setItemFilter(params, idx, "MinPrice", fmt.Sprintf("%.2f", req.MinPrice))
		idx++
	}
	if req.MaxPrice > 0 {
		setItemFilter(params, idx, "MaxPrice", fmt.Sprintf("%.2f", req.MaxPrice))
	}

	if req.Sort != "" {
		params.Set("sortOrder", req.Sort)
	}

	return c.findingURL + "?" + params.Encode()
}

func setItemFilter(params url.Values, idx int, name, value string) {
	prefix := "itemFilter(" + strconv.Itoa(idx) + ")"
	params.Set(prefix+".name", name)
	params.Set(prefix+".value", value)
}
