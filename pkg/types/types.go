// Package domain defines the core business types for the Yahuti trade engine.
package domain

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Vendor identifies a marketplace integration.
type Vendor string

// Vendor constants.
const (
	VendorEbay Vendor = "eBay"
	VendorG2A  Vendor = "G2A"
)

// DataSource tags a result set with the path that produced it, so that
// simulated fallback data is never mistaken for live marketplace data.
type DataSource string

// Data source constants. Live sources are "<Vendor> API"; degraded
// sources carry the "Sandbox Simulation" suffix.
const (
	SourceEbayAPI        DataSource = "eBay API"
	SourceEbayFindingAPI DataSource = "eBay Finding API"
	SourceEbaySimulation DataSource = "eBay Sandbox Simulation"
	SourceG2AAPI         DataSource = "G2A API"
	SourceG2ASimulation  DataSource = "G2A Sandbox Simulation"
	SourceDemoDataset    DataSource = "Demo Dataset Simulation"
)

// Simulated reports whether the source is a fallback rather than a live call.
func (d DataSource) Simulated() bool {
	return strings.Contains(string(d), "Simulation")
}

// Money is an amount in a single currency.
type Money struct {
	Value    float64 `json:"value"    validate:"gte=0"`
	Currency string  `json:"currency" validate:"required,len=3"`
}

// Seller describes the marketplace seller of an item.
type Seller struct {
	Username      string `json:"username"`
	FeedbackScore int    `json:"feedback_score" validate:"gte=0"`
}

// MarketplaceItem is the normalized item shape every vendor adapter
// produces. Constructed per request from a live or simulated vendor
// response; never persisted.
type MarketplaceItem struct {
	ID        string `json:"id"    validate:"required"`
	Title     string `json:"title" validate:"required"`
	Price     Money  `json:"price" validate:"required"`
	Condition string `json:"condition"`
	Category  string `json:"category"`
	Location  string `json:"location,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	WebURL    string `json:"web_url,omitempty"`
	Seller    Seller `json:"seller"`
}

// itemValidator checks converted vendor payloads in one pass, so a
// malformed vendor response surfaces a single clear diagnostic instead of
// silently defaulting every field.
var itemValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate reports whether the item satisfies the normalized contract.
func (m *MarketplaceItem) Validate() error {
	return itemValidator.Struct(m)
}

// SearchAggregate is the per-request dashboard summary computed over the
// surviving keyword searches. Derived, not stored.
type SearchAggregate struct {
	TotalListings     int               `json:"total_listings"`
	AveragePrice      float64           `json:"average_price"`
	CategoryBreakdown map[string]int    `json:"category_breakdown"`
	FeaturedProducts  []MarketplaceItem `json:"featured_products"`
	SearchCategories  []string          `json:"search_categories"`
	DataSource        DataSource        `json:"data_source"`
	GeneratedAt       time.Time         `json:"generated_at"`
}

// Simulated reports whether every contributing search fell back to
// simulated data.
func (a *SearchAggregate) Simulated() bool {
	return a.DataSource.Simulated()
}

// AveragePriceOf computes the mean price over items. Returns 0 for an
// empty slice.
func AveragePriceOf(items []MarketplaceItem) float64 {
	if len(items) == 0 {
		return 0
	}
	var sum float64
	for i := range items {
		sum += items[i].Price.Value
	}
	return sum / float64(len(items))
}

// CategoryCounts tallies items per category. Uncategorized items count
// under "Other".
func CategoryCounts(items []MarketplaceItem) map[string]int {
	counts := make(map[string]int, 8)
	for i := range items {
		cat := items[i].Category
		if cat == "" {
			cat = "Other"
		}
		counts[cat]++
	}
	return counts
}
