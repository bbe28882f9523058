// Package ebay provides eBay Browse and Finding API clients plus the OAuth
// token machinery, abstracted behind interfaces for testability.
package ebay

import (
	"context"
)

// SearchRequest defines the parameters for an eBay search.
type SearchRequest struct {
	Query      string
	CategoryID string
	MinPrice   float64
	MaxPrice   float64
	Limit      int
	Offset     int
	Sort       string // "newlyListed", "price"
	Filters    map[string]string
}

// SearchResponse holds the results of an eBay search.
type SearchResponse struct {
	Items   []ItemSummary
	Total   int
	Offset  int
	Limit   int
	HasMore bool
}

// Client defines the interface for interacting with the eBay API.
type Client interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
	GetItem(ctx context.Context, itemID string) (*ItemSummary, error)
}

// TokenProvider defines the interface for obtaining OAuth2 tokens.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}
