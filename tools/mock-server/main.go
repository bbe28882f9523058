// Package main implements a mock marketplace API server for local development.
// It serves canned responses from JSON fixtures to simulate the eBay Browse
// API, the eBay OAuth token endpoint, and the G2A Products API without
// requiring real vendor credentials.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

type browseAPIResponse struct {
	ItemSummaries []json.RawMessage `json:"itemSummaries"`
	Total         int               `json:"total"`
	Offset        int               `json:"offset"`
	Limit         int               `json:"limit"`
	Next          string            `json:"next"`
}

type itemSummary struct {
	ItemID string `json:"itemId"`
	Title  string `json:"title"`
}

type g2aProductsResponse struct {
	Docs  []json.RawMessage `json:"docs"`
	Total int               `json:"total"`
	Page  int               `json:"page"`
}

type g2aProduct struct {
	Name string `json:"name"`
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	ebayFixture := flag.String("ebay-fixture", "tools/mock-server/testdata/browse_search.json", "path to eBay Browse search fixture")
	g2aFixture := flag.String("g2a-fixture", "tools/mock-server/testdata/g2a_products.json", "path to G2A products fixture")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	browse, err := loadBrowseFixture(*ebayFixture)
	if err != nil {
		logger.Error("failed to load eBay fixture", "path", *ebayFixture, "error", err)
		os.Exit(1)
	}
	products, err := loadG2AFixture(*g2aFixture)
	if err != nil {
		logger.Error("failed to load G2A fixture", "path", *g2aFixture, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixtures", "ebay_items", len(browse.ItemSummaries), "g2a_products", len(products.Docs))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /identity/v1/oauth2/token", tokenHandler(logger))
	mux.HandleFunc("GET /buy/browse/v1/item_summary/search", searchHandler(logger, browse))
	mux.HandleFunc("GET /buy/browse/v1/item/{id}", itemHandler(logger, browse))
	mux.HandleFunc("GET /v1/products", g2aHandler(logger, products))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock marketplace server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadBrowseFixture(path string) (*browseAPIResponse, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var resp browseAPIResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &resp, nil
}

func loadG2AFixture(path string) (*g2aProductsResponse, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var resp g2aProductsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &resp, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func tokenHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Validate Basic Auth header is present (don't verify creds).
		if _, _, ok := r.BasicAuth(); !ok {
			logger.Warn("token request missing Basic Auth header")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
			json.NewEncoder(w).Encode(map[string]string{
				"error":             "invalid_client",
				"error_description": "client authentication failed",
			})
			return
		}

		grantType := r.FormValue("grant_type")
		resp := map[string]any{
			"access_token": "mock-token-v1-" + strconv.FormatInt(int64(os.Getpid()), 16),
			"expires_in":   7200,
			"token_type":   "Application Access Token",
		}

		// User-token grants also carry a refresh token.
		if grantType == "authorization_code" || grantType == "refresh_token" {
			resp["token_type"] = "User Access Token"
			resp["refresh_token"] = "mock-refresh-v1-" + strconv.FormatInt(int64(os.Getpid()), 16)
			resp["refresh_token_expires_in"] = 47304000
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(resp)
		logger.Info("issued mock token", "grant_type", grantType)
	}
}

func searchHandler(logger *slog.Logger, fixture *browseAPIResponse) http.HandlerFunc {
	// Pre-parse titles for filtering.
	type indexedItem struct {
		raw   json.RawMessage
		title string
	}
	items := make([]indexedItem, 0, len(fixture.ItemSummaries))
	for _, raw := range fixture.ItemSummaries {
		var s itemSummary
		//nolint:errcheck,gosec // fixture data is trusted; title extraction is best-effort
		json.Unmarshal(raw, &s)
		items = append(items, indexedItem{raw: raw, title: strings.ToLower(s.Title)})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.ToLower(r.URL.Query().Get("q"))
		limitStr := r.URL.Query().Get("limit")
		offsetStr := r.URL.Query().Get("offset")

		limit := 50
		if limitStr != "" {
			if v, err := strconv.Atoi(limitStr); err == nil && v > 0 {
				limit = v
			}
		}
		offset := 0
		if offsetStr != "" {
			if v, err := strconv.Atoi(offsetStr); err == nil && v >= 0 {
				offset = v
			}
		}

		// Filter items requiring every query word in the title.
		words := strings.Fields(q)
		var matched []json.RawMessage
		for _, item := range items {
			if titleMatches(item.title, words) {
				matched = append(matched, item.raw)
			}
		}

		total := len(matched)

		// Apply pagination.
		if offset >= len(matched) {
			matched = nil
		} else {
			end := min(offset+limit, len(matched))
			matched = matched[offset:end]
		}

		next := ""
		if offset+limit < total {
			next = fmt.Sprintf("/buy/browse/v1/item_summary/search?q=%s&offset=%d&limit=%d",
				r.URL.Query().Get("q"), offset+limit, limit)
		}

		resp := browseAPIResponse{
			ItemSummaries: matched,
			Total:         total,
			Offset:        offset,
			Limit:         limit,
			Next:          next,
		}

		// Return empty array instead of null when no results.
		if resp.ItemSummaries == nil {
			resp.ItemSummaries = []json.RawMessage{}
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(resp)
		logger.Info("search", "query", q, "matched", total, "returned", len(matched), "offset", offset, "limit", limit)
	}
}

func titleMatches(title string, words []string) bool {
	for _, word := range words {
		if !strings.Contains(title, word) {
			return false
		}
	}
	return true
}

func itemHandler(logger *slog.Logger, fixture *browseAPIResponse) http.HandlerFunc {
	byID := make(map[string]json.RawMessage, len(fixture.ItemSummaries))
	for _, raw := range fixture.ItemSummaries {
		var s itemSummary
		//nolint:errcheck,gosec // fixture data is trusted
		json.Unmarshal(raw, &s)
		if s.ItemID != "" {
			byID[s.ItemID] = raw
		}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		raw, ok := byID[id]
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
			json.NewEncoder(w).Encode(map[string]any{
				"errors": []map[string]any{
					{"errorId": 11001, "message": "The specified item Id was not found."},
				},
			})
			logger.Warn("item not found", "item_id", id)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		w.Write(raw)
		logger.Info("item lookup", "item_id", id)
	}
}

func g2aHandler(logger *slog.Logger, fixture *g2aProductsResponse) http.HandlerFunc {
	const pageSize = 20

	type indexedProduct struct {
		raw  json.RawMessage
		name string
	}
	products := make([]indexedProduct, 0, len(fixture.Docs))
	for _, raw := range fixture.Docs {
		var p g2aProduct
		//nolint:errcheck,gosec // fixture data is trusted
		json.Unmarshal(raw, &p)
		products = append(products, indexedProduct{raw: raw, name: strings.ToLower(p.Name)})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		// G2A's export API authenticates with "hash, secret" in one header.
		if r.Header.Get("Authorization") == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
			json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"})
			logger.Warn("products request missing Authorization header")
			return
		}

		search := strings.ToLower(r.URL.Query().Get("search"))
		page := 1
		if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
			page = v
		}

		words := strings.Fields(search)
		var matched []json.RawMessage
		for _, p := range products {
			if titleMatches(p.name, words) {
				matched = append(matched, p.raw)
			}
		}

		total := len(matched)
		start := (page - 1) * pageSize
		if start >= len(matched) {
			matched = nil
		} else {
			end := min(start+pageSize, len(matched))
			matched = matched[start:end]
		}

		resp := g2aProductsResponse{Docs: matched, Total: total, Page: page}
		if resp.Docs == nil {
			resp.Docs = []json.RawMessage{}
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(resp)
		logger.Info("products", "search", search, "matched", total, "page", page)
	}
}
