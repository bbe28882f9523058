package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func loadBrowseTestFixture(t *testing.T) *browseAPIResponse {
	t.Helper()
	path := filepath.Join("testdata", "browse_search.json")
	fixture, err := loadBrowseFixture(path)
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	return fixture
}

func loadG2ATestFixture(t *testing.T) *g2aProductsResponse {
	t.Helper()
	path := filepath.Join("testdata", "g2a_products.json")
	fixture, err := loadG2AFixture(path)
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	return fixture
}

func TestLoadFixtures(t *testing.T) {
	browse := loadBrowseTestFixture(t)
	if len(browse.ItemSummaries) == 0 {
		t.Fatal("expected items in eBay fixture")
	}
	if browse.Total != len(browse.ItemSummaries) {
		t.Errorf("total=%d, want %d", browse.Total, len(browse.ItemSummaries))
	}

	g2a := loadG2ATestFixture(t)
	if len(g2a.Docs) == 0 {
		t.Fatal("expected products in G2A fixture")
	}
}

func TestTokenHandler_AppToken(t *testing.T) {
	handler := tokenHandler(testLogger())
	body := strings.NewReader("grant_type=client_credentials&scope=https%3A%2F%2Fapi.ebay.com%2Foauth%2Fapi_scope")
	req := httptest.NewRequest(http.MethodPost, "/identity/v1/oauth2/token", body)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("app-id", "cert-id")
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["access_token"] == nil || resp["access_token"] == "" {
		t.Error("expected non-empty access_token")
	}
	if resp["token_type"] != "Application Access Token" {
		t.Errorf("token_type=%v, want Application Access Token", resp["token_type"])
	}
	if _, ok := resp["refresh_token"]; ok {
		t.Error("app token must not carry a refresh token")
	}
}

func TestTokenHandler_UserToken(t *testing.T) {
	handler := tokenHandler(testLogger())
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", "mock-code")
	req := httptest.NewRequest(http.MethodPost, "/identity/v1/oauth2/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("app-id", "cert-id")
	w := httptest.NewRecorder()

	handler(w, req)

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["token_type"] != "User Access Token" {
		t.Errorf("token_type=%v, want User Access Token", resp["token_type"])
	}
	if resp["refresh_token"] == nil || resp["refresh_token"] == "" {
		t.Error("expected non-empty refresh_token for authorization_code grant")
	}
}

func TestTokenHandler_MissingAuth(t *testing.T) {
	handler := tokenHandler(testLogger())
	req := httptest.NewRequest(http.MethodPost, "/identity/v1/oauth2/token", http.NoBody)
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusUnauthorized)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["error"] != "invalid_client" {
		t.Errorf("error=%s, want invalid_client", resp["error"])
	}
}

func TestSearchHandler_AllItems(t *testing.T) {
	fixture := loadBrowseTestFixture(t)
	handler := searchHandler(testLogger(), fixture)
	req := httptest.NewRequest(http.MethodGet, "/buy/browse/v1/item_summary/search", http.NoBody)
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var resp browseAPIResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Total != len(fixture.ItemSummaries) {
		t.Errorf("total=%d, want %d", resp.Total, len(fixture.ItemSummaries))
	}
	if len(resp.ItemSummaries) != len(fixture.ItemSummaries) {
		t.Errorf("items=%d, want %d", len(resp.ItemSummaries), len(fixture.ItemSummaries))
	}
}

func TestSearchHandler_QueryFilter(t *testing.T) {
	fixture := loadBrowseTestFixture(t)
	handler := searchHandler(testLogger(), fixture)
	req := httptest.NewRequest(http.MethodGet, "/buy/browse/v1/item_summary/search?q=iphone", http.NoBody)
	w := httptest.NewRecorder()

	handler(w, req)

	var resp browseAPIResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Total == 0 {
		t.Error("expected iphone results")
	}
	if resp.Total >= len(fixture.ItemSummaries) {
		t.Error("expected filter to reduce results")
	}
	for _, raw := range resp.ItemSummaries {
		var item itemSummary
		_ = json.Unmarshal(raw, &item)
		if !strings.Contains(strings.ToLower(item.Title), "iphone") {
			t.Errorf("title %q does not match query", item.Title)
		}
	}
}

func TestSearchHandler_MultiWordQuery(t *testing.T) {
	fixture := loadBrowseTestFixture(t)
	handler := searchHandler(testLogger(), fixture)
	// Words need not be contiguous in the title.
	req := httptest.NewRequest(http.MethodGet, "/buy/browse/v1/item_summary/search?q=playstation+5+console", http.NoBody)
	w := httptest.NewRecorder()

	handler(w, req)

	var resp browseAPIResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("total=%d, want 1", resp.Total)
	}
}

func TestSearchHandler_Pagination(t *testing.T) {
	fixture := loadBrowseTestFixture(t)
	handler := searchHandler(testLogger(), fixture)
	req := httptest.NewRequest(http.MethodGet, "/buy/browse/v1/item_summary/search?limit=3&offset=0", http.NoBody)
	w := httptest.NewRecorder()

	handler(w, req)

	var resp browseAPIResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.ItemSummaries) != 3 {
		t.Errorf("items=%d, want 3", len(resp.ItemSummaries))
	}
	if resp.Total != len(fixture.ItemSummaries) {
		t.Errorf("total=%d, want %d", resp.Total, len(fixture.ItemSummaries))
	}
	if resp.Next == "" {
		t.Error("expected non-empty next for paginated response")
	}
}

func TestSearchHandler_PaginationOffset(t *testing.T) {
	fixture := loadBrowseTestFixture(t)
	handler := searchHandler(testLogger(), fixture)
	total := len(fixture.ItemSummaries)

	req := httptest.NewRequest(http.MethodGet, "/buy/browse/v1/item_summary/search?limit=50&offset=5", http.NoBody)
	w := httptest.NewRecorder()
	handler(w, req)

	var resp browseAPIResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.ItemSummaries) != total-5 {
		t.Errorf("items=%d, want %d", len(resp.ItemSummaries), total-5)
	}
	if resp.Next != "" {
		t.Error("expected empty next when all items returned")
	}
}

func TestSearchHandler_NoResults(t *testing.T) {
	fixture := loadBrowseTestFixture(t)
	handler := searchHandler(testLogger(), fixture)
	req := httptest.NewRequest(http.MethodGet, "/buy/browse/v1/item_summary/search?q=nonexistent_xyz_product", http.NoBody)
	w := httptest.NewRecorder()

	handler(w, req)

	var resp browseAPIResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Total != 0 {
		t.Errorf("total=%d, want 0", resp.Total)
	}
	if resp.ItemSummaries == nil {
		t.Error("expected empty array, got nil")
	}
}

func TestItemHandler_Found(t *testing.T) {
	fixture := loadBrowseTestFixture(t)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /buy/browse/v1/item/{id}", itemHandler(testLogger(), fixture))

	req := httptest.NewRequest(http.MethodGet, "/buy/browse/v1/item/v1%7C110554093852%7C0", http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var item itemSummary
	if err := json.NewDecoder(w.Body).Decode(&item); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if item.ItemID != "v1|110554093852|0" {
		t.Errorf("itemId=%s, want v1|110554093852|0", item.ItemID)
	}
}

func TestItemHandler_NotFound(t *testing.T) {
	fixture := loadBrowseTestFixture(t)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /buy/browse/v1/item/{id}", itemHandler(testLogger(), fixture))

	req := httptest.NewRequest(http.MethodGet, "/buy/browse/v1/item/v1%7C999%7C0", http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestG2AHandler_RequiresAuth(t *testing.T) {
	fixture := loadG2ATestFixture(t)
	handler := g2aHandler(testLogger(), fixture)

	req := httptest.NewRequest(http.MethodGet, "/v1/products", http.NoBody)
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestG2AHandler_SearchFilter(t *testing.T) {
	fixture := loadG2ATestFixture(t)
	handler := g2aHandler(testLogger(), fixture)

	req := httptest.NewRequest(http.MethodGet, "/v1/products?search=steam+gift", http.NoBody)
	req.Header.Set("Authorization", "hash, secret")
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var resp g2aProductsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("total=%d, want 2", resp.Total)
	}
	if resp.Page != 1 {
		t.Errorf("page=%d, want 1", resp.Page)
	}
}

func TestG2AHandler_NoResults(t *testing.T) {
	fixture := loadG2ATestFixture(t)
	handler := g2aHandler(testLogger(), fixture)

	req := httptest.NewRequest(http.MethodGet, "/v1/products?search=nothing_matches_this", http.NoBody)
	req.Header.Set("Authorization", "hash, secret")
	w := httptest.NewRecorder()
	handler(w, req)

	var resp g2aProductsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Total != 0 {
		t.Errorf("total=%d, want 0", resp.Total)
	}
	if resp.Docs == nil {
		t.Error("expected empty array, got nil")
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}
