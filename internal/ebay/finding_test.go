package ebay_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yahuti/trade-engine/internal/ebay"
)

const findingFixture = `{
	"findItemsByKeywordsResponse": [{
		"ack": ["Success"],
		"searchResult": [{
			"@count": "2",
			"item": [
				{
					"itemId": ["111"],
					"title": ["Steam Gift Card $50"],
					"viewItemURL": ["https://ebay.com/itm/111"],
					"sellingStatus": [{"currentPrice": [{"__value__": "47.99", "@currencyId": "USD"}]}]
				},
				{
					"itemId": ["222"],
					"title": ["Steam Gift Card $100"],
					"viewItemURL": ["https://ebay.com/itm/222"],
					"sellingStatus": [{"currentPrice": [{"__value__": "94.50", "@currencyId": "USD"}]}]
				}
			]
		}],
		"paginationOutput": [{"totalEntries": ["5832"]}]
	}]
}`

func TestFindingClient_FindByKeywords(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "findItemsByKeywords", q.Get("OPERATION-NAME"))
			assert.Equal(t, "test-app-id", q.Get("SECURITY-APPNAME"))
			assert.Equal(t, "JSON", q.Get("RESPONSE-DATA-FORMAT"))
			assert.Equal(t, "steam gift card", q.Get("keywords"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(findingFixture))
		}),
	)
	defer srv.Close()

	client := ebay.NewFindingClient("test-app-id", ebay.WithFindingURL(srv.URL))

	items, total, err := client.FindByKeywords(
		context.Background(),
		ebay.SearchRequest{Query: "steam gift card"},
	)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 5832, total)
}

func TestFindingClient_ItemFilters(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "MinPrice", q.Get("itemFilter(0).name"))
			assert.Equal(t, "10.00", q.Get("itemFilter(0).value"))
			assert.Equal(t, "MaxPrice", q.Get("itemFilter(1).name"))
			assert.Equal(t, "99.00", q.Get("itemFilter(1).value"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(findingFixture))
		}),
	)
	defer srv.Close()

	client := ebay.NewFindingClient("test-app-id", ebay.WithFindingURL(srv.URL))

	_, _, err := client.FindByKeywords(
		context.Background(),
		ebay.SearchRequest{Query: "x", MinPrice: 10, MaxPrice: 99},
	)
	require.NoError(t, err)
}

func TestFindingClient_Failure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		errContain string
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			errContain: "status 500",
		},
		{
			name: "failure ack",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"findItemsByKeywordsResponse": [{"ack": ["Failure"]}]}`))
			},
			errContain: "ack was not Success",
		},
		{
			name: "missing envelope",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{}`))
			},
			errContain: "missing envelope",
		},
		{
			name: "invalid JSON",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`<xml?>`))
			},
			errContain: "parsing finding response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := ebay.NewFindingClient("app", ebay.WithFindingURL(srv.URL))
			_, _, err := client.FindByKeywords(
				context.Background(),
				ebay.SearchRequest{Query: "x"},
			)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContain)
		})
	}
}
