// Package sim provides the sandbox simulation catalog: deterministic fallback
// data returned when a live vendor call is unavailable. Results are seeded by
// query so the same keyword always yields the same items, which keeps demo
// dashboards stable and tests reproducible.
package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strings"

	domain "github.com/yahuti/trade-engine/pkg/types"
)

// DemoItemID is the item id whose lookup always returns FixedDemoItem.
const DemoItemID = "12345"

// FixedDemoItem returns the canonical demo listing used for item lookups
// against the simulation catalog.
func FixedDemoItem() domain.MarketplaceItem {
	return domain.MarketplaceItem{
		ID:        DemoItemID,
		Title:     "Apple iPhone 15 Pro Max 256GB Natural Titanium Unlocked",
		Price:     domain.Money{Value: 1199.99, Currency: "USD"},
		Condition: "New",
		Category:  "Cell Phones & Smartphones",
		Location:  "Cupertino, CA, US",
		ImageURL:  "https://i.ebayimg.com/images/g/demo/s-l1600.jpg",
		WebURL:    "https://www.ebay.com/itm/12345",
		Seller:    domain.Seller{Username: "yahuti-demo-seller", FeedbackScore: 12873},
	}
}

var simCategories = []string{
	"Cell Phones & Smartphones",
	"Video Game Consoles",
	"Gift Cards & Coupons",
	"Trading Card Games",
	"Headphones",
}

var simConditions = []string{"New", "Open box", "Used", "Refurbished"}

var simLocations = []string{
	"Austin, TX, US",
	"Portland, OR, US",
	"Miami, FL, US",
	"Berlin, DE",
	"London, GB",
}

// Search generates a simulated result set for a keyword query. The generator
// is seeded from the query string, so identical queries produce identical
// items across processes.
func Search(query string, limit int) []domain.MarketplaceItem {
	if limit <= 0 {
		limit = 10
	}

	rng := rand.New(rand.NewPCG(seed(query), 0)) //nolint:gosec // simulation data, not crypto

	items := make([]domain.MarketplaceItem, 0, limit)
	for i := range limit {
		price := 15 + rng.Float64()*1200
		items = append(items, domain.MarketplaceItem{
			ID:        fmt.Sprintf("sim-%d-%d", seed(query)%100000, i),
			Title:     fmt.Sprintf("%s - Simulated Listing %d", title(query), i+1),
			Price:     domain.Money{Value: round2(price), Currency: "USD"},
			Condition: simConditions[rng.IntN(len(simConditions))],
			Category:  simCategories[rng.IntN(len(simCategories))],
			Location:  simLocations[rng.IntN(len(simLocations))],
			ImageURL:  fmt.Sprintf("https://i.ebayimg.com/images/g/sim%d/s-l500.jpg", i),
			WebURL:    fmt.Sprintf("https://www.ebay.com/itm/sim-%d", i),
			Seller: domain.Seller{
				Username:      fmt.Sprintf("sim_seller_%d", rng.IntN(900)+100),
				FeedbackScore: rng.IntN(50000),
			},
		})
	}
	return items
}

// Lookup returns the simulated record for an item id. Id "12345" always maps
// to the fixed iPhone demo record; other ids get a generated listing.
func Lookup(itemID string) domain.MarketplaceItem {
	if itemID == DemoItemID || strings.Contains(itemID, "|"+DemoItemID+"|") {
		return FixedDemoItem()
	}

	rng := rand.New(rand.NewPCG(seed(itemID), 0)) //nolint:gosec // simulation data

	return domain.MarketplaceItem{
		ID:        itemID,
		Title:     fmt.Sprintf("Simulated Item %s", itemID),
		Price:     domain.Money{Value: round2(10 + rng.Float64()*500), Currency: "USD"},
		Condition: simConditions[rng.IntN(len(simConditions))],
		Category:  simCategories[rng.IntN(len(simCategories))],
		Location:  simLocations[rng.IntN(len(simLocations))],
		WebURL:    "https://www.ebay.com/itm/" + itemID,
		Seller: domain.Seller{
			Username:      fmt.Sprintf("sim_seller_%d", rng.IntN(900)+100),
			FeedbackScore: rng.IntN(50000),
		},
	}
}

// DemoDashboard returns the hardcoded dataset served when every dashboard
// search fails. A populated dashboard beats an error screen, but the tag
// keeps it distinguishable from live data.
func DemoDashboard() []domain.MarketplaceItem {
	return []domain.MarketplaceItem{
		FixedDemoItem(),
		{
			ID:        "demo-2",
			Title:     "Sony PlayStation 5 Slim Disc Edition",
			Price:     domain.Money{Value: 449.00, Currency: "USD"},
			Condition: "New",
			Category:  "Video Game Consoles",
			Location:  "Reno, NV, US",
			WebURL:    "https://www.ebay.com/itm/demo-2",
			Seller:    domain.Seller{Username: "console-king", FeedbackScore: 8341},
		},
		{
			ID:        "demo-3",
			Title:     "Steam Gift Card 50 EUR",
			Price:     domain.Money{Value: 48.20, Currency: "EUR"},
			Condition: "New",
			Category:  "Gift Cards & Coupons",
			WebURL:    "https://www.g2a.com/steam-gift-card-50",
			Seller:    domain.Seller{Username: "g2a-marketplace"},
		},
		{
			ID:        "demo-4",
			Title:     "Pokemon Scarlet & Violet Booster Box Sealed",
			Price:     domain.Money{Value: 119.95, Currency: "USD"},
			Condition: "New",
			Category:  "Trading Card Games",
			Location:  "Seattle, WA, US",
			WebURL:    "https://www.ebay.com/itm/demo-4",
			Seller:    domain.Seller{Username: "tcg-vault", FeedbackScore: 22190},
		},
		{
			ID:        "demo-5",
			Title:     "Apple AirPods Pro 2nd Generation USB-C",
			Price:     domain.Money{Value: 189.99, Currency: "USD"},
			Condition: "Open box",
			Category:  "Headphones",
			Location:  "Chicago, IL, US",
			WebURL:    "https://www.ebay.com/itm/demo-5",
			Seller:    domain.Seller{Username: "audio-outlet", FeedbackScore: 5512},
		},
	}
}

func seed(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(s))))
	return h.Sum64()
}

func title(query string) string {
	words := strings.Fields(strings.TrimSpace(query))
	for i, w := range words {
		if len(w) > 1 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		} else {
			words[i] = strings.ToUpper(w)
		}
	}
	if len(words) == 0 {
		return "Marketplace Item"
	}
	return strings.Join(words, " ")
}

func round2(v float64) float64 {
	return float64(int(v*100)) / 100
}
