package g2a

import (
	"errors"
	"fmt"

	domain "github.com/yahuti/trade-engine/pkg/types"
)

// g2aStoreURL is the base for product web links; the API only returns slugs.
const g2aStoreURL = "https://www.g2a.com"

// ToItems converts G2A catalog products into normalized marketplace items.
// Digital goods carry no location or per-seller detail; condition is always
// "New" and the marketplace itself stands in as the seller.
func ToItems(products []Product) ([]domain.MarketplaceItem, error) {
	out := make([]domain.MarketplaceItem, 0, len(products))
	var errs []error
	for i := range products {
		item := toItem(&products[i])
		if err := item.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("product %s: %w", products[i].ID.String(), err))
			continue
		}
		out = append(out, item)
	}
	return out, errors.Join(errs...)
}

func toItem(p *Product) domain.MarketplaceItem {
	m := domain.MarketplaceItem{
		ID:        p.ID.String(),
		Title:     p.Name,
		Condition: "New",
		ImageURL:  p.Thumbnail,
		Price: domain.Money{
			Value: p.MinPrice,
			// The export API quotes minPrice in EUR regardless of storefront.
			Currency: "EUR",
		},
		Seller: domain.Seller{Username: "g2a-marketplace"},
	}

	if p.Slug != "" {
		m.WebURL = g2aStoreURL + p.Slug
	}

	if len(p.Categories) > 0 {
		m.Category = p.Categories[0].Name
	} else if p.Platform != "" {
		m.Category = p.Platform
	}

	return m
}
