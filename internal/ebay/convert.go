package ebay

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	domain "github.com/yahuti/trade-engine/pkg/types"
)

// ToItems converts Browse API item summaries into normalized marketplace
// items. Optional vendor fields default to zero values; items failing the
// core contract (id, title, price) are dropped and reported in the joined
// error alongside any items that did convert.
func ToItems(items []ItemSummary) ([]domain.MarketplaceItem, error) {
	out := make([]domain.MarketplaceItem, 0, len(items))
	var errs []error
	for i := range items {
		item := toItem(&items[i])
		if err := item.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("item %q: %w", items[i].ItemID, err))
			continue
		}
		out = append(out, item)
	}
	return out, errors.Join(errs...)
}

func toItem(item *ItemSummary) domain.MarketplaceItem {
	m := domain.MarketplaceItem{
		ID:        item.ItemID,
		Title:     item.Title,
		Condition: item.Condition,
		WebURL:    item.ItemWebURL,
		Price: domain.Money{
			Currency: item.Price.Currency,
		},
	}

	// Price arrives as a string; unparseable values stay 0 and fall to
	// validation when currency is also absent.
	if p, err := strconv.ParseFloat(item.Price.Value, 64); err == nil {
		m.Price.Value = p
	}

	if item.Image != nil {
		m.ImageURL = item.Image.ImageURL
	}

	if item.Seller != nil {
		m.Seller.Username = item.Seller.Username
		m.Seller.FeedbackScore = item.Seller.FeedbackScore
	}

	if item.ItemLocation != nil {
		m.Location = joinLocation(
			item.ItemLocation.City,
			item.ItemLocation.StateOrProvince,
			item.ItemLocation.Country,
		)
	}

	if len(item.Categories) > 0 {
		m.Category = item.Categories[0].CategoryName
	}

	return m
}

// ToItemsFromFinding converts legacy Finding API items. Every field in the
// legacy payload is wrapped in an array, so each access defends against
// empty slices.
func ToItemsFromFinding(items []FindingItem) ([]domain.MarketplaceItem, error) {
	out := make([]domain.MarketplaceItem, 0, len(items))
	var errs []error
	for i := range items {
		item := fromFindingItem(&items[i])
		if err := item.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("item %q: %w", first(items[i].ItemID), err))
			continue
		}
		out = append(out, item)
	}
	return out, errors.Join(errs...)
}

func fromFindingItem(item *FindingItem) domain.MarketplaceItem {
	m := domain.MarketplaceItem{
		ID:       first(item.ItemID),
		Title:    first(item.Title),
		ImageURL: first(item.GalleryURL),
		WebURL:   first(item.ViewItemURL),
		Location: first(item.Location),
	}

	if len(item.PrimaryCategory) > 0 {
		m.Category = first(item.PrimaryCategory[0].CategoryName)
	}

	if len(item.Condition) > 0 {
		m.Condition = first(item.Condition[0].ConditionDisplayName)
	}

	if len(item.SellingStatus) > 0 && len(item.SellingStatus[0].CurrentPrice) > 0 {
		price := item.SellingStatus[0].CurrentPrice[0]
		m.Price.Currency = price.CurrencyID
		if v, err := strconv.ParseFloat(price.Value, 64); err == nil {
			m.Price.Value = v
		}
	}

	if len(item.SellerInfo) > 0 {
		m.Seller.Username = first(item.SellerInfo[0].SellerUserName)
		if fb, err := strconv.Atoi(first(item.SellerInfo[0].FeedbackScore)); err == nil {
			m.Seller.FeedbackScore = fb
		}
	}

	return m
}

func joinLocation(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}

func first(ss []string) string {
	if len(ss) == 0 {
		return ""
	}
	return strings.TrimSpace(ss[0])
}
