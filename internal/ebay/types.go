package ebay

// ItemSummary represents a single item from the eBay Browse API search response.
type ItemSummary struct {
	ItemID          string           `json:"itemId"`
	Title           string           `json:"title"`
	Price           ItemPrice        `json:"price"`
	ItemWebURL      string           `json:"itemWebUrl"`
	Image           *ItemImage       `json:"image,omitempty"`
	Seller          *ItemSeller      `json:"seller,omitempty"`
	Condition       string           `json:"condition"`
	ConditionID     string           `json:"conditionId"`
	BuyingOptions   []string         `json:"buyingOptions"`
	ItemLocation    *ItemLocation    `json:"itemLocation,omitempty"`
	ShippingOptions []ShippingOption `json:"shippingOptions,omitempty"`
	Categories      []ItemCategory   `json:"categories,omitempty"`
}

// ItemPrice holds eBay price information. Value arrives as a string.
type ItemPrice struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// ItemImage holds eBay image information.
type ItemImage struct {
	ImageURL string `json:"imageUrl"`
}

// ItemSeller holds eBay seller information.
type ItemSeller struct {
	Username           string `json:"username"`
	FeedbackScore      int    `json:"feedbackScore"`
	FeedbackPercentage string `json:"feedbackPercentage"`
}

// ItemLocation holds the coarse item location exposed by the Browse API.
type ItemLocation struct {
	City            string `json:"city"`
	StateOrProvince string `json:"stateOrProvince"`
	Country         string `json:"country"`
}

// ShippingOption holds eBay shipping information.
type ShippingOption struct {
	ShippingCost *ItemPrice `json:"shippingCost,omitempty"`
}

// ItemCategory holds eBay category information.
type ItemCategory struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

// findingResponse models the legacy Finding API envelope: every field is an
// array, even scalars.
type findingResponse struct {
	FindItemsByKeywordsResponse []findingResult `json:"findItemsByKeywordsResponse"`
}

type findingResult struct {
	Ack          []string            `json:"ack"`
	SearchResult []findingItemList   `json:"searchResult"`
	Pagination   []findingPagination `json:"paginationOutput"`
}

type findingItemList struct {
	Count string        `json:"@count"`
	Item  []FindingItem `json:"item"`
}

type findingPagination struct {
	TotalEntries []string `json:"totalEntries"`
}

// FindingItem represents a single item from the legacy Finding API.
type FindingItem struct {
	ItemID          []string               `json:"itemId"`
	Title           []string               `json:"title"`
	GalleryURL      []string               `json:"galleryURL"`
	ViewItemURL     []string               `json:"viewItemURL"`
	Location        []string               `json:"location"`
	PrimaryCategory []findingCategory      `json:"primaryCategory"`
	SellingStatus   []findingSellingStatus `json:"sellingStatus"`
	SellerInfo      []findingSellerInfo    `json:"sellerInfo"`
	Condition       []findingCondition     `json:"condition"`
}

type findingCategory struct {
	CategoryID   []string `json:"categoryId"`
	CategoryName []string `json:"categoryName"`
}

type findingSellingStatus struct {
	CurrentPrice []findingPrice `json:"currentPrice"`
}

type findingPrice struct {
	Value      string `json:"__value__"`
	CurrencyID string `json:"@currencyId"`
}

type findingSellerInfo struct {
	SellerUserName []string `json:"sellerUserName"`
	FeedbackScore  []string `json:"feedbackScore"`
}

type findingCondition struct {
	ConditionDisplayName []string `json:"conditionDisplayName"`
}
