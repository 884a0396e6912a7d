package domain

// Product represents a single catalog entry built from one feed row.
// Values are never mutated once the builder returns them; views re-slice them.
type Product struct {
	ID          int       `json:"id"`                  // Dense 1-based position among accepted rows
	ProductID   string    `json:"productId,omitempty"` // External code from the feed, e.g. "PROD-0910"
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`      // Display form, e.g. "₦12,500"
	PriceValue  int       `json:"priceValue"` // Whole naira, currency stripped
	Variants    []Variant `json:"variants"`
	Category    Category  `json:"category"`
	SameDay     bool      `json:"sameDay"`
	ImageURL    string    `json:"imageUrl,omitempty"`
}

// Variant is a priced sub-option of a product (size, colour, bundle).
type Variant struct {
	Name       string `json:"name"`
	Price      string `json:"price"`
	PriceValue int    `json:"priceValue"`
}

// SearchRequest carries the plain string inputs of a catalog query.
// Empty strings mean "not set".
type SearchRequest struct {
	Query    string `form:"q"`
	Filter   string `form:"filter"`
	Category string `form:"category"`
	Offset   int    `form:"offset"`
	Limit    int    `form:"limit"`
}

// ScoredProduct pairs a product with its search weight.
type ScoredProduct struct {
	Product Product
	Score   float64
}

// ProductView is the presentation form handed to the rendering layer.
type ProductView struct {
	Product
	CategoryEmoji string `json:"categoryEmoji"`
	Badge         Badge  `json:"badge,omitempty"`
}

// CatalogSnapshot is one wholesale load of the feed.
type CatalogSnapshot struct {
	Generation int64
	Products   []Product // Storefront build, prioritized
	Staff      []Product // Staff build, feed order
	Dropped    int       // Rows rejected by the builder
}
