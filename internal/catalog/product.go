package catalog

// Product is a single storefront item. The collection is supplied by the
// host (a JSON catalog file for the CLI) and is read-only to the engine.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Subcategory   string   `json:"subcategory,omitempty"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	Description   string   `json:"description,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	InStock       bool     `json:"in_stock"`
}

// RatingValue returns the rating, treating an absent rating as 0.
func (p Product) RatingValue() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// Discounted reports whether the product carries an original (pre-discount)
// price above the current one.
func (p Product) Discounted() bool {
	return p.OriginalPrice != nil && *p.OriginalPrice > p.Price
}

// Category is a browsable product grouping.
type Category struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories,omitempty"`
}
