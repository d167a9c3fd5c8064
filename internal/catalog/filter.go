package catalog

// Filter narrows a product collection. Every field is independently
// optional; an unset field imposes no constraint. Bounds are not validated
// here: a filter with PriceMin > PriceMax simply matches nothing.
type Filter struct {
	Category    string   `json:"category,omitempty"`
	Subcategory string   `json:"subcategory,omitempty"`
	PriceMin    *float64 `json:"price_min,omitempty"`
	PriceMax    *float64 `json:"price_max,omitempty"`
	InStock     *bool    `json:"in_stock,omitempty"`
	RatingMin   *float64 `json:"rating_min,omitempty"`
}

// IsZero reports whether the filter constrains nothing.
func (f Filter) IsZero() bool {
	return f.Category == "" && f.Subcategory == "" &&
		f.PriceMin == nil && f.PriceMax == nil &&
		f.InStock == nil && f.RatingMin == nil
}

// Matches applies the filter to a single product. Set fields are combined
// with logical AND.
func (f Filter) Matches(p Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Subcategory != "" && p.Subcategory != f.Subcategory {
		return false
	}
	if f.PriceMin != nil && p.Price < *f.PriceMin {
		return false
	}
	if f.PriceMax != nil && p.Price > *f.PriceMax {
		return false
	}
	if f.InStock != nil && p.InStock != *f.InStock {
		return false
	}
	if f.RatingMin != nil && p.RatingValue() < *f.RatingMin {
		return false
	}
	return true
}

// SortKey selects the field results are ordered by.
type SortKey string

const (
	SortByName   SortKey = "name"
	SortByPrice  SortKey = "price"
	SortByRating SortKey = "rating"
	// SortByNewest orders by product ID as a proxy for recency. This only
	// holds for ID schemes that sort lexicographically by creation time;
	// the product contract carries no creation timestamp to do better.
	SortByNewest SortKey = "newest"
)

// Direction is the sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Sort pairs a sort key with a direction. Exactly one sort is active at a
// time.
type Sort struct {
	Key       SortKey   `json:"key"`
	Direction Direction `json:"direction"`
}

// DefaultSort is what the engine uses when the caller does not choose.
func DefaultSort() Sort {
	return Sort{Key: SortByName, Direction: Ascending}
}

// SortKeys returns the valid sort keys in display order.
func SortKeys() []SortKey {
	return []SortKey{SortByName, SortByPrice, SortByRating, SortByNewest}
}

// ValidSortKey reports whether k names a known sort key.
func ValidSortKey(k SortKey) bool {
	for _, v := range SortKeys() {
		if v == k {
			return true
		}
	}
	return false
}
