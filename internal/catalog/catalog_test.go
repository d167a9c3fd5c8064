package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestFilterMatches(t *testing.T) {
	product := Product{
		ID: "p1", Name: "Vitamin C Serum", Category: "Skin care",
		Subcategory: "Serums", Price: 34.5, Rating: floatPtr(4.8), InStock: true,
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"zero filter matches everything", Filter{}, true},
		{"category match", Filter{Category: "Skin care"}, true},
		{"category mismatch", Filter{Category: "Make Up"}, false},
		{"subcategory match", Filter{Subcategory: "Serums"}, true},
		{"subcategory mismatch", Filter{Subcategory: "Masks"}, false},
		{"price within bounds", Filter{PriceMin: floatPtr(30), PriceMax: floatPtr(40)}, true},
		{"price below min", Filter{PriceMin: floatPtr(35)}, false},
		{"price above max", Filter{PriceMax: floatPtr(30)}, false},
		{"price on the boundary", Filter{PriceMin: floatPtr(34.5), PriceMax: floatPtr(34.5)}, true},
		{"inverted bounds match nothing", Filter{PriceMin: floatPtr(40), PriceMax: floatPtr(30)}, false},
		{"in stock required", Filter{InStock: boolPtr(true)}, true},
		{"out of stock required", Filter{InStock: boolPtr(false)}, false},
		{"rating above threshold", Filter{RatingMin: floatPtr(4.5)}, true},
		{"rating below threshold", Filter{RatingMin: floatPtr(4.9)}, false},
		{"fields combine with AND", Filter{Category: "Skin care", PriceMax: floatPtr(30)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(product); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterRatingTreatsMissingAsZero(t *testing.T) {
	unrated := Product{ID: "p2", Name: "Lip Balm", Price: 12}
	f := Filter{RatingMin: floatPtr(0.1)}
	if f.Matches(unrated) {
		t.Error("Unrated product should fail a rating filter")
	}
	if !(Filter{}).Matches(unrated) {
		t.Error("Unrated product should pass without a rating filter")
	}
}

func TestFilterIsZero(t *testing.T) {
	if !(Filter{}).IsZero() {
		t.Error("Empty filter should be zero")
	}
	if (Filter{Category: "Skin care"}).IsZero() {
		t.Error("Filter with a category is not zero")
	}
	if (Filter{InStock: boolPtr(false)}).IsZero() {
		t.Error("A set pointer field is a constraint even when false")
	}
}

func TestValidSortKey(t *testing.T) {
	for _, k := range SortKeys() {
		if !ValidSortKey(k) {
			t.Errorf("Expected %q to be valid", k)
		}
	}
	if ValidSortKey("random") {
		t.Error("Unknown key should be invalid")
	}
	if ValidSortKey("") {
		t.Error("Empty key should be invalid")
	}
}

func TestProductHelpers(t *testing.T) {
	p := Product{Price: 19.99}
	if p.RatingValue() != 0 {
		t.Errorf("Missing rating should read as 0, got %v", p.RatingValue())
	}
	if p.Discounted() {
		t.Error("No original price means no discount")
	}

	p.OriginalPrice = floatPtr(24.99)
	if !p.Discounted() {
		t.Error("Higher original price means discounted")
	}

	p.OriginalPrice = floatPtr(19.99)
	if p.Discounted() {
		t.Error("Equal original price is not a discount")
	}
}

func TestDisplayPrice(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "$0.00"},
		{24.99, "$24.99"},
		{24.9, "$24.90"},
		{1234.56, "$1,234.56"},
		{1234567.8, "$1,234,567.80"},
		{999.999, "$1,000.00"},
		{-24.99, "-$24.99"},
	}
	for _, tt := range tests {
		if got := DisplayPrice(tt.amount); got != tt.want {
			t.Errorf("DisplayPrice(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestDemoCatalog(t *testing.T) {
	c := Demo()

	if len(c.Products) == 0 {
		t.Fatal("Demo catalog has no products")
	}
	if len(c.Categories) == 0 {
		t.Fatal("Demo catalog has no categories")
	}

	seen := make(map[string]bool)
	for _, p := range c.Products {
		if p.ID == "" {
			t.Errorf("Product %q has no ID", p.Name)
		}
		if seen[p.ID] {
			t.Errorf("Duplicate product ID %q", p.ID)
		}
		seen[p.ID] = true
	}

	names := c.CategoryNames()
	if len(names) != len(c.Categories) {
		t.Errorf("Expected %d category names, got %d", len(c.Categories), len(names))
	}
}

func TestLoad(t *testing.T) {
	t.Run("generates missing IDs", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		data := `{
			"categories": [{"id": "c1", "name": "Make Up"}],
			"products": [
				{"name": "Lip Liner", "category": "Make Up", "price": 9.99},
				{"id": "p1", "name": "Lipstick", "category": "Make Up", "price": 24.99}
			]
		}`
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}

		c, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if len(c.Products) != 2 {
			t.Fatalf("Expected 2 products, got %d", len(c.Products))
		}
		if c.Products[0].ID == "" {
			t.Error("Expected a generated ID for the first product")
		}
		if c.Products[1].ID != "p1" {
			t.Errorf("Existing ID should be preserved, got %q", c.Products[1].ID)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
			t.Error("Expected an error for a missing file")
		}
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Error("Expected an error for malformed JSON")
		}
	})
}
