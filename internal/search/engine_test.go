package search

import (
	"testing"

	"golang.org/x/text/language"

	"github.com/mgavril/shopscope/internal/catalog"
)

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func testProducts() []catalog.Product {
	return []catalog.Product{
		{
			ID: "p001", Name: "Velvet Matte Lipstick", Category: "Make Up",
			Subcategory: "Lips", Price: 24.99, Rating: floatPtr(4.6),
			Tags: []string{"matte", "vegan"}, InStock: true,
		},
		{
			ID: "p002", Name: "Hydrating Night Cream", Category: "Skin care",
			Subcategory: "Moisturizers", Price: 28.99, Rating: floatPtr(4.4),
			Description: "Rich overnight moisturizer", InStock: true,
		},
		{
			ID: "p003", Name: "Vitamin C Serum", Category: "Skin care",
			Subcategory: "Serums", Price: 34.5, Rating: floatPtr(4.8), InStock: false,
		},
	}
}

func newTestEngine() *Engine {
	return NewEngine(language.English)
}

func TestEvaluateQuery(t *testing.T) {
	engine := newTestEngine()
	products := testProducts()

	t.Run("matches name substring", func(t *testing.T) {
		results := engine.Evaluate(products, "lipstick", catalog.Filter{}, catalog.DefaultSort(), -1)
		if len(results) != 1 {
			t.Fatalf("Expected 1 result for 'lipstick', got %d", len(results))
		}
		if results[0].Name != "Velvet Matte Lipstick" {
			t.Errorf("Expected the lipstick, got %q", results[0].Name)
		}
	})

	t.Run("match is case-insensitive", func(t *testing.T) {
		for _, q := range []string{"LIPSTICK", "Velvet Matte Lipstick", "velvet matte lipstick"} {
			results := engine.Evaluate(products, q, catalog.Filter{}, catalog.DefaultSort(), -1)
			if len(results) != 1 {
				t.Errorf("Expected 1 result for %q, got %d", q, len(results))
			}
		}
	})

	t.Run("matches tags and description", func(t *testing.T) {
		results := engine.Evaluate(products, "vegan", catalog.Filter{}, catalog.DefaultSort(), -1)
		if len(results) != 1 || results[0].ID != "p001" {
			t.Errorf("Expected tag match on p001, got %v", results)
		}
		results = engine.Evaluate(products, "overnight", catalog.Filter{}, catalog.DefaultSort(), -1)
		if len(results) != 1 || results[0].ID != "p002" {
			t.Errorf("Expected description match on p002, got %v", results)
		}
	})

	t.Run("empty and whitespace query match everything", func(t *testing.T) {
		for _, q := range []string{"", "   "} {
			results := engine.Evaluate(products, q, catalog.Filter{}, catalog.DefaultSort(), -1)
			if len(results) != len(products) {
				t.Errorf("Expected all %d products for query %q, got %d", len(products), q, len(results))
			}
		}
	})

	t.Run("no match yields empty", func(t *testing.T) {
		results := engine.Evaluate(products, "snowboard", catalog.Filter{}, catalog.DefaultSort(), -1)
		if len(results) != 0 {
			t.Errorf("Expected 0 results, got %d", len(results))
		}
	})
}

func TestEvaluateFilter(t *testing.T) {
	engine := newTestEngine()
	products := testProducts()

	t.Run("category filter with empty query", func(t *testing.T) {
		f := catalog.Filter{Category: "Skin care"}
		results := engine.Evaluate(products, "", f, catalog.DefaultSort(), -1)
		if len(results) != 2 {
			t.Fatalf("Expected 2 skin care products, got %d", len(results))
		}
		for _, p := range results {
			if p.Category != "Skin care" {
				t.Errorf("Unexpected category %q", p.Category)
			}
		}
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		f := catalog.Filter{Category: "Skin care", InStock: boolPtr(true)}
		results := engine.Evaluate(products, "", f, catalog.DefaultSort(), -1)
		if len(results) != 1 || results[0].ID != "p002" {
			t.Errorf("Expected only the in-stock night cream, got %v", results)
		}
	})

	t.Run("price bounds", func(t *testing.T) {
		f := catalog.Filter{PriceMin: floatPtr(25), PriceMax: floatPtr(30)}
		results := engine.Evaluate(products, "", f, catalog.DefaultSort(), -1)
		if len(results) != 1 || results[0].ID != "p002" {
			t.Errorf("Expected only p002 in [25,30], got %v", results)
		}
	})

	t.Run("inverted bounds silently match nothing", func(t *testing.T) {
		f := catalog.Filter{PriceMin: floatPtr(30), PriceMax: floatPtr(25)}
		results := engine.Evaluate(products, "", f, catalog.DefaultSort(), -1)
		if len(results) != 0 {
			t.Errorf("Expected 0 results for min > max, got %d", len(results))
		}
	})

	t.Run("missing rating counts as zero", func(t *testing.T) {
		unrated := append(testProducts(), catalog.Product{ID: "p004", Name: "Lip Balm", Category: "Make Up", Price: 12})
		f := catalog.Filter{RatingMin: floatPtr(4.0)}
		results := engine.Evaluate(unrated, "", f, catalog.DefaultSort(), -1)
		for _, p := range results {
			if p.ID == "p004" {
				t.Error("Unrated product should not pass a rating filter")
			}
		}
		if len(results) != 3 {
			t.Errorf("Expected 3 rated products, got %d", len(results))
		}
	})

	t.Run("more restrictive filter never grows the result set", func(t *testing.T) {
		loose := catalog.Filter{Category: "Skin care"}
		tight := catalog.Filter{Category: "Skin care", InStock: boolPtr(true), RatingMin: floatPtr(4.5)}
		nLoose := len(engine.Evaluate(products, "", loose, catalog.DefaultSort(), -1))
		nTight := len(engine.Evaluate(products, "", tight, catalog.DefaultSort(), -1))
		if nTight > nLoose {
			t.Errorf("Tighter filter returned more results: %d > %d", nTight, nLoose)
		}
	})
}

func TestEvaluateSort(t *testing.T) {
	engine := newTestEngine()
	products := testProducts()

	t.Run("price descending", func(t *testing.T) {
		s := catalog.Sort{Key: catalog.SortByPrice, Direction: catalog.Descending}
		results := engine.Evaluate(products, "", catalog.Filter{}, s, -1)
		for i := 1; i < len(results); i++ {
			if results[i].Price > results[i-1].Price {
				t.Fatalf("Prices not descending: %v before %v", results[i-1].Price, results[i].Price)
			}
		}
	})

	t.Run("reversing direction reverses distinct prices", func(t *testing.T) {
		asc := engine.Evaluate(products, "", catalog.Filter{}, catalog.Sort{Key: catalog.SortByPrice, Direction: catalog.Ascending}, -1)
		desc := engine.Evaluate(products, "", catalog.Filter{}, catalog.Sort{Key: catalog.SortByPrice, Direction: catalog.Descending}, -1)
		for i := range asc {
			if asc[i].ID != desc[len(desc)-1-i].ID {
				t.Fatalf("Descending order is not the reverse of ascending at index %d", i)
			}
		}
	})

	t.Run("ties keep collection order", func(t *testing.T) {
		tied := []catalog.Product{
			{ID: "a", Name: "First", Price: 10},
			{ID: "b", Name: "Second", Price: 10},
			{ID: "c", Name: "Third", Price: 10},
		}
		results := engine.Evaluate(tied, "", catalog.Filter{}, catalog.Sort{Key: catalog.SortByPrice, Direction: catalog.Ascending}, -1)
		if results[0].ID != "a" || results[1].ID != "b" || results[2].ID != "c" {
			t.Errorf("Equal prices should keep collection order, got %v %v %v",
				results[0].ID, results[1].ID, results[2].ID)
		}
	})

	t.Run("name sort is locale aware", func(t *testing.T) {
		named := []catalog.Product{
			{ID: "1", Name: "zinc cleanser"},
			{ID: "2", Name: "Apple toner"},
			{ID: "3", Name: "émollient balm"},
		}
		results := engine.Evaluate(named, "", catalog.Filter{}, catalog.Sort{Key: catalog.SortByName, Direction: catalog.Ascending}, -1)
		if results[0].ID != "2" || results[1].ID != "3" || results[2].ID != "1" {
			t.Errorf("Expected Apple, émollient, zinc; got %v %v %v",
				results[0].Name, results[1].Name, results[2].Name)
		}
	})

	t.Run("newest uses the ID ordering", func(t *testing.T) {
		s := catalog.Sort{Key: catalog.SortByNewest, Direction: catalog.Descending}
		results := engine.Evaluate(products, "", catalog.Filter{}, s, -1)
		if results[0].ID != "p003" {
			t.Errorf("Expected p003 first, got %s", results[0].ID)
		}
	})
}

func TestEvaluateLimit(t *testing.T) {
	engine := newTestEngine()
	products := testProducts()

	results := engine.Evaluate(products, "", catalog.Filter{}, catalog.DefaultSort(), 2)
	if len(results) != 2 {
		t.Errorf("Expected limit to truncate to 2, got %d", len(results))
	}

	results = engine.Evaluate(products, "", catalog.Filter{}, catalog.DefaultSort(), 0)
	if len(results) != 0 {
		t.Errorf("Expected limit 0 to return nothing, got %d", len(results))
	}

	results = engine.Evaluate(products, "", catalog.Filter{}, catalog.DefaultSort(), -1)
	if len(results) != len(products) {
		t.Errorf("Expected negative limit to be unbounded, got %d", len(results))
	}
}

func TestEvaluateDoesNotMutateInput(t *testing.T) {
	engine := newTestEngine()
	products := testProducts()
	s := catalog.Sort{Key: catalog.SortByPrice, Direction: catalog.Descending}
	engine.Evaluate(products, "", catalog.Filter{}, s, -1)

	if products[0].ID != "p001" || products[1].ID != "p002" || products[2].ID != "p003" {
		t.Error("Evaluate reordered the caller's slice")
	}
}
