package search

import (
	"github.com/sahilm/fuzzy"

	"github.com/mgavril/shopscope/internal/catalog"
)

type productSource struct {
	products []catalog.Product
}

func (s productSource) String(i int) string {
	return s.products[i].Name
}

func (s productSource) Len() int {
	return len(s.products)
}

// Closest fuzzy-ranks product names against query and returns up to n of
// them. Used for "did you mean" hints when a search settles with zero
// results; it deliberately matches more loosely than Evaluate.
func Closest(query string, products []catalog.Product, n int) []string {
	if query == "" || n <= 0 {
		return nil
	}

	matches := fuzzy.FindFrom(query, productSource{products: products})

	names := make([]string, 0, n)
	for _, m := range matches {
		names = append(names, products[m.Index].Name)
		if len(names) == n {
			break
		}
	}
	return names
}
