package search

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mgavril/shopscope/internal/catalog"
)

// Engine evaluates queries against an in-memory product collection. It holds
// no mutable state beyond the collator, so a single instance can serve every
// search; Evaluate is deterministic for identical inputs.
type Engine struct {
	collator *collate.Collator
}

// NewEngine creates an engine whose name ordering follows the given locale.
func NewEngine(locale language.Tag) *Engine {
	return &Engine{collator: collate.New(locale)}
}

// Evaluate returns the products matching query and filter, ordered by s and
// truncated to limit. A negative limit means unbounded. The input slice is
// never modified.
func (e *Engine) Evaluate(products []catalog.Product, query string, filter catalog.Filter, s catalog.Sort, limit int) []catalog.Product {
	q := strings.ToLower(strings.TrimSpace(query))

	matched := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if !filter.Matches(p) {
			continue
		}
		if q != "" && !matchesQuery(p, q) {
			continue
		}
		matched = append(matched, p)
	}

	// Stable sort: ties keep their catalog order.
	cmp := e.comparator(s.Key)
	sort.SliceStable(matched, func(i, j int) bool {
		c := cmp(matched[i], matched[j])
		if s.Direction == catalog.Descending {
			return c > 0
		}
		return c < 0
	})

	if limit >= 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

// matchesQuery reports whether any searchable field of p contains q. q must
// already be trimmed and lowercased.
func matchesQuery(p catalog.Product, q string) bool {
	if containsFold(p.Name, q) ||
		containsFold(p.Category, q) ||
		containsFold(p.Subcategory, q) ||
		containsFold(p.Description, q) {
		return true
	}
	for _, tag := range p.Tags {
		if containsFold(tag, q) {
			return true
		}
	}
	return false
}

func containsFold(field, q string) bool {
	return strings.Contains(strings.ToLower(field), q)
}

func (e *Engine) comparator(key catalog.SortKey) func(a, b catalog.Product) int {
	switch key {
	case catalog.SortByPrice:
		return func(a, b catalog.Product) int {
			return compareFloat(a.Price, b.Price)
		}
	case catalog.SortByRating:
		return func(a, b catalog.Product) int {
			return compareFloat(a.RatingValue(), b.RatingValue())
		}
	case catalog.SortByNewest:
		// ID stands in for recency; see catalog.SortByNewest.
		return func(a, b catalog.Product) int {
			return strings.Compare(a.ID, b.ID)
		}
	default:
		return func(a, b catalog.Product) int {
			return e.collator.CompareString(a.Name, b.Name)
		}
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
