package controller

import (
	"net/url"
	"strconv"

	"github.com/mgavril/shopscope/internal/catalog"
)

// Share links carry the search state as URL query parameters: q, category,
// min, max and stock. Parameters are present only when set to a non-default
// value, so an idle search encodes to "".

// EncodeLink renders query and filter as a query string.
func EncodeLink(query string, f catalog.Filter) string {
	v := url.Values{}
	if query != "" {
		v.Set("q", query)
	}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	if f.PriceMin != nil {
		v.Set("min", strconv.FormatFloat(*f.PriceMin, 'f', -1, 64))
	}
	if f.PriceMax != nil {
		v.Set("max", strconv.FormatFloat(*f.PriceMax, 'f', -1, 64))
	}
	if f.InStock != nil && *f.InStock {
		v.Set("stock", "true")
	}
	return v.Encode()
}

// ParseLink decodes a query string (with or without a leading "?") back
// into a query and filter. Unknown parameters and malformed numbers are
// ignored rather than rejected, mirroring how a page would treat a
// hand-edited URL.
func ParseLink(link string) (query string, f catalog.Filter) {
	if len(link) > 0 && link[0] == '?' {
		link = link[1:]
	}
	v, err := url.ParseQuery(link)
	if err != nil {
		return "", catalog.Filter{}
	}

	query = v.Get("q")
	f.Category = v.Get("category")
	if raw := v.Get("min"); raw != "" {
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			f.PriceMin = &n
		}
	}
	if raw := v.Get("max"); raw != "" {
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			f.PriceMax = &n
		}
	}
	if v.Get("stock") == "true" {
		inStock := true
		f.InStock = &inStock
	}
	return query, f
}
