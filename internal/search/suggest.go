package search

import (
	"strings"

	"github.com/mgavril/shopscope/internal/history"
)

// SuggestionType tags where a suggestion came from.
type SuggestionType string

const (
	SuggestionProduct  SuggestionType = "product"
	SuggestionCategory SuggestionType = "category"
	SuggestionHistory  SuggestionType = "history"
)

// Suggestion is one completion candidate in the dropdown.
type Suggestion struct {
	Text  string         `json:"text"`
	Type  SuggestionType `json:"type"`
	Count int            `json:"count,omitempty"`
	Icon  string         `json:"icon,omitempty"`
}

// historySuggestionLimit caps how many recent-search entries are appended
// after the vocabulary matches.
const historySuggestionLimit = 3

// Suggest produces at most limit completion candidates for query.
//
// An empty query returns the head of the vocabulary verbatim (the "popular
// searches" default). Otherwise vocabulary entries containing the query keep
// their vocabulary order, followed by up to three matching history terms,
// most recent first.
func Suggest(query string, vocabulary []Suggestion, hist []history.Entry, limit int) []Suggestion {
	if limit <= 0 {
		return nil
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		n := min(limit, len(vocabulary))
		return append([]Suggestion(nil), vocabulary[:n]...)
	}

	out := make([]Suggestion, 0, limit)
	for _, v := range vocabulary {
		if len(out) == limit {
			break
		}
		if strings.Contains(strings.ToLower(v.Text), q) {
			out = append(out, v)
		}
	}

	appended := 0
	for _, h := range hist {
		if appended == historySuggestionLimit {
			break
		}
		if !strings.Contains(strings.ToLower(h.Term), q) {
			continue
		}
		out = append(out, Suggestion{
			Text:  h.Term,
			Type:  SuggestionHistory,
			Count: h.ResultCount,
			Icon:  "history",
		})
		appended++
	}

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
