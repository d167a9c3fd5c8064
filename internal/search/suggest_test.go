package search

import (
	"fmt"
	"testing"

	"github.com/mgavril/shopscope/internal/history"
)

func testVocabulary() []Suggestion {
	return []Suggestion{
		{Text: "Lipstick", Type: SuggestionProduct, Icon: "lipstick"},
		{Text: "Mascara", Type: SuggestionProduct, Icon: "mascara"},
		{Text: "Moisturizer", Type: SuggestionProduct, Icon: "cream"},
		{Text: "Skin care", Type: SuggestionCategory, Icon: "folder"},
		{Text: "Make Up", Type: SuggestionCategory, Icon: "folder"},
	}
}

func TestSuggestEmptyQuery(t *testing.T) {
	vocab := testVocabulary()

	suggestions := Suggest("", vocab, nil, 3)
	if len(suggestions) != 3 {
		t.Fatalf("Expected 3 default suggestions, got %d", len(suggestions))
	}
	for i, s := range suggestions {
		if s.Text != vocab[i].Text {
			t.Errorf("Default suggestion %d = %q, want %q", i, s.Text, vocab[i].Text)
		}
	}

	// Whitespace counts as empty.
	suggestions = Suggest("   ", vocab, nil, 3)
	if len(suggestions) != 3 {
		t.Errorf("Expected whitespace query to behave like empty, got %d", len(suggestions))
	}
}

func TestSuggestMatching(t *testing.T) {
	vocab := testVocabulary()

	t.Run("substring match keeps vocabulary order", func(t *testing.T) {
		suggestions := Suggest("ma", vocab, nil, 5)
		if len(suggestions) != 2 {
			t.Fatalf("Expected Mascara and Make Up, got %v", suggestions)
		}
		if suggestions[0].Text != "Mascara" || suggestions[1].Text != "Make Up" {
			t.Errorf("Order not preserved: %v", suggestions)
		}
	})

	t.Run("match is case-insensitive", func(t *testing.T) {
		suggestions := Suggest("LIP", vocab, nil, 5)
		if len(suggestions) != 1 || suggestions[0].Text != "Lipstick" {
			t.Errorf("Expected Lipstick for 'LIP', got %v", suggestions)
		}
	})

	t.Run("no match yields empty", func(t *testing.T) {
		suggestions := Suggest("zzz", vocab, nil, 5)
		if len(suggestions) != 0 {
			t.Errorf("Expected 0 suggestions, got %d", len(suggestions))
		}
	})
}

func TestSuggestHistory(t *testing.T) {
	vocab := testVocabulary()
	hist := []history.Entry{
		{Term: "lip gloss", ResultCount: 4},
		{Term: "lip liner", ResultCount: 2},
		{Term: "night cream", ResultCount: 1},
		{Term: "lip balm", ResultCount: 6},
		{Term: "lip mask", ResultCount: 3},
	}

	suggestions := Suggest("lip", vocab, hist, 10)

	var histCount int
	for _, s := range suggestions {
		if s.Type == SuggestionHistory {
			histCount++
			if s.Icon != "history" {
				t.Errorf("History suggestion %q missing history icon", s.Text)
			}
		}
	}
	if histCount != historySuggestionLimit {
		t.Errorf("Expected %d history suggestions, got %d", historySuggestionLimit, histCount)
	}

	// Vocabulary matches come first.
	if suggestions[0].Text != "Lipstick" {
		t.Errorf("Expected vocabulary match first, got %q", suggestions[0].Text)
	}
	// History keeps most-recent-first order and carries result counts.
	if suggestions[1].Text != "lip gloss" || suggestions[1].Count != 4 {
		t.Errorf("Unexpected first history suggestion: %+v", suggestions[1])
	}
}

func TestSuggestLimit(t *testing.T) {
	var vocab []Suggestion
	for i := 0; i < 20; i++ {
		vocab = append(vocab, Suggestion{Text: fmt.Sprintf("lip product %d", i), Type: SuggestionProduct})
	}

	for _, limit := range []int{1, 5, 8} {
		suggestions := Suggest("lip", vocab, nil, limit)
		if len(suggestions) != limit {
			t.Errorf("Limit %d produced %d suggestions", limit, len(suggestions))
		}
	}

	if got := Suggest("lip", vocab, nil, 0); got != nil {
		t.Errorf("Limit 0 should suggest nothing, got %v", got)
	}
}
