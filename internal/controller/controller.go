// Package controller owns the mutable search state machine: it debounces
// keystrokes, runs the evaluator, keeps suggestions fresh, maintains the
// share link, and drives side effects (history, observer callbacks).
//
// The controller is synchronous and single-goroutine by contract. Hosts run
// their own clock: Keystroke arms the debounce slot and returns a generation
// token, the host schedules the delay however it likes, and feeds the token
// back through DebounceElapsed. Stale tokens are dropped, so a burst of
// keystrokes settles exactly once.
package controller

import (
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/mgavril/shopscope/internal/catalog"
	"github.com/mgavril/shopscope/internal/history"
	"github.com/mgavril/shopscope/internal/search"
)

// Phase is the search lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDebouncing
	PhaseSearching
	PhaseSettled
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDebouncing:
		return "debouncing"
	case PhaseSearching:
		return "searching"
	case PhaseSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// DefaultDebounce is the quiet period collapsing keystroke bursts.
const DefaultDebounce = 300 * time.Millisecond

const (
	defaultResultLimit     = 50
	defaultSuggestionLimit = 5
	didYouMeanLimit        = 3
)

// Options configures a Controller. Products and History are the only fields
// without useful zero values.
type Options struct {
	Products   []catalog.Product
	Vocabulary []search.Suggestion
	History    *history.Store
	Engine     *search.Engine

	Debounce        time.Duration
	ResultLimit     int
	SuggestionLimit int

	// Link seeds the initial query and filter from a share link (the URL
	// query-string contract). A non-empty seed settles immediately.
	Link string

	// OnSearch is invoked once per settled search. OnProductClick fires
	// when a result is activated. Panics in either are swallowed so an
	// observer cannot keep the engine from settling.
	OnSearch       func(query string, f catalog.Filter, s catalog.Sort)
	OnProductClick func(p catalog.Product)
}

// Controller is the reactive search state machine.
type Controller struct {
	products []catalog.Product
	vocab    []search.Suggestion
	hist     *history.Store
	engine   *search.Engine

	debounce time.Duration
	resLimit int
	sugLimit int
	onSearch func(string, catalog.Filter, catalog.Sort)
	onClick  func(catalog.Product)

	phase       Phase
	query       string
	filter      catalog.Filter
	sortOpt     catalog.Sort
	results     []catalog.Product
	suggestions []search.Suggestion
	showSug     bool
	highlight   int
	hasSearched bool
	link        string
	didYouMean  []string

	slot   Slot
	closed bool
}

// New builds a controller and, when Options.Link carries state, runs the
// seeded search immediately.
func New(opts Options) *Controller {
	c := &Controller{
		products:  opts.Products,
		vocab:     opts.Vocabulary,
		hist:      opts.History,
		engine:    opts.Engine,
		debounce:  opts.Debounce,
		resLimit:  opts.ResultLimit,
		sugLimit:  opts.SuggestionLimit,
		onSearch:  opts.OnSearch,
		onClick:   opts.OnProductClick,
		sortOpt:   catalog.DefaultSort(),
		highlight: -1,
	}
	if c.engine == nil {
		c.engine = search.NewEngine(language.English)
	}
	if c.debounce <= 0 {
		c.debounce = DefaultDebounce
	}
	if c.resLimit == 0 {
		c.resLimit = defaultResultLimit
	}
	if c.sugLimit <= 0 {
		c.sugLimit = defaultSuggestionLimit
	}

	if opts.Link != "" {
		q, f := ParseLink(opts.Link)
		if q != "" || !f.IsZero() {
			c.query = q
			c.filter = f
			c.settle(true)
			return c
		}
	}
	c.refreshSuggestions()
	return c
}

// DebounceInterval returns the configured quiet period, for hosts that
// schedule the delay.
func (c *Controller) DebounceInterval() time.Duration { return c.debounce }

// Keystroke records a query edit. The query and suggestions update
// immediately so the input stays responsive; result evaluation waits for
// the debounce. The returned generation must be handed back through
// DebounceElapsed once the interval passes.
func (c *Controller) Keystroke(query string) (gen int) {
	if c.closed {
		return 0
	}
	c.query = query
	c.phase = PhaseDebouncing
	c.showSug = true
	c.highlight = -1
	c.refreshSuggestions()
	return c.slot.Arm()
}

// DebounceElapsed runs the settled evaluation path if gen is still the live
// generation. Stale and cancelled generations report false and do nothing.
func (c *Controller) DebounceElapsed(gen int) bool {
	if c.closed || !c.slot.Live(gen) {
		return false
	}
	c.settle(true)
	return true
}

// Submit commits query right away, bypassing the debounce. This is the
// Enter-on-a-suggestion path and the one voice input feeds into.
func (c *Controller) Submit(query string) {
	if c.closed {
		return
	}
	c.slot.Cancel()
	c.query = query
	c.showSug = false
	c.highlight = -1
	c.settle(true)
}

// Apply installs a new filter and sort and re-evaluates immediately; an
// explicit apply does not wait out a debounce.
func (c *Controller) Apply(f catalog.Filter, s catalog.Sort) {
	if c.closed {
		return
	}
	c.slot.Cancel()
	c.filter = f
	if catalog.ValidSortKey(s.Key) {
		c.sortOpt = s
	}
	c.settle(true)
}

// Clear resets to the idle state: no query, no results, suggestions closed.
func (c *Controller) Clear() {
	if c.closed {
		return
	}
	c.slot.Cancel()
	c.phase = PhaseIdle
	c.query = ""
	c.results = nil
	c.didYouMean = nil
	c.hasSearched = false
	c.showSug = false
	c.highlight = -1
	c.link = ""
	c.refreshSuggestions()
}

// Focus opens the suggestion list; while idle that shows the vocabulary
// defaults.
func (c *Controller) Focus() {
	if c.closed {
		return
	}
	c.showSug = true
	c.refreshSuggestions()
}

// Blur closes the suggestion list (input blur, outside click, or Escape)
// without touching query or results.
func (c *Controller) Blur() {
	c.showSug = false
	c.highlight = -1
}

// MoveHighlight moves the highlighted suggestion by delta with wraparound
// over the current list.
func (c *Controller) MoveHighlight(delta int) {
	n := len(c.suggestions)
	if !c.showSug || n == 0 {
		c.highlight = -1
		return
	}
	if c.highlight < 0 {
		if delta >= 0 {
			c.highlight = 0
		} else {
			c.highlight = n - 1
		}
		return
	}
	c.highlight = ((c.highlight+delta)%n + n) % n
}

// CommitHighlighted submits the highlighted suggestion as the new query.
// Reports whether anything was highlighted.
func (c *Controller) CommitHighlighted() bool {
	if c.highlight < 0 || c.highlight >= len(c.suggestions) {
		return false
	}
	c.Submit(c.suggestions[c.highlight].Text)
	return true
}

// ActivateResult fires the product-click observer for results[i] and
// returns the product so the host can act on it (copy a share link, open a
// detail view).
func (c *Controller) ActivateResult(i int) (catalog.Product, bool) {
	if i < 0 || i >= len(c.results) {
		return catalog.Product{}, false
	}
	p := c.results[i]
	if c.onClick != nil {
		func() {
			defer func() { _ = recover() }()
			c.onClick(p)
		}()
	}
	return p, true
}

// SetProducts swaps the product collection (catalog hot reload) and, when a
// search has settled, re-evaluates it against the new data. The reload does
// not re-record history.
func (c *Controller) SetProducts(products []catalog.Product) {
	if c.closed {
		return
	}
	c.products = products
	if c.hasSearched {
		c.settle(false)
	}
}

// Close cancels the pending debounce and refuses further transitions. Hosts
// call it on teardown so no timer callback mutates disposed state.
func (c *Controller) Close() {
	c.slot.Cancel()
	c.closed = true
}

// settle runs the evaluation path: debouncing/searching collapse
// synchronously into settled.
func (c *Controller) settle(record bool) {
	c.phase = PhaseSearching
	c.results = c.engine.Evaluate(c.products, c.query, c.filter, c.sortOpt, c.resLimit)
	c.hasSearched = true

	trimmed := strings.TrimSpace(c.query)
	if record && trimmed != "" && len(c.results) > 0 && c.hist != nil {
		c.hist.Record(trimmed, len(c.results))
	}

	c.didYouMean = nil
	if trimmed != "" && len(c.results) == 0 {
		c.didYouMean = search.Closest(trimmed, c.products, didYouMeanLimit)
	}

	c.link = EncodeLink(trimmed, c.filter)
	c.refreshSuggestions()

	if c.onSearch != nil {
		func() {
			// An observer panic must not keep the search from settling.
			defer func() { _ = recover() }()
			c.onSearch(c.query, c.filter, c.sortOpt)
		}()
	}
	c.phase = PhaseSettled
}

func (c *Controller) refreshSuggestions() {
	var hist []history.Entry
	if c.hist != nil {
		hist = c.hist.Load()
	}
	c.suggestions = search.Suggest(c.query, c.vocab, hist, c.sugLimit)
	if c.highlight >= len(c.suggestions) {
		c.highlight = -1
	}
}

// Accessors. The returned slices are the controller's own; hosts must treat
// them as read-only.

func (c *Controller) Phase() Phase                       { return c.phase }
func (c *Controller) Query() string                      { return c.query }
func (c *Controller) Filter() catalog.Filter             { return c.filter }
func (c *Controller) Sort() catalog.Sort                 { return c.sortOpt }
func (c *Controller) Results() []catalog.Product         { return c.results }
func (c *Controller) Suggestions() []search.Suggestion   { return c.suggestions }
func (c *Controller) SuggestionsVisible() bool           { return c.showSug }
func (c *Controller) HighlightedIndex() int              { return c.highlight }
func (c *Controller) HasSearched() bool                  { return c.hasSearched }
func (c *Controller) Link() string                       { return c.link }
func (c *Controller) DidYouMean() []string               { return c.didYouMean }

// History returns the current recent-search snapshot.
func (c *Controller) History() []history.Entry {
	if c.hist == nil {
		return nil
	}
	return c.hist.Load()
}
