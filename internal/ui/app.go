package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mgavril/shopscope/internal/catalog"
	"github.com/mgavril/shopscope/internal/clipboard"
	"github.com/mgavril/shopscope/internal/controller"
	"github.com/mgavril/shopscope/internal/voice"
)

// Options wires the app together.
type Options struct {
	Catalog     *catalog.Catalog
	CatalogPath string // empty when browsing the demo catalog
	Controller  *controller.Controller
	Version     string
}

// Model is the app model.
type Model struct {
	ctrl    *controller.Controller
	voice   *voice.Adapter
	clip    *clipboard.Manager
	version string

	catalogPath string
	categories  []string
	catIndex    int // -1 = all categories
	sortIndex   int
	sortDesc    bool

	// UI state
	input        textinput.Model
	searchFocus  bool
	width        int
	height       int
	selected     int
	scrollOffset int

	// Status
	statusMsg   string
	statusTimer time.Time

	// External events funneled onto the update loop
	voiceCh   chan voice.Event
	catalogCh chan *catalog.Catalog
	watcher   *catalog.Watcher
}

// NewApp creates the app model. The voice adapter may be nil-recognizer
// backed (unsupported); the catalog path may be empty (demo catalog, no
// watcher).
func NewApp(opts Options) *Model {
	input := textinput.New()
	input.Placeholder = "Search products..."
	input.CharLimit = 100
	input.Width = 40
	input.SetValue(opts.Controller.Query())

	m := &Model{
		ctrl:        opts.Controller,
		voice:       voice.NewAdapter(nil, "", nil),
		clip:        clipboard.NewManager(),
		version:     opts.Version,
		catalogPath: opts.CatalogPath,
		categories:  opts.Catalog.CategoryNames(),
		catIndex:    -1,
		input:       input,
		width:       80,
		height:      24,
		voiceCh:     make(chan voice.Event, 8),
		catalogCh:   make(chan *catalog.Catalog, 1),
	}
	m.syncFilterCursor()
	return m
}

// SetVoice installs the voice adapter. Called once during startup, after
// the recognizer has been wired to VoiceSink.
func (m *Model) SetVoice(a *voice.Adapter) {
	m.voice = a
}

// VoiceSink returns the callback recognition backends deliver events to. It
// is safe to call from any goroutine.
func (m *Model) VoiceSink() voice.EventSink {
	return func(ev voice.Event) {
		m.voiceCh <- ev
	}
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitVoice(), m.waitCatalog()}
	if m.catalogPath != "" {
		if w, err := catalog.Watch(m.catalogPath, func(c *catalog.Catalog) {
			m.catalogCh <- c
		}); err == nil {
			m.watcher = w
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) waitVoice() tea.Cmd {
	return func() tea.Msg { return voiceMsg{event: <-m.voiceCh} }
}

func (m *Model) waitCatalog() tea.Cmd {
	return func() tea.Msg { return catalogMsg{catalog: <-m.catalogCh} }
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case debounceMsg:
		if m.ctrl.DebounceElapsed(msg.gen) {
			m.selected = 0
			m.scrollOffset = 0
		}
		return m, nil

	case voiceMsg:
		m.voice.Handle(msg.event)
		// A recognized transcript has already been submitted through the
		// controller; mirror it into the input box.
		if m.input.Value() != m.ctrl.Query() {
			m.input.SetValue(m.ctrl.Query())
			m.selected = 0
			m.scrollOffset = 0
			m.setStatus(fmt.Sprintf("Heard %q", m.ctrl.Query()))
		}
		if reason := m.voice.Err(); reason != "" {
			m.setStatus("Voice: " + reason)
		}
		return m, m.waitVoice()

	case catalogMsg:
		m.categories = msg.catalog.CategoryNames()
		m.syncFilterCursor()
		m.ctrl.SetProducts(msg.catalog.Products)
		m.clampSelection()
		m.setStatus("Catalog reloaded")
		return m, m.waitCatalog()

	case clearStatusMsg:
		m.statusMsg = ""
		return m, nil

	case tea.KeyMsg:
		if m.searchFocus {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}

	return m, nil
}

// updateSearch handles keys while the search box is focused.
func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, m.quit()

	case "esc":
		if m.ctrl.SuggestionsVisible() {
			m.ctrl.Blur()
			return m, nil
		}
		m.leaveSearch()
		return m, nil

	case "up":
		m.ctrl.MoveHighlight(-1)
		return m, nil

	case "down":
		m.ctrl.MoveHighlight(1)
		return m, nil

	case "enter":
		if m.ctrl.CommitHighlighted() {
			m.input.SetValue(m.ctrl.Query())
		} else {
			m.ctrl.Submit(m.input.Value())
		}
		m.selected = 0
		m.scrollOffset = 0
		m.leaveSearch()
		return m, nil

	default:
		var cmd tea.Cmd
		before := m.input.Value()
		m.input, cmd = m.input.Update(msg)
		if v := m.input.Value(); v != before {
			gen := m.ctrl.Keystroke(v)
			return m, tea.Batch(cmd, tea.Tick(m.ctrl.DebounceInterval(), func(time.Time) tea.Msg {
				return debounceMsg{gen: gen}
			}))
		}
		return m, cmd
	}
}

// updateBrowse handles keys while navigating results.
func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, m.quit()

	case "/":
		m.enterSearch()
		return m, textinput.Blink

	case "esc":
		m.ctrl.Clear()
		m.input.SetValue("")
		m.selected = 0
		m.scrollOffset = 0
		return m, nil

	case "up", "k":
		if m.selected > 0 {
			m.selected--
			m.ensureVisible()
		}
		return m, nil

	case "down", "j":
		if m.selected < len(m.ctrl.Results())-1 {
			m.selected++
			m.ensureVisible()
		}
		return m, nil

	case "enter":
		if p, ok := m.ctrl.ActivateResult(m.selected); ok {
			link := m.ctrl.Link()
			if link != "" {
				link += "&"
			}
			link += "product=" + p.ID
			if err := m.clip.Copy(link); err != nil {
				m.setStatus(fmt.Sprintf("Copy failed: %v", err))
			} else {
				m.setStatus("Product link copied!")
			}
			return m, m.statusExpiry()
		}
		return m, nil

	case "y":
		if link := m.ctrl.Link(); link != "" {
			if err := m.clip.Copy(link); err != nil {
				m.setStatus(fmt.Sprintf("Copy failed: %v", err))
			} else {
				m.setStatus("Share link copied!")
			}
			return m, m.statusExpiry()
		}
		return m, nil

	case "c":
		m.catIndex++
		if m.catIndex >= len(m.categories) {
			m.catIndex = -1
		}
		m.applyFilters()
		return m, nil

	case "s":
		f := m.ctrl.Filter()
		if f.InStock == nil {
			inStock := true
			f.InStock = &inStock
		} else {
			f.InStock = nil
		}
		m.ctrl.Apply(f, m.ctrl.Sort())
		m.clampSelection()
		return m, nil

	case "o":
		keys := catalog.SortKeys()
		m.sortIndex = (m.sortIndex + 1) % len(keys)
		m.applySort()
		return m, nil

	case "O":
		m.sortDesc = !m.sortDesc
		m.applySort()
		return m, nil

	case "x":
		m.catIndex = -1
		m.ctrl.Apply(catalog.Filter{}, m.ctrl.Sort())
		m.clampSelection()
		return m, nil

	case "v":
		return m.toggleVoice()

	case "V":
		m.voice.DismissError()
		return m, nil
	}

	return m, nil
}

func (m *Model) toggleVoice() (tea.Model, tea.Cmd) {
	if !m.voice.Supported() {
		m.setStatus("Voice input is not available (configure voice.command)")
		return m, m.statusExpiry()
	}
	switch m.voice.State() {
	case voice.StateListening:
		m.voice.Cancel()
		m.setStatus("Voice input cancelled")
	default:
		if m.voice.Start() {
			m.setStatus("Listening...")
		} else {
			m.setStatus("Voice: " + m.voice.Err())
		}
	}
	return m, m.statusExpiry()
}

func (m *Model) quit() tea.Cmd {
	m.ctrl.Close()
	m.voice.Close()
	if m.watcher != nil {
		_ = m.watcher.Close()
	}
	return tea.Quit
}

func (m *Model) enterSearch() {
	m.searchFocus = true
	m.input.Focus()
	m.ctrl.Focus()
}

func (m *Model) leaveSearch() {
	m.searchFocus = false
	m.input.Blur()
	m.ctrl.Blur()
}

func (m *Model) applyFilters() {
	f := m.ctrl.Filter()
	if m.catIndex >= 0 && m.catIndex < len(m.categories) {
		f.Category = m.categories[m.catIndex]
	} else {
		f.Category = ""
	}
	m.ctrl.Apply(f, m.ctrl.Sort())
	m.clampSelection()
}

func (m *Model) applySort() {
	keys := catalog.SortKeys()
	dir := catalog.Ascending
	if m.sortDesc {
		dir = catalog.Descending
	}
	m.ctrl.Apply(m.ctrl.Filter(), catalog.Sort{Key: keys[m.sortIndex], Direction: dir})
	m.clampSelection()
}

// syncFilterCursor keeps the category cursor pointing at the controller's
// current filter after a reload or a seeded deep link.
func (m *Model) syncFilterCursor() {
	m.catIndex = -1
	current := m.ctrl.Filter().Category
	for i, name := range m.categories {
		if name == current {
			m.catIndex = i
			break
		}
	}
	for i, k := range catalog.SortKeys() {
		if k == m.ctrl.Sort().Key {
			m.sortIndex = i
		}
	}
	m.sortDesc = m.ctrl.Sort().Direction == catalog.Descending
}

func (m *Model) clampSelection() {
	if m.selected >= len(m.ctrl.Results()) {
		m.selected = len(m.ctrl.Results()) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	m.ensureVisible()
}

func (m *Model) setStatus(s string) {
	m.statusMsg = s
	m.statusTimer = time.Now()
}

func (m *Model) statusExpiry() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (m *Model) View() string {
	reservedHeight := 1 + 3 // status bar + search bar
	suggestions := m.visibleSuggestions()
	if len(suggestions) > 0 {
		reservedHeight += len(suggestions) + 2
	}
	availableHeight := m.height - reservedHeight

	leftWidth := 44
	if m.width < 88 {
		leftWidth = m.width / 2
	}
	rightWidth := m.width - leftWidth - 1

	components := []string{m.renderSearchBar()}
	if len(suggestions) > 0 {
		components = append(components, m.renderSuggestions(suggestions))
	}

	leftPane := m.renderResultList(leftWidth, availableHeight)
	rightPane := m.renderDetails(rightWidth, availableHeight)
	components = append(components, lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane))
	components = append(components, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, components...)
}

func (m *Model) visibleSuggestions() []suggestionRow {
	if !m.ctrl.SuggestionsVisible() {
		return nil
	}
	sugs := m.ctrl.Suggestions()
	rows := make([]suggestionRow, 0, len(sugs))
	for i, s := range sugs {
		rows = append(rows, suggestionRow{
			text:        s.Text,
			history:     s.Type == "history",
			count:       s.Count,
			highlighted: i == m.ctrl.HighlightedIndex(),
		})
	}
	return rows
}

type suggestionRow struct {
	text        string
	history     bool
	count       int
	highlighted bool
}

func (m *Model) renderSearchBar() string {
	borderColor := mutedColor
	if m.searchFocus {
		borderColor = primaryColor
	}

	barStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(m.width - 2)

	var prompt string
	if m.searchFocus {
		prompt = "Search: " + m.input.View()
	} else {
		text := m.ctrl.Query()
		if text == "" {
			text = mutedTextStyle.Render("press / to search")
		}
		prompt = "Search: " + text
		if m.ctrl.HasSearched() {
			prompt += mutedTextStyle.Render(fmt.Sprintf("  (%d results)", len(m.ctrl.Results())))
		}
	}

	switch m.voice.State() {
	case voice.StateListening:
		prompt += "  " + listeningStyle.Render("[listening]")
	case voice.StateError:
		prompt += "  " + errorStyle.Render("[voice error: "+m.voice.Err()+"]")
	}

	return barStyle.Render(prompt)
}

func (m *Model) renderSuggestions(rows []suggestionRow) string {
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		label := r.text
		if r.history {
			label += mutedTextStyle.Render(fmt.Sprintf("  (%d results)", r.count))
		}
		switch {
		case r.highlighted:
			lines = append(lines, suggestionSelStyle.Render(label))
		case r.history:
			lines = append(lines, historySugStyle.Render(label))
		default:
			lines = append(lines, suggestionStyle.Render(label))
		}
	}
	return suggestionBoxStyle.Width(m.width - 2).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderResultList(width, height int) string {
	innerHeight := height - 4
	innerWidth := width - 4

	lines := []string{}
	title := "Products"
	if m.ctrl.HasSearched() {
		title = fmt.Sprintf("Products (%d)", len(m.ctrl.Results()))
	}
	lines = append(lines, titleStyle.Render(title))
	lines = append(lines, mutedTextStyle.Render(m.filterSummary()))
	lines = append(lines, "")

	itemsHeight := innerHeight - 3
	if itemsHeight < 1 {
		itemsHeight = 1
	}

	results := m.ctrl.Results()
	if len(results) == 0 {
		if m.ctrl.HasSearched() {
			lines = append(lines, mutedTextStyle.Render("  No products found"))
			for _, hint := range m.ctrl.DidYouMean() {
				lines = append(lines, infoStyle.Render("  Did you mean: "+hint))
			}
		} else {
			lines = append(lines, mutedTextStyle.Render("  Press / and start typing"))
		}
	}

	maxScroll := len(results) - itemsHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scrollOffset > maxScroll {
		m.scrollOffset = maxScroll
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}

	visibleEnd := m.scrollOffset + itemsHeight
	if visibleEnd > len(results) {
		visibleEnd = len(results)
	}

	for i := m.scrollOffset; i < visibleEnd; i++ {
		p := results[i]
		name := p.Name
		price := catalog.DisplayPrice(p.Price)
		pad := innerWidth - lipgloss.Width(name) - lipgloss.Width(price) - 3
		if pad < 1 {
			if over := -pad + 4; len(name) > over {
				name = name[:len(name)-over] + "..."
			}
			pad = 1
		}
		line := fmt.Sprintf("%s%s%s", name, strings.Repeat(" ", pad), price)

		switch {
		case i == m.selected && !m.searchFocus:
			line = selectedItemStyle.Render(line)
		case !p.InStock:
			line = outOfStockStyle.Render(line)
		default:
			line = resultItemStyle.Render(line)
		}
		lines = append(lines, line)
	}

	for len(lines) < innerHeight {
		lines = append(lines, "")
	}

	return resultListStyle.Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderDetails(width, height int) string {
	innerHeight := height - 4
	innerWidth := width - 4
	if innerHeight < 1 || innerWidth < 1 {
		return detailsStyle.Width(width).Height(height).Render("")
	}

	lines := []string{}
	results := m.ctrl.Results()
	if m.selected < 0 || m.selected >= len(results) {
		lines = append(lines, mutedTextStyle.Render("Select a product..."))
		for len(lines) < innerHeight {
			lines = append(lines, "")
		}
		return detailsStyle.Width(width).Height(height).Render(strings.Join(lines, "\n"))
	}

	p := results[m.selected]
	lines = append(lines, titleStyle.Render(p.Name))
	lines = append(lines, "")

	category := p.Category
	if p.Subcategory != "" {
		category += " / " + p.Subcategory
	}
	lines = append(lines, mutedTextStyle.Render(category))
	lines = append(lines, "")

	price := priceStyle.Render(catalog.DisplayPrice(p.Price))
	if p.Discounted() {
		price += "  " + strikeStyle.Render(catalog.DisplayPrice(*p.OriginalPrice))
		pct := (1 - p.Price / *p.OriginalPrice) * 100
		price += "  " + discountStyle.Render(fmt.Sprintf("-%.0f%%", pct))
	}
	lines = append(lines, price)
	lines = append(lines, "")

	if p.Rating != nil {
		lines = append(lines, fmt.Sprintf("Rating: %s %.1f", stars(*p.Rating), *p.Rating))
	}
	if p.InStock {
		lines = append(lines, infoStyle.Render("In stock"))
	} else {
		lines = append(lines, errorStyle.Render("Out of stock"))
	}
	lines = append(lines, "")

	if p.Description != "" {
		for _, l := range wrapText(p.Description, innerWidth-2) {
			lines = append(lines, "  "+l)
		}
		lines = append(lines, "")
	}

	if len(p.Tags) > 0 {
		lines = append(lines, mutedTextStyle.Render("Tags: "+strings.Join(p.Tags, ", ")))
	}

	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
	}
	for len(lines) < innerHeight {
		lines = append(lines, "")
	}

	return detailsStyle.Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

func (m *Model) filterSummary() string {
	parts := []string{}
	f := m.ctrl.Filter()
	if f.Category != "" {
		parts = append(parts, f.Category)
	} else {
		parts = append(parts, "all categories")
	}
	if f.InStock != nil && *f.InStock {
		parts = append(parts, "in stock")
	}
	s := m.ctrl.Sort()
	parts = append(parts, fmt.Sprintf("by %s %s", s.Key, s.Direction))
	return strings.Join(parts, " · ")
}

func (m *Model) renderStatusBar() string {
	var leftText string
	if m.statusMsg != "" && time.Since(m.statusTimer) < 3*time.Second {
		leftText = m.statusMsg
	} else if m.searchFocus {
		leftText = "[↑↓] Suggestions  [Enter] Search  [Esc] Back  Type to search..."
	} else {
		leftText = "[/] Search  [↑↓] Navigate  [Enter] Copy link  [c]ategory  [s]tock  [o]rder  [v]oice  [q] Quit"
	}

	if link := m.ctrl.Link(); link != "" {
		leftText += "  " + mutedTextStyle.Render("?"+link)
	}

	leftStyle := keyHelpStyle.Width(m.width - lipgloss.Width(m.version) - 2)
	rightStyle := keyHelpStyle.Align(lipgloss.Right)

	content := lipgloss.JoinHorizontal(lipgloss.Bottom,
		leftStyle.Render(leftText),
		rightStyle.Render(m.version),
	)
	return statusBarStyle.Width(m.width).Render(content)
}

func (m *Model) ensureVisible() {
	reservedHeight := 1 + 3
	if sugs := m.visibleSuggestions(); len(sugs) > 0 {
		reservedHeight += len(sugs) + 2
	}
	itemsHeight := m.height - reservedHeight - 4 - 3
	if itemsHeight < 1 {
		itemsHeight = 1
	}

	if m.selected < m.scrollOffset {
		m.scrollOffset = m.selected
	} else if m.selected >= m.scrollOffset+itemsHeight {
		m.scrollOffset = m.selected - itemsHeight + 1
	}

	maxScroll := len(m.ctrl.Results()) - itemsHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scrollOffset > maxScroll {
		m.scrollOffset = maxScroll
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

// Messages
type debounceMsg struct {
	gen int
}

type voiceMsg struct {
	event voice.Event
}

type catalogMsg struct {
	catalog *catalog.Catalog
}

type clearStatusMsg struct{}

// Helper functions
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{}
	}

	lines := []string{}
	currentLine := ""

	for _, word := range words {
		if currentLine == "" {
			currentLine = word
		} else if len(currentLine+" "+word) <= width {
			currentLine += " " + word
		} else {
			lines = append(lines, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}

func stars(rating float64) string {
	full := int(rating + 0.5)
	if full > 5 {
		full = 5
	}
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
}
