package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor   = lipgloss.Color("#7C3AED")
	secondaryColor = lipgloss.Color("#10B981")
	mutedColor     = lipgloss.Color("#6B7280")
	errorColor     = lipgloss.Color("#EF4444")
	accentColor    = lipgloss.Color("#FBBF24")
	bgColor        = lipgloss.Color("#1F2937")
	selectedBg     = lipgloss.Color("#374151")

	// Text styles
	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	infoStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	mutedTextStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	priceStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	strikeStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Strikethrough(true)

	discountStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	// Result list
	resultListStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(1).
			MarginRight(1)

	resultItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	selectedItemStyle = lipgloss.NewStyle().
				Background(selectedBg).
				Foreground(primaryColor).
				PaddingLeft(2)

	outOfStockStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			PaddingLeft(2)

	// Details pane
	detailsStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(1)

	// Suggestion dropdown
	suggestionBoxStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(primaryColor).
				Padding(0, 1)

	suggestionStyle = lipgloss.NewStyle().
			PaddingLeft(1)

	suggestionSelStyle = lipgloss.NewStyle().
				Background(selectedBg).
				Foreground(primaryColor).
				PaddingLeft(1)

	historySugStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			PaddingLeft(1)

	// Status bar
	statusBarStyle = lipgloss.NewStyle().
			Background(bgColor).
			Padding(0, 1)

	keyHelpStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// Voice indicator
	listeningStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)
)
