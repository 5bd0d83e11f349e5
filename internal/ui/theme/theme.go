package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette: bright but not garish
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Warning   = lipgloss.Color("#EAB308") // Amber
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// cardColors maps the color tags used by fraction cards.
var cardColors = map[string]color.Color{
	"red":    lipgloss.Color("#EF4444"),
	"orange": lipgloss.Color("#F97316"),
	"yellow": lipgloss.Color("#EAB308"),
	"green":  lipgloss.Color("#22C55E"),
	"teal":   lipgloss.Color("#14B8A6"),
	"blue":   lipgloss.Color("#3B82F6"),
	"purple": lipgloss.Color("#A855F7"),
	"pink":   lipgloss.Color("#EC4899"),
}

// CardColor resolves a card color tag, defaulting to the border color.
func CardColor(tag string) color.Color {
	if c, ok := cardColors[tag]; ok {
		return c
	}
	return Border
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Badge = lipgloss.NewStyle().
		Foreground(BgDark).
		Background(Secondary).
		Bold(true).
		Padding(0, 1)
)

// Math
var (
	Operator = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	FractionStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	Math = lipgloss.NewStyle().
		Foreground(Text).
		Bold(true)

	// MathFallback marks source that could not be rendered.
	MathFallback = lipgloss.NewStyle().
			Foreground(Error)
)

// Blocks
var (
	Tip = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Warning).
		Padding(0, 1)

	Speech = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Secondary).
		Padding(0, 1)

	Example = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(Primary).
		PaddingLeft(1)

	Focused = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(Accent).
		PaddingLeft(1)

	Unfocused = lipgloss.NewStyle().
			PaddingLeft(2)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	PanelActive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Disabled = lipgloss.NewStyle().
			Foreground(Border)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 1)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Padding(0, 1)

	Field = lipgloss.NewStyle().
		Foreground(Text).
		Background(BgCard)

	FieldActive = lipgloss.NewStyle().
			Foreground(Text).
			Background(Primary)
)
