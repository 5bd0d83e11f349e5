package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathflow/internal/ui/theme"
)

// StackedFraction draws a fraction over three lines with the whole part,
// if any, to the left of the bar:
//
//	   1
//	2 ───
//	   4
func StackedFraction(whole, num, den string, style lipgloss.Style) string {
	w := max(lipgloss.Width(num), lipgloss.Width(den)) + 2
	center := lipgloss.NewStyle().Width(w).Align(lipgloss.Center)

	frac := lipgloss.JoinVertical(lipgloss.Center,
		center.Render(style.Render(num)),
		style.Render(strings.Repeat("─", w)),
		center.Render(style.Render(den)),
	)
	if whole == "" {
		return frac
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, style.Render(whole)+" ", frac)
}

// FractionCard draws a labeled stacked fraction inside a colored border.
func FractionCard(label, whole, num, den string, accent lipgloss.Style) string {
	body := StackedFraction(whole, num, den, theme.Math)
	if label != "" {
		body = lipgloss.JoinVertical(lipgloss.Center, body, theme.Hint.Render(label))
	}
	return accent.
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Render(body)
}
