package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathflow/internal/answer"
	"github.com/abhisek/mathflow/internal/ui/theme"
)

// FractionInput renders the three sub-fields of a fraction answer as a
// stacked fraction with the whole part in front.
type FractionInput struct {
	Fields  answer.FractionFields
	Active  answer.Field
	Focused bool
	Locked  bool
}

// View renders the input.
func (f FractionInput) View() string {
	cell := func(field answer.Field) string {
		v := f.Fields.Get(field)
		width := max(3, lipgloss.Width(v)+1)
		text := v
		if text == "" {
			text = strings.Repeat("_", 2)
		}
		style := theme.Field
		switch {
		case f.Locked:
			style = theme.Correct
		case f.Focused && field == f.Active:
			style = theme.FieldActive
		}
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	num := cell(answer.FieldNumerator)
	den := cell(answer.FieldDenominator)
	barWidth := max(lipgloss.Width(num), lipgloss.Width(den))
	frac := lipgloss.JoinVertical(lipgloss.Center,
		num,
		theme.Math.Render(strings.Repeat("─", barWidth)),
		den,
	)
	return lipgloss.JoinHorizontal(lipgloss.Center, cell(answer.FieldWhole), " ", frac)
}

// NextField returns the sub-field after cur, wrapping around.
func NextField(cur answer.Field) answer.Field {
	for i, f := range answer.Fields {
		if f == cur {
			return answer.Fields[(i+1)%len(answer.Fields)]
		}
	}
	return answer.FieldWhole
}

// PrevField returns the sub-field before cur, wrapping around.
func PrevField(cur answer.Field) answer.Field {
	for i, f := range answer.Fields {
		if f == cur {
			return answer.Fields[(i+len(answer.Fields)-1)%len(answer.Fields)]
		}
	}
	return answer.FieldWhole
}
