package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathflow/internal/practice"
	"github.com/abhisek/mathflow/internal/ui/theme"
)

// AnswerField renders a free-text answer box.
type AnswerField struct {
	Value       string
	Placeholder string
	Width       int
	Focused     bool
	Status      practice.Status
}

// View renders the field with a cursor when focused.
func (a AnswerField) View() string {
	text := a.Value
	style := theme.Field
	if text == "" && a.Placeholder != "" {
		text = a.Placeholder
		style = style.Foreground(theme.TextDim)
	}
	if a.Focused && a.Status != practice.StatusCorrect {
		text += "▏"
		style = theme.FieldActive
	}

	switch a.Status {
	case practice.StatusCorrect:
		style = theme.Field.Foreground(theme.Success)
	case practice.StatusIncorrect:
		style = style.Foreground(theme.Error)
	}

	width := max(a.Width, lipgloss.Width(text)+1)
	return style.Width(width).Render(text)
}

// VerdictMark returns a check or cross for a checked status.
func VerdictMark(s practice.Status) string {
	switch s {
	case practice.StatusCorrect:
		return theme.Correct.Render("✓")
	case practice.StatusIncorrect:
		return theme.Incorrect.Render("✗")
	}
	return " "
}
