package components

import (
	"strings"

	"github.com/abhisek/mathflow/internal/practice"
	"github.com/abhisek/mathflow/internal/ui/theme"
)

// OptionRow is a horizontal option picker for SELECT questions.
type OptionRow struct {
	Options   []string
	Chosen    string // the recorded answer
	Highlight int    // option under the cursor
	Focused   bool
	Status    practice.Status
}

// View renders the options. The chosen option carries the verdict color
// once checked; a correct choice disables the whole row.
func (o OptionRow) View() string {
	parts := make([]string, 0, len(o.Options))
	for i, opt := range o.Options {
		label := " " + opt + " "
		chosen := opt == o.Chosen
		if chosen {
			label = "[" + opt + "]"
		}

		style := theme.Unselected
		switch {
		case chosen && o.Status == practice.StatusCorrect:
			style = theme.Correct
		case chosen && o.Status == practice.StatusIncorrect:
			style = theme.Incorrect
		case o.Status == practice.StatusCorrect:
			style = theme.Disabled
		case o.Focused && i == o.Highlight:
			style = theme.ButtonActive
		case chosen:
			style = theme.Selected
		}
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, " ")
}

// Move shifts the highlight by delta within bounds.
func (o OptionRow) Move(delta int) OptionRow {
	o.Highlight += delta
	if o.Highlight < 0 {
		o.Highlight = 0
	}
	if o.Highlight >= len(o.Options) {
		o.Highlight = len(o.Options) - 1
	}
	return o
}
