package components

import (
	"github.com/abhisek/mathflow/internal/ui/theme"
)

// Button is a styled inline button.
type Button struct {
	Label   string
	Enabled bool
	Focused bool
}

// NewButton creates a new button.
func NewButton(label string, enabled, focused bool) Button {
	return Button{
		Label:   label,
		Enabled: enabled,
		Focused: focused,
	}
}

// View renders the button.
func (b Button) View() string {
	label := "▸ " + b.Label
	switch {
	case !b.Enabled:
		return theme.Disabled.Render("  " + b.Label)
	case b.Focused:
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
