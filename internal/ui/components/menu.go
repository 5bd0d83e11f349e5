package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathflow/internal/ui/theme"
)

// MenuItem represents a single entry in the lesson menu.
type MenuItem struct {
	ID       string
	Label    string
	Prefix   string // e.g. the lesson number
	Special  bool   // rendered apart from regular items
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu.
type Menu struct {
	Items    []MenuItem
	Selected int
	Active   string // ID of the item currently in use
}

// NewMenu creates a new menu with the given items.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{
		Items:    items,
		Selected: selected,
	}
}

// SelectID moves the cursor to the item with the given ID.
func (m Menu) SelectID(id string) Menu {
	for i, item := range m.Items {
		if item.ID == id {
			m.Selected = i
			break
		}
	}
	m.Active = id
	return m
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// View renders the menu within width columns. The cursor is only drawn
// when focused.
func (m Menu) View(width int, focused bool) string {
	lines := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		label := item.Label
		if item.Prefix != "" {
			label = item.Prefix + " " + label
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case item.Disabled:
			style = theme.Disabled
		case item.Special:
			style = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
		}
		if item.ID == m.Active {
			style = style.Background(theme.BgCard).Bold(true)
		}

		cursor := "  "
		if focused && i == m.Selected {
			cursor = theme.Selected.Render("▸ ")
		}
		lines = append(lines, cursor+style.Width(max(width-2, 1)).Render(label))
		if item.Special {
			lines = append(lines, theme.Disabled.Render(strings.Repeat("─", max(width, 1))))
		}
	}
	return strings.Join(lines, "\n")
}
