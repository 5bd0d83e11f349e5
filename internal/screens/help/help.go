// Package help shows the key bindings.
package help

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathflow/internal/router"
	"github.com/abhisek/mathflow/internal/screen"
	"github.com/abhisek/mathflow/internal/ui/layout"
	"github.com/abhisek/mathflow/internal/ui/theme"
)

// Binding is one documented key.
type Binding struct {
	Keys        string
	Description string
}

// Group is a titled set of bindings.
type Group struct {
	Title    string
	Bindings []Binding
}

// Groups lists every key binding of the textbook screen.
var Groups = []Group{
	{
		Title: "Anywhere",
		Bindings: []Binding{
			{"ctrl+t", "Switch between Theory and Practice"},
			{"ctrl+n / ctrl+p", "Next / previous lesson"},
			{"ctrl+b", "Show or hide the lesson list"},
			{"ctrl+l", "Move to the lesson list"},
			{"ctrl+a", "Open, focus or close the AI tutor"},
			{"ctrl+g", "Show or close this list"},
			{"esc", "Back to the lesson"},
			{"ctrl+c", "Quit"},
		},
	},
	{
		Title: "Theory",
		Bindings: []Binding{
			{"↑ / ↓", "Move between blocks"},
			{"enter", "Reveal the next answer on fraction cards"},
			{"s", "Read a character's remark aloud"},
		},
	},
	{
		Title: "Practice",
		Bindings: []Binding{
			{"↑ / ↓", "Move between questions"},
			{"tab / shift+tab", "Move between fraction parts"},
			{"← / →", "Pick an option"},
			{"space", "Choose the highlighted option"},
			{"enter", "Check the answer"},
			{"ctrl+r", "Clear a wrong answer and try again"},
		},
	},
}

// Screen renders Groups.
type Screen struct{}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the help screen.
func New() *Screen {
	return &Screen{}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

// Update closes the screen on the key that opened it.
func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+g" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	keyWidth := 0
	for _, g := range Groups {
		for _, b := range g.Bindings {
			keyWidth = max(keyWidth, lipgloss.Width(b.Keys))
		}
	}

	var parts []string
	for _, g := range Groups {
		lines := []string{theme.Subtitle.Render(g.Title)}
		for _, b := range g.Bindings {
			key := theme.Badge.Width(keyWidth + 2).Render(b.Keys)
			lines = append(lines, key+"  "+theme.Body.Render(b.Description))
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(theme.Card.Render(strings.Join(parts, "\n\n")))
}

func (s *Screen) Title() string {
	return "Keys"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc/Ctrl+G", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
