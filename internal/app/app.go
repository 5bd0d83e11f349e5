package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/mathflow/internal/assistant"
	"github.com/abhisek/mathflow/internal/content"
	"github.com/abhisek/mathflow/internal/mathrender"
	"github.com/abhisek/mathflow/internal/router"
	"github.com/abhisek/mathflow/internal/screen"
	"github.com/abhisek/mathflow/internal/screens/textbook"
	"github.com/abhisek/mathflow/internal/speech"
	"github.com/abhisek/mathflow/internal/ui/layout"
)

// Options holds the dependencies injected into the TUI.
type Options struct {
	Catalog     *content.Catalog
	Renderer    mathrender.Renderer
	Bridge      *assistant.Bridge
	Speaker     speech.Speaker
	Logger      *zap.Logger
	StartLesson string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the textbook screen.
func newAppModel(opts Options) AppModel {
	tb := textbook.New(textbook.Deps{
		Catalog:     opts.Catalog,
		Renderer:    opts.Renderer,
		Bridge:      opts.Bridge,
		Speaker:     opts.Speaker,
		Logger:      opts.Logger,
		StartLesson: opts.StartLesson,
	})
	return AppModel{
		router: router.New(tb),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// At the root the textbook uses esc to move focus.
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, tab := "", ""
	if active != nil {
		title = active.Title()
		if tp, ok := active.(screen.TabProvider); ok {
			tab = tp.ActiveTab()
		}
	}

	header := layout.RenderHeader(title, tab, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(kp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
