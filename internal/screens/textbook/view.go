package textbook

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathflow/internal/assistant"
	"github.com/abhisek/mathflow/internal/content"
	"github.com/abhisek/mathflow/internal/mathrender"
	"github.com/abhisek/mathflow/internal/nav"
	"github.com/abhisek/mathflow/internal/practice"
	"github.com/abhisek/mathflow/internal/theory"
	"github.com/abhisek/mathflow/internal/ui/components"
	"github.com/abhisek/mathflow/internal/ui/layout"
	"github.com/abhisek/mathflow/internal/ui/theme"
)

const (
	emptyPractice = "No exercises have been added to this lesson yet."
	emptyTheory   = "No theory has been added to this lesson yet."
	thinking      = "thinking…"
	retryHint     = "ctrl+r: try again"
)

// section is a rendered piece of the main column. The focused section
// decides the scroll position.
type section struct {
	text    string
	focused bool
}

func (s *Screen) View(width, height int) string {
	sidebarWidth := 0
	if s.nav.SidebarOpen {
		sidebarWidth = min(30, width/4)
	}
	assistantWidth := 0
	if s.assistantOpen {
		assistantWidth = min(38, width/3)
	}
	mainWidth := max(width-sidebarWidth-assistantWidth, 20)

	var cols []string
	if sidebarWidth > 0 {
		cols = append(cols, s.renderSidebar(sidebarWidth, height))
	}
	cols = append(cols, s.renderMain(mainWidth, height))
	if assistantWidth > 0 {
		cols = append(cols, s.renderAssistant(assistantWidth, height))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func panelStyle(active bool) lipgloss.Style {
	if active {
		return theme.PanelActive
	}
	return theme.Panel
}

func (s *Screen) renderSidebar(width, height int) string {
	inner := max(width-4, 8)
	title := theme.Subtitle.Render("Lessons")
	body := title + "\n\n" + s.menu.View(inner, s.focus == focusSidebar)
	return panelStyle(s.focus == focusSidebar).
		Width(width).
		Height(height).
		Render(layout.Crop(body, 0, max(height-2, 1)))
}

func (s *Screen) renderMain(width, height int) string {
	inner := max(width-4, 16)
	lesson := s.current()

	heading := theme.Title.Render(lessonHeading(s.catalog, lesson))
	var sections []section
	if s.nav.Tab == nav.TabTheory {
		sections = s.theorySections(lesson, inner)
	} else {
		sections = s.practiceSections(lesson, inner)
	}

	var b strings.Builder
	focusStart, focusEnd := 0, 0
	line := 0
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n\n")
			line += 2
		}
		n := lipgloss.Height(sec.text)
		if sec.focused {
			focusStart, focusEnd = line, line+n
		}
		b.WriteString(sec.text)
		line += n - 1
	}
	body := b.String()

	bodyHeight := max(height-2-lipgloss.Height(heading)-2, 1)
	if s.notice != "" {
		bodyHeight--
	}
	offset := layout.ScrollOffset(focusStart, focusEnd, lipgloss.Height(body), bodyHeight)
	out := heading + "\n\n" + layout.Crop(body, offset, bodyHeight)
	if s.notice != "" {
		out += "\n" + theme.Hint.Render(s.notice)
	}

	return panelStyle(s.focus == focusContent).
		Width(width).
		Height(height).
		Render(out)
}

func lessonHeading(c *content.Catalog, l content.Lesson) string {
	if n := c.Number(l.ID); n > 0 {
		return "Lesson " + strconv.Itoa(n) + ": " + l.Title
	}
	return l.Title
}

func (s *Screen) theorySections(lesson content.Lesson, width int) []section {
	if len(lesson.Theory) == 0 {
		return []section{{text: theme.Hint.Render(emptyTheory)}}
	}
	cursor := clamp(s.blockCursor, 0, len(lesson.Theory)-1)
	canSpeak := s.speaker.Available()

	sections := make([]section, 0, len(lesson.Theory))
	for i, blk := range lesson.Theory {
		focused := s.focus == focusContent && i == cursor
		var rv *theory.Reveal
		if cards, ok := blk.(content.FractionCards); ok {
			rv = s.reveals.For(theory.Key{LessonID: lesson.ID, Block: i}, len(cards.Items))
		}
		text := theory.Render(blk, rv, s.renderer, theory.Options{
			Width:    width - 3,
			Focused:  focused,
			CanSpeak: canSpeak,
		})
		style := theme.Unfocused
		if i == cursor {
			style = theme.Focused
		}
		sections = append(sections, section{text: style.Render(text), focused: i == cursor})
	}
	return sections
}

func (s *Screen) practiceSections(lesson content.Lesson, width int) []section {
	if len(lesson.Practice) == 0 {
		return []section{{text: theme.Hint.Render(emptyPractice)}}
	}

	focusedID := ""
	if q, ok := s.focusedQuestion(lesson); ok {
		focusedID = q.ID
	}

	var sections []section
	for _, ex := range lesson.Practice {
		var parts []string
		if ex.Title != "" {
			parts = append(parts, theme.Subtitle.Render(ex.Title))
		}
		if ex.Instruction != "" {
			parts = append(parts, components.Wrap(components.FormattedText(ex.Instruction, s.renderer), width))
		}

		hasFocus := false
		if ex.DisplayMode == content.DisplayTable {
			table, f := s.renderTable(lesson.ID, ex, focusedID)
			parts = append(parts, table)
			hasFocus = f
		} else {
			for _, q := range ex.Questions {
				row, f := s.renderQuestion(lesson.ID, q, focusedID, width)
				parts = append(parts, row)
				hasFocus = hasFocus || f
			}
		}
		sections = append(sections, section{
			text:    strings.Join(parts, "\n\n"),
			focused: hasFocus,
		})
	}
	return sections
}

func (s *Screen) renderQuestion(lessonID string, q content.Question, focusedID string, width int) (string, bool) {
	if !q.Checkable() {
		return s.renderInfo(q, width), false
	}

	k := practice.Key{LessonID: lessonID, QuestionID: q.ID}
	focused := s.focus == focusContent && q.ID == focusedID
	status := s.answers.Status(k)

	var prompt []string
	if q.Label != "" {
		prompt = append(prompt, theme.Badge.Render(q.Label))
	}
	if q.Latex != "" {
		prompt = append(prompt, components.Math(q.Latex, mathrender.Inline, s.renderer))
	} else if q.PreText != "" {
		prompt = append(prompt, components.FormattedText(q.PreText, s.renderer))
	}

	line := []string{strings.Join(prompt, " "), s.renderControl(k, q, focused)}
	if q.Latex == "" && q.PostText != "" {
		line = append(line, components.FormattedText(q.PostText, s.renderer))
	}
	line = append(line, s.renderCheck(k, focused, status))

	out := strings.Join(nonEmpty(line), "  ")
	if status == practice.StatusIncorrect && focused {
		out += "\n" + theme.Hint.Render(retryHint)
	}
	if focused {
		return theme.Focused.Render(out), true
	}
	return theme.Unfocused.Render(out), false
}

func (s *Screen) renderInfo(q content.Question, width int) string {
	text := q.PostText
	if text == "" {
		text = q.PreText
	}
	blk := content.CharacterSpeech{Speaker: q.Label, Content: text}
	return theme.Unfocused.Render(theory.Render(blk, nil, s.renderer, theory.Options{Width: width - 3}))
}

func (s *Screen) renderControl(k practice.Key, q content.Question, focused bool) string {
	status := s.answers.Status(k)
	switch practice.ControlFor(q) {
	case practice.ControlFraction:
		return components.FractionInput{
			Fields:  s.answers.Fields(k),
			Active:  s.field,
			Focused: focused,
			Locked:  s.answers.Locked(k),
		}.View()
	case practice.ControlSelect:
		return components.OptionRow{
			Options:   q.Options,
			Chosen:    s.answers.Answer(k),
			Highlight: s.highlight[k],
			Focused:   focused,
			Status:    status,
		}.View()
	}
	return components.AnswerField{
		Value:       s.answers.Answer(k),
		Placeholder: q.Placeholder,
		Width:       8,
		Focused:     focused,
		Status:      status,
	}.View()
}

func (s *Screen) renderCheck(k practice.Key, focused bool, status practice.Status) string {
	if status != practice.StatusUnchecked {
		return components.VerdictMark(status)
	}
	return components.NewButton("Check", s.answers.CanSubmit(k), focused).View()
}

func (s *Screen) renderTable(lessonID string, ex content.Exercise, focusedID string) (string, bool) {
	rows := practice.Rows(ex)
	cells := make([][]string, 0, len(rows)+1)
	cells = append(cells, practice.TableColumns)

	hasFocus, retry := false, false
	for _, r := range rows {
		label := components.FormattedText(r.Label, s.renderer)
		if r.Value != nil && r.Value.Latex != "" {
			label = components.Math(r.Value.Latex, mathrender.Inline, s.renderer)
		}
		row := []string{label, "", "", ""}
		var statuses []practice.Status
		for col, q := range []*content.Question{1: r.Value, 2: r.Kind} {
			if q == nil {
				continue
			}
			k := practice.Key{LessonID: lessonID, QuestionID: q.ID}
			focused := s.focus == focusContent && q.ID == focusedID
			hasFocus = hasFocus || focused
			retry = retry || (focused && s.answers.Status(k) == practice.StatusIncorrect)
			row[col] = s.renderControl(k, *q, focused)
			statuses = append(statuses, s.answers.Status(k))
		}
		row[3] = rowVerdict(statuses)
		cells = append(cells, row)
	}

	widths := make([]int, len(practice.TableColumns))
	for _, row := range cells {
		for i, c := range row {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}

	lines := make([]string, 0, len(cells)+1)
	for i, row := range cells {
		padded := make([]string, len(row))
		for j, c := range row {
			padded[j] = lipgloss.NewStyle().Width(widths[j]).Render(c)
		}
		text := strings.Join(padded, "  ")
		if i == 0 {
			text = theme.Subtitle.Render(text)
		}
		lines = append(lines, text)
		if i == 0 {
			total := 0
			for _, w := range widths {
				total += w + 2
			}
			lines = append(lines, theme.Disabled.Render(strings.Repeat("─", max(total-2, 1))))
		}
	}
	if retry {
		lines = append(lines, theme.Hint.Render(retryHint))
	}
	return strings.Join(lines, "\n"), hasFocus
}

// rowVerdict is ✗ when any cell is wrong, ✓ once every cell is right.
func rowVerdict(statuses []practice.Status) string {
	if len(statuses) == 0 {
		return ""
	}
	all := true
	for _, st := range statuses {
		if st == practice.StatusIncorrect {
			return components.VerdictMark(st)
		}
		all = all && st == practice.StatusCorrect
	}
	if all {
		return components.VerdictMark(practice.StatusCorrect)
	}
	return ""
}

func (s *Screen) renderAssistant(width, height int) string {
	inner := max(width-4, 10)
	active := s.focus == focusAssistant

	var lines []string
	lines = append(lines, theme.Subtitle.Render("AI Tutor"))
	if s.bridge.Demo() {
		lines = append(lines, theme.Hint.Render(components.Wrap("Demo mode: no API key configured.", inner)))
	}
	for _, e := range s.transcript.Entries() {
		who := theme.Badge.Render("Tutor")
		if e.Role == assistant.RoleStudent {
			who = theme.Selected.Render("You")
		}
		lines = append(lines, "", who, components.Wrap(components.FormattedText(e.Text, s.renderer), inner))
	}
	if s.transcript.Pending() {
		lines = append(lines, "", theme.Hint.Render(thinking))
	}
	history := strings.Join(lines, "\n")

	input := s.input.View()
	histHeight := max(height-2-lipgloss.Height(input)-1, 1)
	total := lipgloss.Height(history)
	// Keep the newest messages in view.
	history = layout.Crop(history, max(total-histHeight, 0), histHeight)
	gap := max(histHeight-lipgloss.Height(history), 0)

	body := history + strings.Repeat("\n", gap+1) + input
	return panelStyle(active).
		Width(width).
		Height(height).
		Render(body)
}

func nonEmpty(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
