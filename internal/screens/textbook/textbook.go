// Package textbook is the main screen: a lesson sidebar, theory and
// practice tabs and the AI tutor panel.
package textbook

import (
	"context"
	"errors"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/mathflow/internal/answer"
	"github.com/abhisek/mathflow/internal/assistant"
	"github.com/abhisek/mathflow/internal/content"
	"github.com/abhisek/mathflow/internal/llm"
	"github.com/abhisek/mathflow/internal/mathrender"
	"github.com/abhisek/mathflow/internal/nav"
	"github.com/abhisek/mathflow/internal/practice"
	"github.com/abhisek/mathflow/internal/router"
	"github.com/abhisek/mathflow/internal/screen"
	"github.com/abhisek/mathflow/internal/screens/help"
	"github.com/abhisek/mathflow/internal/speech"
	"github.com/abhisek/mathflow/internal/theory"
	"github.com/abhisek/mathflow/internal/ui/components"
	"github.com/abhisek/mathflow/internal/ui/layout"
)

// Notices shown in the status line.
const (
	noticeNoSpeech = "Speech output is not available on this system."
	noticeSpeaking = "Reading aloud…"
)

type focusArea int

const (
	focusContent focusArea = iota
	focusSidebar
	focusAssistant
)

// Deps are the collaborators the screen needs.
type Deps struct {
	Catalog  *content.Catalog
	Renderer mathrender.Renderer
	Bridge   *assistant.Bridge
	Speaker  speech.Speaker
	Logger   *zap.Logger
	// StartLesson is the lesson shown first; "" means the default lesson.
	StartLesson string
}

// Screen implements screen.Screen for the textbook.
type Screen struct {
	catalog  *content.Catalog
	renderer mathrender.Renderer
	bridge   *assistant.Bridge
	speaker  speech.Speaker
	logger   *zap.Logger

	nav     nav.State
	answers *practice.Arena
	reveals *theory.Arena
	menu    components.Menu
	focus   focusArea

	questionCursor int
	blockCursor    int
	field          answer.Field
	highlight      map[practice.Key]int

	assistantOpen bool
	transcript    *assistant.Transcript
	input         components.TextInput

	notice string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.TabProvider = (*Screen)(nil)

// New creates the textbook screen.
func New(deps Deps) *Screen {
	if deps.Renderer == nil {
		deps.Renderer = mathrender.New()
	}
	if deps.Bridge == nil {
		deps.Bridge = assistant.NewBridge(nil, assistant.DefaultConfig(), deps.Logger)
	}
	if deps.Speaker == nil {
		deps.Speaker = speech.Nop{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	s := &Screen{
		catalog:    deps.Catalog,
		renderer:   deps.Renderer,
		bridge:     deps.Bridge,
		speaker:    deps.Speaker,
		logger:     deps.Logger,
		nav:        nav.New(deps.StartLesson),
		answers:    practice.NewArena(),
		reveals:    theory.NewArena(),
		field:      answer.FieldNumerator,
		highlight:  make(map[practice.Key]int),
		transcript: assistant.NewTranscript(),
		input:      components.NewTextInput("Ask about this lesson…", 200),
	}
	s.menu = components.NewMenu(s.menuItems()).SelectID(s.current().ID)
	return s
}

func (s *Screen) menuItems() []components.MenuItem {
	lessons := s.catalog.Lessons()
	items := make([]components.MenuItem, 0, len(lessons))
	for _, l := range lessons {
		id := l.ID
		item := components.MenuItem{
			ID:    id,
			Label: l.Title,
			Action: func() tea.Cmd {
				return func() tea.Msg { return lessonSelectedMsg{ID: id} }
			},
		}
		if id == content.DiagnosticLessonID {
			item.Special = true
			item.Prefix = "★"
		} else {
			item.Prefix = strconv.Itoa(s.catalog.Number(id)) + "."
		}
		items = append(items, item)
	}
	return items
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

// Title returns the active lesson title for the header.
func (s *Screen) Title() string {
	return s.current().Title
}

// ActiveTab returns the tab shown in the header.
func (s *Screen) ActiveTab() string {
	return string(s.nav.Tab)
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch s.focus {
	case focusSidebar:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Lesson"},
			{Key: "Enter", Description: "Open"},
			{Key: "Esc", Description: "Back"},
		}
	case focusAssistant:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Send"},
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+A", Description: "Close tutor"},
		}
	}
	if s.nav.Tab == nav.TabTheory {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Block"},
			{Key: "Enter", Description: "Show answer"},
			{Key: "S", Description: "Read aloud"},
			{Key: "Ctrl+T", Description: "Practice"},
			{Key: "Ctrl+A", Description: "Tutor"},
			{Key: "Ctrl+G", Description: "Help"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Question"},
		{Key: "Enter", Description: "Check"},
		{Key: "Ctrl+R", Description: "Retry"},
		{Key: "Ctrl+T", Description: "Theory"},
		{Key: "Ctrl+A", Description: "Tutor"},
		{Key: "Ctrl+G", Description: "Help"},
	}
}

func (s *Screen) current() content.Lesson {
	return s.nav.Current(s.catalog)
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case lessonSelectedMsg:
		s.selectLesson(msg.ID)
		s.focus = focusContent
		return s, nil

	case tutorAnswerMsg:
		s.transcript.Finish(msg.Text)
		return s, nil

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}

	if s.focus == focusAssistant {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+t":
		s.nav.ToggleTab()
		s.notice = ""
		return nil
	case "ctrl+b":
		s.nav.ToggleSidebar()
		if !s.nav.SidebarOpen && s.focus == focusSidebar {
			s.focus = focusContent
		}
		return nil
	case "ctrl+l":
		if !s.nav.SidebarOpen {
			s.nav.ToggleSidebar()
		}
		s.setFocus(focusSidebar)
		return nil
	case "ctrl+n":
		if id, ok := s.nav.Next(s.catalog); ok {
			s.selectLesson(id)
		}
		return nil
	case "ctrl+p":
		if id, ok := s.nav.Prev(s.catalog); ok {
			s.selectLesson(id)
		}
		return nil
	case "ctrl+a":
		return s.toggleAssistant()
	case "ctrl+g":
		return func() tea.Msg { return router.PushScreenMsg{Screen: help.New()} }
	case "esc":
		s.setFocus(focusContent)
		return nil
	}

	switch s.focus {
	case focusSidebar:
		if msg.String() == "tab" {
			s.setFocus(focusContent)
			return nil
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return cmd
	case focusAssistant:
		if msg.String() == "enter" {
			return s.sendQuestion()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return cmd
	}

	lesson := s.current()
	if s.nav.Tab == nav.TabTheory {
		s.handleTheoryKey(msg, lesson)
		return nil
	}
	s.handlePracticeKey(msg, lesson)
	return nil
}

func (s *Screen) setFocus(f focusArea) {
	if s.focus == focusAssistant && f != focusAssistant {
		s.input.Blur()
	}
	s.focus = f
}

// selectLesson switches lessons. Interaction state of the lesson being
// left is discarded.
func (s *Screen) selectLesson(id string) {
	old := s.current().ID
	if !s.nav.Select(id) {
		return
	}
	now := s.current().ID
	if now == old {
		return
	}
	s.answers.DropLesson(old)
	s.reveals.DropLesson(old)
	for k := range s.highlight {
		if k.LessonID == old {
			delete(s.highlight, k)
		}
	}
	s.questionCursor = 0
	s.blockCursor = 0
	s.field = answer.FieldNumerator
	s.notice = ""
	s.menu = s.menu.SelectID(now)
	s.logger.Info("lesson selected", zap.String("lesson", now), zap.String("tab", string(s.nav.Tab)))
}

// Theory

func (s *Screen) handleTheoryKey(msg tea.KeyPressMsg, lesson content.Lesson) {
	blocks := lesson.Theory
	if len(blocks) == 0 {
		return
	}
	s.blockCursor = clamp(s.blockCursor, 0, len(blocks)-1)

	switch msg.String() {
	case "up", "k":
		s.blockCursor = clamp(s.blockCursor-1, 0, len(blocks)-1)
		s.notice = ""
	case "down", "j", "tab":
		s.blockCursor = clamp(s.blockCursor+1, 0, len(blocks)-1)
		s.notice = ""
	case "enter", "space", "r":
		if b, ok := blocks[s.blockCursor].(content.FractionCards); ok {
			rv := s.reveals.For(theory.Key{LessonID: lesson.ID, Block: s.blockCursor}, len(b.Items))
			rv.Reveal()
		}
	case "s":
		if b, ok := blocks[s.blockCursor].(content.CharacterSpeech); ok {
			s.speak(b.SpeechText())
		}
	}
}

func (s *Screen) speak(text string) {
	err := s.speaker.Speak(text)
	switch {
	case errors.Is(err, speech.ErrUnavailable):
		s.notice = noticeNoSpeech
	case err != nil:
		s.logger.Warn("speech failed", zap.Error(err))
		s.notice = noticeNoSpeech
	default:
		s.notice = noticeSpeaking
	}
}

// Practice

// practiceItem is one focusable question with its exercise.
type practiceItem struct {
	exercise int
	question content.Question
}

func practiceItems(lesson content.Lesson) []practiceItem {
	var items []practiceItem
	for i, ex := range lesson.Practice {
		for _, q := range practice.Focusable(ex) {
			items = append(items, practiceItem{exercise: i, question: q})
		}
	}
	return items
}

func (s *Screen) focusedQuestion(lesson content.Lesson) (content.Question, bool) {
	items := practiceItems(lesson)
	if len(items) == 0 {
		return content.Question{}, false
	}
	s.questionCursor = clamp(s.questionCursor, 0, len(items)-1)
	return items[s.questionCursor].question, true
}

func (s *Screen) moveQuestion(lesson content.Lesson, delta int) {
	n := len(practiceItems(lesson))
	if n == 0 {
		return
	}
	s.questionCursor = clamp(s.questionCursor+delta, 0, n-1)
	s.field = answer.FieldNumerator
}

func (s *Screen) handlePracticeKey(msg tea.KeyPressMsg, lesson content.Lesson) {
	q, ok := s.focusedQuestion(lesson)
	if !ok {
		return
	}
	k := practice.Key{LessonID: lesson.ID, QuestionID: q.ID}
	control := practice.ControlFor(q)

	switch msg.String() {
	case "up":
		s.moveQuestion(lesson, -1)
		return
	case "down":
		s.moveQuestion(lesson, 1)
		return
	case "enter":
		if control == practice.ControlSelect {
			s.chooseHighlighted(k, q)
		}
		s.submit(k, q)
		return
	case "ctrl+r":
		if s.answers.Status(k) == practice.StatusIncorrect {
			s.answers.Reset(k)
			s.field = answer.FieldNumerator
		}
		return
	}

	switch control {
	case practice.ControlText:
		s.editText(msg, k, lesson)
	case practice.ControlFraction:
		s.editFraction(msg, k)
	case practice.ControlSelect:
		s.editSelect(msg, k, q, lesson)
	}
}

func (s *Screen) editText(msg tea.KeyPressMsg, k practice.Key, lesson content.Lesson) {
	cur := s.answers.Answer(k)
	switch msg.String() {
	case "tab":
		s.moveQuestion(lesson, 1)
	case "shift+tab":
		s.moveQuestion(lesson, -1)
	case "backspace":
		s.answers.SetAnswer(k, dropLastRune(cur))
	default:
		if msg.Text != "" {
			s.answers.SetAnswer(k, cur+msg.Text)
		}
	}
}

func (s *Screen) editFraction(msg tea.KeyPressMsg, k practice.Key) {
	cur := s.answers.Fields(k).Get(s.field)
	switch msg.String() {
	case "tab", "right", "/":
		s.field = components.NextField(s.field)
	case "shift+tab", "left":
		s.field = components.PrevField(s.field)
	case "backspace":
		s.answers.EditField(k, s.field, dropLastRune(cur))
	case "space":
		s.field = components.NextField(s.field)
	default:
		if msg.Text != "" {
			s.answers.EditField(k, s.field, cur+msg.Text)
		}
	}
}

func (s *Screen) editSelect(msg tea.KeyPressMsg, k practice.Key, q content.Question, lesson content.Lesson) {
	if len(q.Options) == 0 {
		return
	}
	h := clamp(s.highlight[k], 0, len(q.Options)-1)
	switch msg.String() {
	case "left", "shift+tab":
		s.highlight[k] = clamp(h-1, 0, len(q.Options)-1)
	case "right":
		s.highlight[k] = clamp(h+1, 0, len(q.Options)-1)
	case "tab":
		s.moveQuestion(lesson, 1)
	case "space":
		s.answers.Select(k, q, q.Options[h])
	default:
		// Typing an option's text picks it, e.g. "t" for T.
		if msg.Text == "" {
			return
		}
		for i, opt := range q.Options {
			if strings.EqualFold(opt, msg.Text) {
				s.highlight[k] = i
				s.answers.Select(k, q, opt)
				return
			}
		}
	}
}

func (s *Screen) chooseHighlighted(k practice.Key, q content.Question) {
	if len(q.Options) == 0 || s.answers.Answer(k) != "" {
		return
	}
	h := clamp(s.highlight[k], 0, len(q.Options)-1)
	s.answers.Select(k, q, q.Options[h])
}

func (s *Screen) submit(k practice.Key, q content.Question) {
	status, checked := s.answers.Submit(k, q)
	if !checked {
		return
	}
	s.logger.Debug("answer checked",
		zap.String("lesson", k.LessonID),
		zap.String("question", k.QuestionID),
		zap.String("status", status.String()))
}

// Assistant

func (s *Screen) toggleAssistant() tea.Cmd {
	switch {
	case !s.assistantOpen:
		s.assistantOpen = true
		s.focus = focusAssistant
		return s.input.Focus()
	case s.focus != focusAssistant:
		s.focus = focusAssistant
		return s.input.Focus()
	}
	s.assistantOpen = false
	s.setFocus(focusContent)
	return nil
}

// sendQuestion starts an assistant request in the background. Only one
// question is in flight at a time.
func (s *Screen) sendQuestion() tea.Cmd {
	question := strings.TrimSpace(s.input.Value())
	if !s.transcript.Begin(question) {
		return nil
	}
	s.input.Reset()

	lesson := s.current()
	snippet := assistant.BuildContext(&lesson, s.nav.Tab)
	bridge := s.bridge
	ctx := llm.WithLesson(context.Background(), lesson.ID)
	return func() tea.Msg {
		return tutorAnswerMsg{Text: bridge.Ask(ctx, question, snippet)}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func dropLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}
