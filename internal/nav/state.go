// Package nav tracks which lesson and tab the student is looking at.
package nav

import "github.com/abhisek/mathflow/internal/content"

// Tab is a lesson view.
type Tab string

const (
	TabTheory   Tab = "theory"
	TabPractice Tab = "practice"
)

// State is the navigation state of one session.
type State struct {
	ActiveLessonID string
	Tab            Tab
	SidebarOpen    bool
}

// New starts on the given lesson, falling back to the default lesson,
// with the practice tab selected and the sidebar open.
func New(lessonID string) State {
	if lessonID == "" {
		lessonID = content.DefaultLessonID
	}
	return State{
		ActiveLessonID: lessonID,
		Tab:            TabPractice,
		SidebarOpen:    true,
	}
}

// Select switches lessons, leaving the tab unchanged. It reports whether
// the active lesson changed.
func (s *State) Select(lessonID string) bool {
	if lessonID == s.ActiveLessonID {
		return false
	}
	s.ActiveLessonID = lessonID
	return true
}

// SetTab switches tabs.
func (s *State) SetTab(t Tab) {
	s.Tab = t
}

// ToggleTab flips between theory and practice.
func (s *State) ToggleTab() {
	if s.Tab == TabTheory {
		s.Tab = TabPractice
	} else {
		s.Tab = TabTheory
	}
}

// ToggleSidebar opens or closes the lesson list.
func (s *State) ToggleSidebar() {
	s.SidebarOpen = !s.SidebarOpen
}

// Current returns the active lesson, or the first lesson when the active
// ID is unknown.
func (s State) Current(c *content.Catalog) content.Lesson {
	return c.LessonOrFirst(s.ActiveLessonID)
}

// Next returns the ID of the lesson after the active one, if any.
func (s State) Next(c *content.Catalog) (string, bool) {
	return s.step(c, 1)
}

// Prev returns the ID of the lesson before the active one, if any.
func (s State) Prev(c *content.Catalog) (string, bool) {
	return s.step(c, -1)
}

func (s State) step(c *content.Catalog, delta int) (string, bool) {
	i := c.Index(s.Current(c).ID) + delta
	lessons := c.Lessons()
	if i < 0 || i >= len(lessons) {
		return "", false
	}
	return lessons[i].ID, true
}
