package nav

import (
	"testing"

	"github.com/abhisek/mathflow/internal/content"
)

func testCatalog(t *testing.T) *content.Catalog {
	t.Helper()
	cat, err := content.NewCatalog("u", "Unit", []content.Lesson{
		{ID: content.DiagnosticLessonID, Title: "Diagnostic"},
		{ID: "lesson-a", Title: "A"},
		{ID: content.DefaultLessonID, Title: "Investigation"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return cat
}

func TestNew_Defaults(t *testing.T) {
	s := New("")
	if s.ActiveLessonID != content.DefaultLessonID {
		t.Errorf("ActiveLessonID = %q", s.ActiveLessonID)
	}
	if s.Tab != TabPractice {
		t.Errorf("Tab = %q, want practice", s.Tab)
	}
	if !s.SidebarOpen {
		t.Error("sidebar should start open")
	}
}

func TestSelect_KeepsTab(t *testing.T) {
	s := New("")
	s.SetTab(TabTheory)
	if !s.Select("lesson-a") {
		t.Error("Select reported no change")
	}
	if s.Tab != TabTheory {
		t.Errorf("Select changed tab to %q", s.Tab)
	}
	if s.Select("lesson-a") {
		t.Error("reselecting the same lesson reported a change")
	}
}

func TestToggles(t *testing.T) {
	s := New("")
	s.ToggleTab()
	if s.Tab != TabTheory {
		t.Errorf("ToggleTab = %q", s.Tab)
	}
	s.ToggleTab()
	if s.Tab != TabPractice {
		t.Errorf("ToggleTab twice = %q", s.Tab)
	}
	s.ToggleSidebar()
	if s.SidebarOpen {
		t.Error("ToggleSidebar did not close")
	}
}

func TestCurrent_FallsBackToFirst(t *testing.T) {
	cat := testCatalog(t)
	s := New("does-not-exist")
	if got := s.Current(cat).ID; got != content.DiagnosticLessonID {
		t.Errorf("Current = %q, want first lesson", got)
	}
}

func TestNextPrev(t *testing.T) {
	cat := testCatalog(t)
	s := New("lesson-a")

	if id, ok := s.Next(cat); !ok || id != content.DefaultLessonID {
		t.Errorf("Next = %q, %v", id, ok)
	}
	if id, ok := s.Prev(cat); !ok || id != content.DiagnosticLessonID {
		t.Errorf("Prev = %q, %v", id, ok)
	}

	s.Select(content.DefaultLessonID)
	if _, ok := s.Next(cat); ok {
		t.Error("Next past the last lesson")
	}
}
