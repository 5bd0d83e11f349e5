package assistant

import (
	"strings"

	"github.com/abhisek/mathflow/internal/content"
	"github.com/abhisek/mathflow/internal/nav"
)

// FallbackContext is sent when no lesson is active.
const FallbackContext = "Math basics"

// BuildContext summarizes what the student is looking at: theory contents
// on the theory tab, exercise instructions on the practice tab.
func BuildContext(lesson *content.Lesson, tab nav.Tab) string {
	if lesson == nil {
		return FallbackContext
	}

	var parts []string
	label := "Exercises: "
	if tab == nav.TabTheory {
		label = "Content: "
		for _, b := range lesson.Theory {
			if c := content.ContentOf(b); c != "" {
				parts = append(parts, c)
			}
		}
	} else {
		for _, ex := range lesson.Practice {
			if ex.Instruction != "" {
				parts = append(parts, ex.Instruction)
			}
		}
	}

	return "Lesson: " + lesson.Title + ". " + label + strings.Join(parts, " ")
}
