package content

import (
	"fmt"
	"strings"
)

// validateLessons performs the structural checks the schema cannot express.
// Returns a combined error describing all problems found, or nil if valid.
func validateLessons(lessons []Lesson) error {
	var errs []string

	if len(lessons) == 0 {
		errs = append(errs, "catalog has no lessons")
	}

	lessonIDs := make(map[string]bool, len(lessons))
	for _, l := range lessons {
		if l.ID == "" {
			errs = append(errs, fmt.Sprintf("lesson %q has an empty ID", l.Title))
			continue
		}
		if lessonIDs[l.ID] {
			errs = append(errs, fmt.Sprintf("duplicate lesson ID: %q", l.ID))
		}
		lessonIDs[l.ID] = true

		// Question IDs key interaction state, so they must be unique per lesson.
		questionIDs := make(map[string]bool)
		for _, ex := range l.Practice {
			for _, q := range ex.Questions {
				if q.ID == "" {
					errs = append(errs, fmt.Sprintf("lesson %q exercise %q: question with empty ID", l.ID, ex.ID))
					continue
				}
				if questionIDs[q.ID] {
					errs = append(errs, fmt.Sprintf("lesson %q: duplicate question ID %q", l.ID, q.ID))
				}
				questionIDs[q.ID] = true
				errs = append(errs, validateQuestion(l.ID, q)...)
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func validateQuestion(lessonID string, q Question) []string {
	var errs []string
	where := fmt.Sprintf("lesson %q question %q", lessonID, q.ID)

	switch q.Type {
	case TypeInfo:
		if q.CorrectAnswer != "" {
			errs = append(errs, where+": INFO question carries a correct answer")
		}
		return errs
	case TypeSelect:
		if len(q.Options) == 0 {
			errs = append(errs, where+": SELECT question has no options")
		}
		if q.CorrectAnswer != "" && q.CorrectAnswer != "*" && !containsOption(q.Options, q.CorrectAnswer) {
			errs = append(errs, fmt.Sprintf("%s: correct answer %q is not an option", where, q.CorrectAnswer))
		}
	case TypeInput:
		switch q.InputKind {
		case InputText, InputFraction:
		default:
			errs = append(errs, fmt.Sprintf("%s: unknown input type %q", where, q.InputKind))
		}
	default:
		errs = append(errs, fmt.Sprintf("%s: unknown question type %q", where, q.Type))
	}

	if strings.TrimSpace(q.CorrectAnswer) == "" {
		errs = append(errs, where+": missing correct answer")
	}
	return errs
}

func containsOption(options []string, v string) bool {
	for _, o := range options {
		if strings.EqualFold(strings.TrimSpace(o), strings.TrimSpace(v)) {
			return true
		}
	}
	return false
}
