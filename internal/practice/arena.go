package practice

import (
	"slices"

	"github.com/abhisek/mathflow/internal/answer"
	"github.com/abhisek/mathflow/internal/content"
)

// Status is the verdict recorded for a question.
type Status int

const (
	StatusUnchecked Status = iota
	StatusCorrect
	StatusIncorrect
)

func (s Status) String() string {
	switch s {
	case StatusUnchecked:
		return "unchecked"
	case StatusCorrect:
		return "correct"
	case StatusIncorrect:
		return "incorrect"
	}
	return "unknown"
}

// Key scopes interaction state to one question of one lesson.
type Key struct {
	LessonID   string
	QuestionID string
}

type entry struct {
	answer string
	fields answer.FractionFields
	status Status
}

// Arena holds the answers and verdicts of every question the student has
// touched. Absent keys read as empty and unchecked.
type Arena struct {
	entries map[Key]*entry
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{entries: make(map[Key]*entry)}
}

func (a *Arena) get(k Key) *entry {
	e, ok := a.entries[k]
	if !ok {
		e = &entry{}
		a.entries[k] = e
	}
	return e
}

// Answer returns the current answer for k.
func (a *Arena) Answer(k Key) string {
	if e, ok := a.entries[k]; ok {
		return e.answer
	}
	return ""
}

// Status returns the verdict for k.
func (a *Arena) Status(k Key) Status {
	if e, ok := a.entries[k]; ok {
		return e.status
	}
	return StatusUnchecked
}

// Fields returns the fraction sub-fields for k.
func (a *Arena) Fields(k Key) answer.FractionFields {
	if e, ok := a.entries[k]; ok {
		return e.fields
	}
	return answer.FractionFields{}
}

// Locked reports whether k was answered correctly and accepts no edits.
func (a *Arena) Locked(k Key) bool {
	return a.Status(k) == StatusCorrect
}

// CanSubmit reports whether a check would do anything.
func (a *Arena) CanSubmit(k Key) bool {
	return !a.Locked(k) && answerPresent(a.Answer(k))
}

// SetAnswer replaces the answer and clears any verdict. Rejected once the
// question is locked in as correct.
func (a *Arena) SetAnswer(k Key, v string) bool {
	if a.Locked(k) {
		return false
	}
	e := a.get(k)
	e.answer = v
	e.fields = answer.ParseFractionFields(v)
	e.status = StatusUnchecked
	return true
}

// Select chooses an option of a SELECT question. It does not check.
func (a *Arena) Select(k Key, q content.Question, option string) bool {
	if !slices.Contains(q.Options, option) {
		return false
	}
	return a.SetAnswer(k, option)
}

// EditField edits one fraction sub-field and stores the composed answer.
// The sub-fields stay as typed so partial entries survive.
func (a *Arena) EditField(k Key, field answer.Field, v string) bool {
	if a.Locked(k) {
		return false
	}
	e := a.get(k)
	e.fields = e.fields.Set(field, v)
	e.answer = e.fields.Compose()
	e.status = StatusUnchecked
	return true
}

// Submit checks the current answer against q. It returns the resulting
// status and whether a verdict was recorded; empty answers, INFO
// questions and locked questions are left untouched.
func (a *Arena) Submit(k Key, q content.Question) (Status, bool) {
	if !q.Checkable() || a.Locked(k) {
		return a.Status(k), false
	}
	ok, checked := answer.Evaluate(a.Answer(k), q.CorrectAnswer)
	if !checked {
		return a.Status(k), false
	}
	e := a.get(k)
	if ok {
		e.status = StatusCorrect
	} else {
		e.status = StatusIncorrect
	}
	return e.status, true
}

// Reset returns k to its initial empty, unchecked state.
func (a *Arena) Reset(k Key) {
	delete(a.entries, k)
}

// DropLesson discards all state owned by a lesson.
func (a *Arena) DropLesson(lessonID string) {
	for k := range a.entries {
		if k.LessonID == lessonID {
			delete(a.entries, k)
		}
	}
}

// Len returns the number of questions with state.
func (a *Arena) Len() int {
	return len(a.entries)
}

func answerPresent(s string) bool {
	_, checked := answer.Evaluate(s, answer.Wildcard)
	return checked
}
