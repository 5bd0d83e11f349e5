// Package practice holds the per-question interaction state of the
// practice tab and decides which control each question gets.
package practice

import "github.com/abhisek/mathflow/internal/content"

// Control is the kind of input a question is answered with.
type Control int

const (
	ControlText Control = iota
	ControlFraction
	ControlSelect
	ControlInfo
)

func (c Control) String() string {
	switch c {
	case ControlText:
		return "text"
	case ControlFraction:
		return "fraction"
	case ControlSelect:
		return "select"
	case ControlInfo:
		return "info"
	}
	return "unknown"
}

// ControlFor picks the control for a question.
func ControlFor(q content.Question) Control {
	switch q.Type {
	case content.TypeInfo:
		return ControlInfo
	case content.TypeSelect:
		return ControlSelect
	case content.TypeInput:
		if q.InputKind == content.InputFraction {
			return ControlFraction
		}
	}
	return ControlText
}
