package practice

import "github.com/abhisek/mathflow/internal/content"

// Row is one line of a TABLE exercise: the questions sharing a label.
type Row struct {
	Label string
	Value *content.Question // first INPUT question
	Kind  *content.Question // first SELECT question
}

// TableColumns are the headers of a TABLE exercise.
var TableColumns = []string{"Unit fraction", "Decimal", "Type (T/R)", "Check"}

// Rows groups a TABLE exercise's questions by label, in first-seen order.
// Unlabeled questions are not part of any row.
func Rows(ex content.Exercise) []Row {
	var rows []Row
	index := make(map[string]int)

	for i := range ex.Questions {
		q := &ex.Questions[i]
		if q.Label == "" {
			continue
		}
		ri, ok := index[q.Label]
		if !ok {
			ri = len(rows)
			index[q.Label] = ri
			rows = append(rows, Row{Label: q.Label})
		}
		row := &rows[ri]
		switch q.Type {
		case content.TypeInput:
			if row.Value == nil {
				row.Value = q
			}
		case content.TypeSelect:
			if row.Kind == nil {
				row.Kind = q
			}
		}
	}
	return rows
}

// Questions returns the questions of a row in focus order.
func (r Row) Questions() []content.Question {
	var out []content.Question
	if r.Value != nil {
		out = append(out, *r.Value)
	}
	if r.Kind != nil {
		out = append(out, *r.Kind)
	}
	return out
}

// Focusable lists the questions the student can answer, in display order.
func Focusable(ex content.Exercise) []content.Question {
	if ex.DisplayMode == content.DisplayTable {
		var out []content.Question
		for _, r := range Rows(ex) {
			out = append(out, r.Questions()...)
		}
		return out
	}

	var out []content.Question
	for _, q := range ex.Questions {
		if q.Checkable() {
			out = append(out, q)
		}
	}
	return out
}
