package practice

import (
	"testing"

	"github.com/abhisek/mathflow/internal/content"
)

func TestControlFor(t *testing.T) {
	tests := []struct {
		q    content.Question
		want Control
	}{
		{content.Question{Type: content.TypeInput, InputKind: content.InputText}, ControlText},
		{content.Question{Type: content.TypeInput, InputKind: content.InputFraction}, ControlFraction},
		{content.Question{Type: content.TypeInput}, ControlText},
		{content.Question{Type: content.TypeSelect, Options: []string{"a"}}, ControlSelect},
		{content.Question{Type: content.TypeInfo}, ControlInfo},
	}
	for _, tc := range tests {
		if got := ControlFor(tc.q); got != tc.want {
			t.Errorf("ControlFor(%s/%s) = %s, want %s", tc.q.Type, tc.q.InputKind, got, tc.want)
		}
	}
}

func tableExercise() content.Exercise {
	return content.Exercise{
		ID:          "t",
		DisplayMode: content.DisplayTable,
		Questions: []content.Question{
			{ID: "h-dec", Label: "1/2", Type: content.TypeInput, CorrectAnswer: "0.5"},
			{ID: "t-dec", Label: "1/3", Type: content.TypeInput, CorrectAnswer: "0.333..."},
			{ID: "h-type", Label: "1/2", Type: content.TypeSelect, Options: []string{"T", "R"}, CorrectAnswer: "T"},
			{ID: "h-extra", Label: "1/2", Type: content.TypeInput, CorrectAnswer: "x"},
			{ID: "loose", Type: content.TypeInput, CorrectAnswer: "1"},
			{ID: "t-type", Label: "1/3", Type: content.TypeSelect, Options: []string{"T", "R"}, CorrectAnswer: "R"},
		},
	}
}

func TestRows(t *testing.T) {
	rows := Rows(tableExercise())
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Label != "1/2" || rows[1].Label != "1/3" {
		t.Errorf("row order = %q, %q", rows[0].Label, rows[1].Label)
	}
	if rows[0].Value.ID != "h-dec" || rows[0].Kind.ID != "h-type" {
		t.Errorf("row 0 = %s/%s, want first INPUT and first SELECT", rows[0].Value.ID, rows[0].Kind.ID)
	}
	if rows[1].Value.ID != "t-dec" || rows[1].Kind.ID != "t-type" {
		t.Errorf("row 1 = %s/%s", rows[1].Value.ID, rows[1].Kind.ID)
	}
}

func TestRows_PartialRow(t *testing.T) {
	ex := content.Exercise{
		DisplayMode: content.DisplayTable,
		Questions: []content.Question{
			{ID: "only", Label: "1/9", Type: content.TypeSelect, Options: []string{"T", "R"}, CorrectAnswer: "R"},
		},
	}
	rows := Rows(ex)
	if len(rows) != 1 || rows[0].Value != nil || rows[0].Kind == nil {
		t.Errorf("rows = %+v", rows)
	}
}

func TestFocusable(t *testing.T) {
	got := Focusable(tableExercise())
	want := []string{"h-dec", "h-type", "t-dec", "t-type"}
	if len(got) != len(want) {
		t.Fatalf("got %d focusable, want %d", len(got), len(want))
	}
	for i, q := range got {
		if q.ID != want[i] {
			t.Errorf("focusable[%d] = %s, want %s", i, q.ID, want[i])
		}
	}

	list := content.Exercise{
		DisplayMode: content.DisplayList,
		Questions: []content.Question{
			{ID: "info", Type: content.TypeInfo},
			{ID: "a", Type: content.TypeInput, CorrectAnswer: "1"},
		},
	}
	got = Focusable(list)
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("list focusable = %+v", got)
	}
}
