package theory

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/mathflow/internal/content"
	"github.com/abhisek/mathflow/internal/mathrender"
)

func render(b content.Block, rv *Reveal) string {
	return ansi.Strip(Render(b, rv, mathrender.New(), Options{Width: 60}))
}

func TestRender_EveryKind(t *testing.T) {
	blocks := map[content.BlockKind]content.Block{
		content.KindText:            content.Text{Content: "hello"},
		content.KindLatexBlock:      content.LatexBlock{Content: `\frac{1}{2}`},
		content.KindTip:             content.Tip{Content: "careful"},
		content.KindCharacterSpeech: content.CharacterSpeech{Content: "hi"},
		content.KindFractionBlock:   content.FractionBlock{},
		content.KindFractionCards:   content.FractionCards{Content: "q", Items: []string{"x"}},
		content.KindExample:         content.Example{Content: "e"},
		content.KindImage:           content.Image{Src: "a.png", Alt: "a pizza"},
	}
	for _, k := range content.AllBlockKinds() {
		b, ok := blocks[k]
		if !ok {
			t.Errorf("no fixture for %s", k)
			continue
		}
		if strings.TrimSpace(render(b, nil)) == "" {
			t.Errorf("%s rendered nothing", k)
		}
	}
}

func TestRender_Text(t *testing.T) {
	out := render(content.Text{Content: "so $\\frac{3}{4}$ and 1/2"}, nil)
	if !strings.Contains(out, "³⁄₄") || !strings.Contains(out, "¹⁄₂") {
		t.Errorf("Text = %q", out)
	}
}

func TestRender_TextUnterminatedMath(t *testing.T) {
	out := render(content.Text{Content: "costs $5"}, nil)
	if !strings.Contains(out, "costs 5") {
		t.Errorf("Text = %q", out)
	}
}

func TestRender_LatexFallback(t *testing.T) {
	out := render(content.LatexBlock{Content: `\frac{1}{`}, nil)
	if !strings.Contains(out, `\frac{1}{`) {
		t.Errorf("fallback should show raw source, got %q", out)
	}
}

func TestRender_FractionBlockDefaults(t *testing.T) {
	out := render(content.FractionBlock{}, nil)
	if !strings.Contains(out, "Example:") || !strings.Contains(out, "0") || !strings.Contains(out, "1") {
		t.Errorf("FractionBlock = %q", out)
	}

	half := &content.Fraction{Numerator: "?", Denominator: "6"}
	out = render(content.FractionBlock{Fraction: half}, nil)
	if !strings.Contains(out, "?") || !strings.Contains(out, "6") {
		t.Errorf("FractionBlock = %q", out)
	}
}

func TestRender_SpeechDefaults(t *testing.T) {
	out := render(content.CharacterSpeech{Content: "hello"}, nil)
	if !strings.Contains(out, "Zara") {
		t.Errorf("default speaker missing: %q", out)
	}
	named := render(content.CharacterSpeech{Speaker: "Leo", Content: "hey"}, nil)
	if !strings.Contains(named, "Leo") {
		t.Errorf("speaker missing: %q", named)
	}
}

func TestRender_ExampleLabel(t *testing.T) {
	out := render(content.Example{Items: []string{"first", "second"}}, nil)
	for _, want := range []string{"Worked example", "1. first", "2. second"} {
		if !strings.Contains(out, want) {
			t.Errorf("Example missing %q: %q", want, out)
		}
	}
}

func TestRender_CardsReveal(t *testing.T) {
	b := content.FractionCards{
		Content: "Which stop?",
		Cards:   []content.Card{{Label: "half", Color: "red", Fraction: content.Fraction{Numerator: "1", Denominator: "2"}}},
		Items:   []string{"first answer", "second answer"},
	}
	rv := NewReveal(len(b.Items))

	out := render(b, rv)
	if strings.Contains(out, "first answer") {
		t.Error("hidden item rendered before reveal")
	}
	if !strings.Contains(out, "Show answer (1/2)") {
		t.Errorf("reveal control missing: %q", out)
	}

	rv.Reveal()
	out = render(b, rv)
	if !strings.Contains(out, "1. first answer") || strings.Contains(out, "second answer") {
		t.Errorf("after one reveal: %q", out)
	}
	if !strings.Contains(out, "Show answer (2/2)") {
		t.Errorf("reveal control not advanced: %q", out)
	}

	rv.Reveal()
	out = render(b, rv)
	if strings.Contains(out, "Show answer") {
		t.Error("reveal control still shown when done")
	}
	if !strings.Contains(out, "All parts shown") {
		t.Errorf("completion line missing: %q", out)
	}
}

func TestRender_CardsWithoutItems(t *testing.T) {
	out := render(content.FractionCards{Content: "look"}, NewReveal(0))
	if strings.Contains(out, "Show answer") || strings.Contains(out, "All parts shown") {
		t.Errorf("empty cards block shows reveal chrome: %q", out)
	}
}
