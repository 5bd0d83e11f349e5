package theory

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathflow/internal/content"
	"github.com/abhisek/mathflow/internal/mathrender"
	"github.com/abhisek/mathflow/internal/ui/components"
	"github.com/abhisek/mathflow/internal/ui/theme"
)

const (
	defaultSpeaker      = "Zara"
	defaultExampleLabel = "Worked example"
)

// Options tweak how a block is drawn.
type Options struct {
	Width   int
	Focused bool
	// CanSpeak enables the read-aloud hint on character speech.
	CanSpeak bool
}

// Render draws one theory block. Reveal is consulted only for
// fraction-cards blocks and may be nil for every other kind.
func Render(b content.Block, reveal *Reveal, r mathrender.Renderer, opts Options) string {
	width := max(opts.Width, 20)

	switch b := b.(type) {
	case content.Text:
		return wrap(components.FormattedText(b.Content, r), width)

	case content.LatexBlock:
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			components.Math(b.Content, mathrender.Block, r))

	case content.Tip:
		body := lipgloss.NewStyle().Foreground(theme.Warning).Bold(true).Render("Tip") + "\n" +
			components.FormattedText(b.Content, r)
		return theme.Tip.Width(width).Render(body)

	case content.CharacterSpeech:
		return renderSpeech(b, r, width, opts)

	case content.FractionBlock:
		return renderFractionBlock(b, r, width)

	case content.FractionCards:
		if reveal == nil {
			reveal = NewReveal(len(b.Items))
		}
		return renderCards(b, reveal, r, width, opts)

	case content.Example:
		return renderExample(b, r, width)

	case content.Image:
		return renderImage(b, width)
	}
	return ""
}

func wrap(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}

func renderSpeech(b content.CharacterSpeech, r mathrender.Renderer, width int, opts Options) string {
	speaker := b.Speaker
	if speaker == "" {
		speaker = defaultSpeaker
	}
	badge := theme.Badge.Render(speaker)
	quote := "“" + components.FormattedText(b.Content, r) + "”"
	body := badge + "\n" + quote
	if opts.CanSpeak && opts.Focused {
		body += "\n" + theme.Hint.Render("s: read aloud")
	}
	return theme.Speech.Width(width).Render(body)
}

func renderFractionBlock(b content.FractionBlock, r mathrender.Renderer, width int) string {
	// Missing parts fall back to 0/1.
	num, den, whole := "0", "1", ""
	if f := b.Fraction; f != nil {
		if !f.Numerator.IsZero() {
			num = f.Numerator.String()
		}
		if !f.Denominator.IsZero() {
			den = f.Denominator.String()
		}
		whole = f.Whole.String()
	}

	frac := components.StackedFraction(whole, num, den, theme.Math)
	parts := []string{theme.Subtitle.Render("Example:"), frac}
	if b.Content != "" {
		parts = append(parts, wrap(components.FormattedText(b.Content, r), width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderCards(b content.FractionCards, rv *Reveal, r mathrender.Renderer, width int, opts Options) string {
	var parts []string
	if b.Label != "" {
		parts = append(parts, theme.Title.Render(b.Label))
	}

	if len(b.Cards) > 0 {
		cards := make([]string, 0, len(b.Cards))
		for _, c := range b.Cards {
			accent := lipgloss.NewStyle().BorderForeground(theme.CardColor(c.Color))
			cards = append(cards, components.FractionCard(
				c.Label, c.Fraction.Whole.String(), c.Fraction.Numerator.String(), c.Fraction.Denominator.String(), accent,
			)+" ")
		}
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	if b.Content != "" {
		parts = append(parts, wrap(components.FormattedText(b.Content, r), width))
	}

	for i, item := range rv.Visible(b.Items) {
		line := fmt.Sprintf("%d. %s", i+1, components.FormattedText(item, r))
		parts = append(parts, wrap(line, width))
	}

	switch {
	case rv.Done():
		parts = append(parts, theme.Correct.Render("✓ All parts shown"))
	case rv.Total() > 0:
		label := fmt.Sprintf("Show answer (%d/%d)", rv.Shown()+1, rv.Total())
		parts = append(parts, components.NewButton(label, true, opts.Focused).View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderExample(b content.Example, r mathrender.Renderer, width int) string {
	label := b.Label
	if label == "" {
		label = defaultExampleLabel
	}
	lines := []string{theme.Title.Render(label)}
	if b.Content != "" {
		lines = append(lines, components.FormattedText(b.Content, r))
	}
	for i, item := range b.Items {
		lines = append(lines, fmt.Sprintf("%s %s",
			theme.Subtitle.Render(fmt.Sprintf("%d.", i+1)),
			components.FormattedText(item, r)))
	}
	return theme.Example.Width(width).Render(strings.Join(lines, "\n"))
}

func renderImage(b content.Image, width int) string {
	text := b.Alt
	if text == "" {
		text = b.Src
	}
	if text == "" {
		return ""
	}
	return theme.Hint.Width(width).Render("[image] " + text)
}
