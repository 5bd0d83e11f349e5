package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathflow/internal/mathrender"
	"github.com/abhisek/mathflow/internal/mathtext"
	"github.com/abhisek/mathflow/internal/ui/theme"
)

// FormattedText renders authored text. Regions between "$" go through the
// math renderer; plain regions get fractions and operators styled.
func FormattedText(text string, r mathrender.Renderer) string {
	var b strings.Builder
	for _, seg := range mathtext.Split(text) {
		if seg.Math {
			b.WriteString(Math(seg.Text, mathrender.Inline, r))
			continue
		}
		b.WriteString(formatPlain(seg.Text))
	}
	return b.String()
}

// Math renders one expression. A failed render shows the raw source in
// the fallback style.
func Math(expr string, mode mathrender.Mode, r mathrender.Renderer) string {
	res := r.Render(expr, mode)
	if res.Fallback {
		return theme.MathFallback.Render(res.Text)
	}
	return theme.Math.Render(res.Text)
}

func formatPlain(s string) string {
	var b strings.Builder
	for tok := range mathtext.Tokens(s) {
		switch tok.Kind {
		case mathtext.TokenFraction:
			b.WriteString(InlineFraction(tok.Whole, tok.Num, tok.Den))
		case mathtext.TokenOperator:
			b.WriteString(theme.Operator.Render(tok.Text))
		default:
			b.WriteString(theme.Body.Render(tok.Text))
		}
	}
	return b.String()
}

// InlineFraction renders a fraction that must fit on one line.
func InlineFraction(whole, num, den string) string {
	s := mathrender.Vulgar(num, den)
	if whole != "" {
		s = whole + s
	}
	return theme.FractionStyle.Render(s)
}

// Wrap renders text wrapped to width.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}
