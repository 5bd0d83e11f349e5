package mathrender

import (
	"fmt"
	"strings"
	"unicode"
)

var symbols = map[string]string{
	"times":        " × ",
	"div":          " ÷ ",
	"cdot":         " · ",
	"pm":           " ± ",
	"neq":          " ≠ ",
	"ne":           " ≠ ",
	"leq":          " ≤ ",
	"le":           " ≤ ",
	"geq":          " ≥ ",
	"ge":           " ≥ ",
	"lt":           " < ",
	"gt":           " > ",
	"approx":       " ≈ ",
	"to":           " → ",
	"rightarrow":   " → ",
	"Rightarrow":   " ⇒ ",
	"cdots":        "⋯",
	"ldots":        "…",
	"dots":         "…",
	"infty":        "∞",
	"pi":           "π",
	"circ":         "°",
	"square":       "□",
	"quad":         "  ",
	"qquad":        "    ",
	"left":         "",
	"right":        "",
	"displaystyle": "",
}

// escapes are single-character commands such as "\," or "\%".
var escapes = map[rune]string{
	',':  " ",
	';':  " ",
	':':  " ",
	'!':  "",
	' ':  " ",
	'%':  "%",
	'{':  "{",
	'}':  "}",
	'$':  "$",
	'&':  "&",
	'#':  "#",
	'_':  "_",
	'\\': " ",
}

// textArg commands render their single argument unchanged.
var textArg = map[string]bool{
	"text":         true,
	"mathrm":       true,
	"mathbf":       true,
	"mathit":       true,
	"textbf":       true,
	"operatorname": true,
	"underline":    true,
}

var binaryOps = map[rune]string{
	'+': " + ",
	'-': " − ",
	'=': " = ",
	'<': " < ",
	'>': " > ",
}

type parser struct {
	src []rune
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() rune { return p.src[p.pos] }

// parseSeq renders runes until end of input, or until a closing brace
// when inGroup is set (the brace is consumed).
func (p *parser) parseSeq(inGroup bool) (string, error) {
	var b strings.Builder
	for !p.eof() {
		r := p.peek()
		switch {
		case r == '}':
			if !inGroup {
				return "", fmt.Errorf("unbalanced '}' at %d", p.pos)
			}
			p.pos++
			return b.String(), nil
		case r == '{':
			p.pos++
			inner, err := p.parseSeq(true)
			if err != nil {
				return "", err
			}
			b.WriteString(inner)
		case r == '\\':
			s, err := p.parseCommand(lastRune(b.String()))
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		case r == '^' || r == '_':
			p.pos++
			arg, err := p.parseArg()
			if err != nil {
				return "", err
			}
			if r == '^' {
				b.WriteString(superscript(arg))
			} else {
				b.WriteString(subscript(arg))
			}
		case r == '~':
			p.pos++
			b.WriteString(" ")
		case unicode.IsSpace(r):
			p.pos++
		default:
			p.pos++
			if op, ok := binaryOps[r]; ok {
				b.WriteString(op)
			} else {
				b.WriteRune(r)
			}
		}
	}
	if inGroup {
		return "", fmt.Errorf("missing '}'")
	}
	return b.String(), nil
}

// parseArg reads one argument: a braced group, a command or a single rune.
func (p *parser) parseArg() (string, error) {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.pos++
	}
	if p.eof() {
		return "", fmt.Errorf("missing argument at end of input")
	}
	switch r := p.peek(); r {
	case '{':
		p.pos++
		s, err := p.parseSeq(true)
		return strings.TrimSpace(s), err
	case '\\':
		return p.parseCommand(0)
	case '}':
		return "", fmt.Errorf("missing argument at %d", p.pos)
	default:
		p.pos++
		return string(r), nil
	}
}

// parseRawArg reads a braced group verbatim (for \text).
func (p *parser) parseRawArg() (string, error) {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.pos++
	}
	if p.eof() || p.peek() != '{' {
		return "", fmt.Errorf("expected '{' at %d", p.pos)
	}
	p.pos++
	start, depth := p.pos, 1
	for !p.eof() {
		switch p.peek() {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				s := string(p.src[start:p.pos])
				p.pos++
				return s, nil
			}
		}
		p.pos++
	}
	return "", fmt.Errorf("missing '}'")
}

func (p *parser) parseCommand(prev rune) (string, error) {
	p.pos++ // backslash
	if p.eof() {
		return "", fmt.Errorf("dangling backslash")
	}
	if r := p.peek(); !unicode.IsLetter(r) {
		p.pos++
		s, ok := escapes[r]
		if !ok {
			return "", fmt.Errorf("unknown escape \\%c", r)
		}
		return s, nil
	}

	start := p.pos
	for !p.eof() && unicode.IsLetter(p.peek()) {
		p.pos++
	}
	name := string(p.src[start:p.pos])

	if s, ok := symbols[name]; ok {
		return s, nil
	}
	if textArg[name] {
		if name == "text" {
			return p.parseRawArg()
		}
		return p.parseArg()
	}

	switch name {
	case "frac", "dfrac", "tfrac":
		num, err := p.parseArg()
		if err != nil {
			return "", err
		}
		den, err := p.parseArg()
		if err != nil {
			return "", err
		}
		return fraction(num, den, prev), nil
	case "sqrt":
		arg, err := p.parseArg()
		if err != nil {
			return "", err
		}
		if len([]rune(arg)) == 1 {
			return "√" + arg, nil
		}
		return "√(" + arg + ")", nil
	case "boxed":
		arg, err := p.parseArg()
		if err != nil {
			return "", err
		}
		return "[" + arg + "]", nil
	case "overline":
		arg, err := p.parseArg()
		if err != nil {
			return "", err
		}
		var b strings.Builder
		for _, r := range arg {
			b.WriteRune(r)
			b.WriteRune('̅')
		}
		return b.String(), nil
	case "color", "textcolor":
		if _, err := p.parseRawArg(); err != nil {
			return "", err
		}
		return p.parseArg()
	}
	return "", fmt.Errorf("unsupported command \\%s", name)
}

// fraction renders num/den compactly. Digit-only parts use super- and
// subscript digits so mixed numbers stay unambiguous ("2¹⁄₃").
func fraction(num, den string, prev rune) string {
	if sup, ok := toScript(num, superscripts); ok {
		if sub, ok := toScript(den, subscripts); ok {
			return sup + "⁄" + sub
		}
	}
	out := group(num) + "/" + group(den)
	if unicode.IsDigit(prev) {
		out = " " + out
	}
	return out
}

func group(s string) string {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, " ") {
		return "(" + collapseSpaces(s) + ")"
	}
	return s
}

func lastRune(s string) rune {
	r := []rune(s)
	if len(r) == 0 {
		return 0
	}
	return r[len(r)-1]
}
