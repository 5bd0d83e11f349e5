package mathrender

import "strings"

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'+': '⁺', '-': '⁻', '−': '⁻', '=': '⁼', '(': '⁽', ')': '⁾',
	'n': 'ⁿ', 'i': 'ⁱ',
}

var subscripts = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄',
	'5': '₅', '6': '₆', '7': '₇', '8': '₈', '9': '₉',
	'+': '₊', '-': '₋', '−': '₋', '=': '₌', '(': '₍', ')': '₎',
}

// toScript maps every rune of s through table, ignoring spaces.
func toScript(s string, table map[rune]rune) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	var b strings.Builder
	for _, r := range s {
		if r == ' ' {
			continue
		}
		m, ok := table[r]
		if !ok {
			return "", false
		}
		b.WriteRune(m)
	}
	return b.String(), true
}

func superscript(s string) string {
	if out, ok := toScript(s, superscripts); ok {
		return out
	}
	return "^(" + collapseSpaces(s) + ")"
}

func subscript(s string) string {
	if out, ok := toScript(s, subscripts); ok {
		return out
	}
	return "_(" + collapseSpaces(s) + ")"
}

// Vulgar writes a fraction with superscript and subscript digits ("³⁄₄"),
// or as "n/d" when the parts are not plain numbers.
func Vulgar(num, den string) string {
	return fraction(num, den, 0)
}
