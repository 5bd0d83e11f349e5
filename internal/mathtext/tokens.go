package mathtext

import (
	"iter"
	"unicode"
	"unicode/utf8"
)

// TokenKind classifies an inline token.
type TokenKind int

const (
	TokenPlain TokenKind = iota
	TokenFraction
	TokenOperator
)

func (k TokenKind) String() string {
	switch k {
	case TokenPlain:
		return "plain"
	case TokenFraction:
		return "fraction"
	case TokenOperator:
		return "operator"
	}
	return "unknown"
}

// Token is one piece of formatted plain text.
type Token struct {
	Kind TokenKind
	Text string // source text of the token

	// Fraction parts; Whole is empty for a simple fraction.
	Whole string
	Num   string
	Den   string
}

// IsOperator reports whether r is styled as an operator glyph.
func IsOperator(r rune) bool {
	switch r {
	case '=', '+', '-', '×', '÷', '≠', '<', '>':
		return true
	}
	return false
}

// Tokens scans s for fractions ("3/4", "2 1/3") and operators, yielding
// everything else as plain runs. The sequence is lazy and can be ranged
// over any number of times.
func Tokens(s string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		plainStart := 0
		flush := func(end int) bool {
			if end > plainStart {
				return yield(Token{Kind: TokenPlain, Text: s[plainStart:end]})
			}
			return true
		}

		i := 0
		for i < len(s) {
			r, size := utf8.DecodeRuneInString(s[i:])

			if isDigit(r) {
				if tok, end, ok := scanFraction(s, i); ok {
					if !flush(i) || !yield(tok) {
						return
					}
					i = end
					plainStart = i
					continue
				}
				// A digit run that starts no fraction stays plain; later
				// runs in the same text get their own chance.
				i = skipDigits(s, i)
				continue
			}

			if IsOperator(r) {
				if !flush(i) || !yield(Token{Kind: TokenOperator, Text: s[i : i+size]}) {
					return
				}
				i += size
				plainStart = i
				continue
			}

			i += size
		}
		flush(len(s))
	}
}

// Collect drains Tokens(s) into a slice.
func Collect(s string) []Token {
	var out []Token
	for t := range Tokens(s) {
		out = append(out, t)
	}
	return out
}

// scanFraction tries "<d>/<d>" or "<d><spaces><d>/<d>" at position i.
func scanFraction(s string, i int) (Token, int, bool) {
	d1End := skipDigits(s, i)

	if d1End < len(s) && s[d1End] == '/' {
		if d2End := skipDigits(s, d1End+1); d2End > d1End+1 {
			return Token{
				Kind: TokenFraction,
				Text: s[i:d2End],
				Num:  s[i:d1End],
				Den:  s[d1End+1 : d2End],
			}, d2End, true
		}
		return Token{}, 0, false
	}

	j := skipSpaces(s, d1End)
	if j == d1End {
		return Token{}, 0, false
	}
	numEnd := skipDigits(s, j)
	if numEnd == j || numEnd >= len(s) || s[numEnd] != '/' {
		return Token{}, 0, false
	}
	denEnd := skipDigits(s, numEnd+1)
	if denEnd == numEnd+1 {
		return Token{}, 0, false
	}
	return Token{
		Kind:  TokenFraction,
		Text:  s[i:denEnd],
		Whole: s[i:d1End],
		Num:   s[j:numEnd],
		Den:   s[numEnd+1 : denEnd],
	}, denEnd, true
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func skipDigits(s string, i int) int {
	for i < len(s) && isDigit(rune(s[i])) {
		i++
	}
	return i
}

func skipSpaces(s string, i int) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}
