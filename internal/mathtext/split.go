// Package mathtext splits authored text into plain and math segments and
// scans plain text for inline fractions and operators.
package mathtext

import "strings"

// Segment is a run of text that is either plain or math markup.
type Segment struct {
	Text string
	Math bool
}

// Split cuts s on "$" delimiters. Odd-numbered regions are math; an
// unterminated region (odd number of "$") is returned as plain text.
// Empty segments are dropped.
func Split(s string) []Segment {
	parts := strings.Split(s, "$")
	unterminated := len(parts)%2 == 0

	segs := make([]Segment, 0, len(parts))
	for i, p := range parts {
		if p == "" {
			continue
		}
		math := i%2 == 1
		if unterminated && i == len(parts)-1 {
			math = false
		}
		segs = append(segs, Segment{Text: p, Math: math})
	}
	return segs
}

// HasMath reports whether s contains at least one complete math region.
func HasMath(s string) bool {
	for _, seg := range Split(s) {
		if seg.Math {
			return true
		}
	}
	return false
}
