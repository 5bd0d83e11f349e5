package answer

import (
	"regexp"
	"strings"
)

// Wildcard as a correct answer accepts any non-empty submission.
const Wildcard = "*"

var slashSpace = regexp.MustCompile(`\s*/\s*`)

// Normalize canonicalizes an answer for comparison: whitespace around
// slashes is removed and letters are lower-cased.
func Normalize(s string) string {
	return strings.ToLower(slashSpace.ReplaceAllString(s, "/"))
}

// Check compares the student's input against the correct answer.
// Returns true if the answer is correct.
//
// Normalization rules:
// - The student input is trimmed; an empty input is never correct
// - The correct answer is used as authored, without trimming
// - Whitespace around "/" is ignored ("3 / 4" matches "3/4")
// - Comparison is case-insensitive
// - A correct answer of "*" accepts any non-empty input
func Check(student, correct string) bool {
	ok, _ := Evaluate(student, correct)
	return ok
}

// Evaluate is Check with an extra report of whether a verdict was reached.
// checked is false for an empty or whitespace-only submission, in which
// case no result should be recorded.
func Evaluate(student, correct string) (ok, checked bool) {
	student = strings.TrimSpace(student)
	if student == "" {
		return false, false
	}
	if correct == Wildcard {
		return true, true
	}
	return Normalize(student) == Normalize(correct), true
}
