package answer

import "strings"

// Field names one sub-field of a fraction input.
type Field int

const (
	FieldWhole Field = iota
	FieldNumerator
	FieldDenominator
)

// Fields lists the sub-fields in entry order.
var Fields = []Field{FieldWhole, FieldNumerator, FieldDenominator}

func (f Field) String() string {
	switch f {
	case FieldWhole:
		return "whole"
	case FieldNumerator:
		return "numerator"
	case FieldDenominator:
		return "denominator"
	}
	return "unknown"
}

// FractionFields holds the three parts of a fraction being entered.
type FractionFields struct {
	Whole string
	Num   string
	Den   string
}

// Get returns the value of one sub-field.
func (f FractionFields) Get(field Field) string {
	switch field {
	case FieldWhole:
		return f.Whole
	case FieldNumerator:
		return f.Num
	case FieldDenominator:
		return f.Den
	}
	return ""
}

// Set returns a copy with one sub-field replaced.
func (f FractionFields) Set(field Field, v string) FractionFields {
	switch field {
	case FieldWhole:
		f.Whole = v
	case FieldNumerator:
		f.Num = v
	case FieldDenominator:
		f.Den = v
	}
	return f
}

// IsEmpty reports whether every sub-field is blank.
func (f FractionFields) IsEmpty() bool {
	return strings.TrimSpace(f.Whole) == "" && strings.TrimSpace(f.Num) == "" && strings.TrimSpace(f.Den) == ""
}

// Compose joins the sub-fields into an answer string:
// "w n/d" for a mixed number, "n/d" for a plain fraction, "w" for a bare
// whole, and "" when nothing usable was entered.
func (f FractionFields) Compose() string {
	w := strings.TrimSpace(f.Whole)
	n := strings.TrimSpace(f.Num)
	d := strings.TrimSpace(f.Den)

	switch {
	case n != "" && d != "" && w != "":
		return w + " " + n + "/" + d
	case n != "" && d != "":
		return n + "/" + d
	case w != "":
		return w
	}
	return ""
}

// ParseFractionFields splits an answer string back into sub-fields.
// A value without "/" is taken entirely as the whole part.
func ParseFractionFields(s string) FractionFields {
	s = slashSpace.ReplaceAllString(strings.TrimSpace(s), "/")
	if s == "" {
		return FractionFields{}
	}

	var whole, frac string
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		whole = s[:i]
		frac = strings.TrimSpace(s[i+1:])
	} else {
		frac = s
	}

	num, den, ok := strings.Cut(frac, "/")
	if !ok {
		// No fraction part: the whole value is the whole number.
		return FractionFields{Whole: s}
	}
	return FractionFields{
		Whole: whole,
		Num:   strings.TrimSpace(num),
		Den:   strings.TrimSpace(den),
	}
}
