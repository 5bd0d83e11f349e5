package mathtext

import (
	"reflect"
	"testing"
)

func TestTokens(t *testing.T) {
	tests := []struct {
		in   string
		want []Token
	}{
		{
			in:   "no math here",
			want: []Token{{Kind: TokenPlain, Text: "no math here"}},
		},
		{
			in: "take 3/4 of it",
			want: []Token{
				{Kind: TokenPlain, Text: "take "},
				{Kind: TokenFraction, Text: "3/4", Num: "3", Den: "4"},
				{Kind: TokenPlain, Text: " of it"},
			},
		},
		{
			in: "2 1/4 = 9/4",
			want: []Token{
				{Kind: TokenFraction, Text: "2 1/4", Whole: "2", Num: "1", Den: "4"},
				{Kind: TokenPlain, Text: " "},
				{Kind: TokenOperator, Text: "="},
				{Kind: TokenPlain, Text: " "},
				{Kind: TokenFraction, Text: "9/4", Num: "9", Den: "4"},
			},
		},
		{
			in: "2 × 4 ≠ 7",
			want: []Token{
				{Kind: TokenPlain, Text: "2 "},
				{Kind: TokenOperator, Text: "×"},
				{Kind: TokenPlain, Text: " 4 "},
				{Kind: TokenOperator, Text: "≠"},
				{Kind: TokenPlain, Text: " 7"},
			},
		},
		{
			// The first digit run does not start a fraction; the second does.
			in: "1 2 3/4",
			want: []Token{
				{Kind: TokenPlain, Text: "1 "},
				{Kind: TokenFraction, Text: "2 3/4", Whole: "2", Num: "3", Den: "4"},
			},
		},
		{
			in:   "12/",
			want: []Token{{Kind: TokenPlain, Text: "12/"}},
		},
		{
			in:   "",
			want: nil,
		},
	}

	for _, tc := range tests {
		got := Collect(tc.in)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Tokens(%q) =\n  %+v\nwant\n  %+v", tc.in, got, tc.want)
		}
	}
}

func TestTokens_Restartable(t *testing.T) {
	seq := Tokens("1/2 + 1/2")
	var first, second []Token
	for tok := range seq {
		first = append(first, tok)
	}
	for tok := range seq {
		second = append(second, tok)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("second pass differs: %+v vs %+v", first, second)
	}
}

func TestTokens_EarlyStop(t *testing.T) {
	n := 0
	for range Tokens("1/2 + 1/3 + 1/4") {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("consumed %d tokens, want 2", n)
	}
}
