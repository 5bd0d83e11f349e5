// Package mathrender turns a subset of LaTeX math into terminal text.
package mathrender

import (
	"fmt"
	"strings"
)

// Mode selects inline or display rendering.
type Mode int

const (
	Inline Mode = iota
	Block
)

// Result is the outcome of rendering one expression. When Fallback is set,
// Text holds the raw source and callers should mark it visibly.
type Result struct {
	Text     string
	Fallback bool
	Err      error
}

// Renderer renders math expressions. Implementations must not panic.
type Renderer interface {
	Render(expr string, mode Mode) Result
}

// Unicode renders LaTeX using Unicode glyphs, superscripts and subscripts.
type Unicode struct{}

// New returns the default renderer.
func New() *Unicode {
	return &Unicode{}
}

// Render converts expr, falling back to the raw source on any error.
func (u *Unicode) Render(expr string, mode Mode) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Text: expr, Fallback: true, Err: fmt.Errorf("render panic: %v", r)}
		}
	}()

	p := &parser{src: []rune(expr)}
	out, err := p.parseSeq(false)
	if err != nil {
		return Result{Text: expr, Fallback: true, Err: err}
	}
	text := collapseSpaces(out)
	if mode == Block {
		text = strings.TrimSpace(text)
	}
	return Result{Text: text}
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
