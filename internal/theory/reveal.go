// Package theory renders theory blocks and tracks step-by-step reveals.
package theory

// Reveal counts how many answer items of a fraction-cards block are
// visible. The count only grows, one item at a time.
type Reveal struct {
	total int
	shown int
}

// NewReveal creates a reveal over total items, none shown.
func NewReveal(total int) *Reveal {
	if total < 0 {
		total = 0
	}
	return &Reveal{total: total}
}

// Reveal shows one more item. Returns false once everything is shown.
func (r *Reveal) Reveal() bool {
	if r.shown >= r.total {
		return false
	}
	r.shown++
	return true
}

// Shown returns the number of visible items.
func (r *Reveal) Shown() int { return r.shown }

// Total returns the number of items.
func (r *Reveal) Total() int { return r.total }

// Done reports whether every item is visible. A block with no items is
// never done, so no completion line is shown for it.
func (r *Reveal) Done() bool {
	return r.total > 0 && r.shown >= r.total
}

// Visible returns the first Shown items.
func (r *Reveal) Visible(items []string) []string {
	n := min(r.shown, len(items))
	return items[:n]
}

// Hidden returns the number of items still hidden.
func (r *Reveal) Hidden() int {
	return r.total - r.shown
}

// Key scopes a reveal to one block of one lesson.
type Key struct {
	LessonID string
	Block    int
}

// Arena owns the reveal state of every fraction-cards block on screen.
type Arena struct {
	reveals map[Key]*Reveal
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{reveals: make(map[Key]*Reveal)}
}

// For returns the reveal for a block, creating it on first use.
func (a *Arena) For(k Key, total int) *Reveal {
	r, ok := a.reveals[k]
	if !ok {
		r = NewReveal(total)
		a.reveals[k] = r
	}
	return r
}

// DropLesson discards every reveal owned by a lesson.
func (a *Arena) DropLesson(lessonID string) {
	for k := range a.reveals {
		if k.LessonID == lessonID {
			delete(a.reveals, k)
		}
	}
}
