// Package router keeps the stack of screens: the textbook at the bottom and
// overlays such as the help screen pushed on top of it.
package router

import (
	"github.com/abhisek/mathflow/internal/screen"

	tea "charm.land/bubbletea/v2"
)

// PushScreenMsg asks the router to push an overlay.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg asks the router to close the top overlay.
type PopScreenMsg struct{}

// Router manages a stack of screens.
type Router struct {
	stack []screen.Screen
}

// New creates a Router with root at the bottom of the stack.
func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push puts s on top of the stack and runs its Init. Pushing a screen with
// the same title as the active one is a no-op, so repeating the help key
// does not stack copies of the help screen.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	if active := r.Active(); active != nil && active.Title() == s.Title() {
		return nil
	}
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop removes the top overlay. The root screen is never removed.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack[len(r.stack)-1] = nil
	r.stack = r.stack[:len(r.stack)-1]
	return nil
}

// Active returns the top screen on the stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update handles navigation messages and routes the rest. Keyboard, mouse
// and paste input reaches only the active screen. Any other message goes
// to every screen, so a tutor reply or speech event that arrives while an
// overlay is open still lands in the textbook underneath.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	}

	if len(r.stack) == 0 {
		return nil
	}
	if isInput(msg) {
		top := len(r.stack) - 1
		updated, cmd := r.stack[top].Update(msg)
		r.stack[top] = updated
		return cmd
	}

	var cmds []tea.Cmd
	for i, s := range r.stack {
		updated, cmd := s.Update(msg)
		r.stack[i] = updated
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func isInput(msg tea.Msg) bool {
	switch msg.(type) {
	case tea.KeyMsg, tea.MouseMsg, tea.PasteMsg:
		return true
	}
	return false
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
