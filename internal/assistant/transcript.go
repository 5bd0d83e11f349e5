package assistant

import "strings"

// Greeting opens every transcript.
const Greeting = "Hi! I'm your digital assistant. If you get stuck on a lesson or an exercise, just ask me!"

// Role identifies who wrote a transcript entry.
type Role int

const (
	RoleTutor Role = iota
	RoleStudent
)

// Entry is one message in the tutor panel.
type Entry struct {
	Role Role
	Text string
}

// Transcript is the ordered conversation shown in the tutor panel. At most
// one question is in flight at a time.
type Transcript struct {
	entries []Entry
	pending bool
}

// NewTranscript starts a conversation with the greeting.
func NewTranscript() *Transcript {
	return &Transcript{entries: []Entry{{Role: RoleTutor, Text: Greeting}}}
}

// Entries returns the conversation so far.
func (t *Transcript) Entries() []Entry {
	return t.entries
}

// Pending reports whether an answer is outstanding.
func (t *Transcript) Pending() bool {
	return t.pending
}

// CanSend reports whether input may be sent now.
func (t *Transcript) CanSend(input string) bool {
	return !t.pending && strings.TrimSpace(input) != ""
}

// Begin records the student's question and marks the transcript pending.
// It reports false when the question cannot be sent.
func (t *Transcript) Begin(question string) bool {
	if !t.CanSend(question) {
		return false
	}
	t.entries = append(t.entries, Entry{Role: RoleStudent, Text: question})
	t.pending = true
	return true
}

// Finish records the tutor's answer and clears the pending flag.
func (t *Transcript) Finish(answer string) {
	t.entries = append(t.entries, Entry{Role: RoleTutor, Text: answer})
	t.pending = false
}
