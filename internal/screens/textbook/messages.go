package textbook

// lessonSelectedMsg is sent when a lesson is picked from the sidebar.
type lessonSelectedMsg struct {
	ID string
}

// tutorAnswerMsg carries the assistant's reply to the pending question.
type tutorAnswerMsg struct {
	Text string
}
