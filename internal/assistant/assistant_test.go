package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/mathflow/internal/content"
	"github.com/abhisek/mathflow/internal/llm"
	"github.com/abhisek/mathflow/internal/nav"
)

func testLesson() *content.Lesson {
	return &content.Lesson{
		ID:    "lesson-intro",
		Title: "What is a fraction?",
		Theory: []content.Block{
			content.Text{Content: "A fraction names equal parts."},
			content.Image{Src: "pizza.png", Alt: "a pizza"},
			content.Tip{Content: "The bottom number counts the parts."},
		},
		Practice: []content.Exercise{
			{ID: "ex1", Instruction: "Write the fraction."},
			{ID: "ex2"},
			{ID: "ex3", Instruction: "Compare."},
		},
	}
}

func TestBuildContext(t *testing.T) {
	tests := []struct {
		name   string
		lesson *content.Lesson
		tab    nav.Tab
		want   string
	}{
		{
			name:   "nil lesson",
			lesson: nil,
			tab:    nav.TabTheory,
			want:   "Math basics",
		},
		{
			name:   "theory tab",
			lesson: testLesson(),
			tab:    nav.TabTheory,
			want:   "Lesson: What is a fraction?. Content: A fraction names equal parts. The bottom number counts the parts.",
		},
		{
			name:   "practice tab",
			lesson: testLesson(),
			tab:    nav.TabPractice,
			want:   "Lesson: What is a fraction?. Exercises: Write the fraction. Compare.",
		},
		{
			name:   "empty lesson",
			lesson: &content.Lesson{Title: "Empty"},
			tab:    nav.TabPractice,
			want:   "Lesson: Empty. Exercises: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildContext(tt.lesson, tt.tab); got != tt.want {
				t.Errorf("BuildContext() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAsk_DemoMode(t *testing.T) {
	b := NewBridge(nil, DefaultConfig(), nil)
	if !b.Demo() {
		t.Fatal("expected demo mode without a provider")
	}
	if got := b.Ask(context.Background(), "what is 1/2?", "Math basics"); got != DemoMessage {
		t.Errorf("Ask() = %q, want demo message", got)
	}
}

func TestAsk_ReturnsAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"answer":"  One of two equal parts.  "}`),
	})
	b := NewBridge(mock, Config{Language: "Macedonian", MaxTokens: 100}, nil)

	ctx := llm.WithLesson(context.Background(), "lesson-intro")
	got := b.Ask(ctx, "what is a half?", "Lesson: Intro. Content: halves")
	if got != "One of two equal parts." {
		t.Errorf("Ask() = %q", got)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema != AnswerSchema {
		t.Error("expected the answer schema on the request")
	}
	if req.MaxTokens != 100 {
		t.Errorf("max tokens = %d, want 100", req.MaxTokens)
	}
	if !strings.Contains(req.System, "Macedonian") {
		t.Errorf("system prompt should name the language: %q", req.System)
	}
	if !strings.Contains(req.System, "middle school") {
		t.Errorf("system prompt should address middle school students: %q", req.System)
	}
	msg := req.Messages[0].Content
	if !strings.Contains(msg, "what is a half?") || !strings.Contains(msg, "Lesson: Intro. Content: halves") {
		t.Errorf("user message missing question or context: %q", msg)
	}
}

type ctxCapture struct {
	llm.MockProvider
	ctx context.Context
}

func (c *ctxCapture) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	c.ctx = ctx
	return &llm.Response{Content: json.RawMessage(`{"answer":"ok"}`)}, nil
}

func TestAsk_TagsRequest(t *testing.T) {
	p := &ctxCapture{}
	b := NewBridge(p, DefaultConfig(), nil)

	b.Ask(llm.WithLesson(context.Background(), "lesson-compare"), "q", "s")

	if got := llm.PurposeFrom(p.ctx); got != llm.PurposeAssistant {
		t.Errorf("purpose = %q, want %q", got, llm.PurposeAssistant)
	}
	if llm.RequestIDFrom(p.ctx) == "" {
		t.Error("expected a request ID")
	}
	if got := llm.LessonFrom(p.ctx); got != "lesson-compare" {
		t.Errorf("lesson = %q, want lesson-compare", got)
	}
}

func TestAsk_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
		want string
	}{
		{"provider error", llm.MockResponse{Err: &llm.ErrProviderUnavailable{}}, ErrorMessage},
		{"rejected key", llm.MockResponse{Err: &llm.ErrAuth{Err: errors.New("401")}}, KeyMessage},
		{"answer missing from reply", llm.MockResponse{Content: json.RawMessage(`{"reply":"half"}`)}, ErrorMessage},
		{"malformed content", llm.MockResponse{Content: json.RawMessage(`not json`)}, ErrorMessage},
		{"empty answer", llm.MockResponse{Content: json.RawMessage(`{"answer":"   "}`)}, NoAnswerMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBridge(llm.NewMockProvider(tt.resp), DefaultConfig(), nil)
			if got := b.Ask(context.Background(), "q", "s"); got != tt.want {
				t.Errorf("Ask() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTranscript(t *testing.T) {
	tr := NewTranscript()

	entries := tr.Entries()
	if len(entries) != 1 || entries[0].Role != RoleTutor || entries[0].Text != Greeting {
		t.Fatalf("expected greeting first, got %+v", entries)
	}

	if tr.CanSend("   ") {
		t.Error("blank input should not be sendable")
	}
	if tr.Begin("") {
		t.Error("Begin should refuse blank input")
	}

	if !tr.Begin("what is 2/4?") {
		t.Fatal("Begin should accept a question")
	}
	if !tr.Pending() {
		t.Error("expected pending after Begin")
	}
	if tr.CanSend("another") {
		t.Error("should not send while pending")
	}
	if tr.Begin("another") {
		t.Error("Begin should refuse while pending")
	}

	tr.Finish("It equals 1/2.")
	if tr.Pending() {
		t.Error("expected not pending after Finish")
	}
	entries = tr.Entries()
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	if entries[1].Role != RoleStudent || entries[1].Text != "what is 2/4?" {
		t.Errorf("entries[1] = %+v", entries[1])
	}
	if entries[2].Role != RoleTutor || entries[2].Text != "It equals 1/2." {
		t.Errorf("entries[2] = %+v", entries[2])
	}
	if !tr.CanSend("another") {
		t.Error("should be able to send again")
	}
}
