package store

import (
	"context"
	"testing"
	"time"
)

func seedEvents(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	repo := s.EventRepo()

	events := []LLMRequestEventData{
		{RequestID: "r1", Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "assistant", LessonID: "lesson-intro", InputTokens: 100, OutputTokens: 40, LatencyMs: 300, Success: true, RequestBody: "[user]\nwhat is a half?", ResponseBody: `{"answer":"one of two equal parts"}`},
		{RequestID: "r2", Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "assistant", LessonID: "lesson-compare", InputTokens: 200, OutputTokens: 60, LatencyMs: 500, Success: true},
		{RequestID: "r3", Provider: "openai", Model: "gpt-4o-mini", Purpose: "assistant", LessonID: "lesson-intro", LatencyMs: 100, Success: false, ErrorMessage: "rate limited"},
		{RequestID: "r4", Provider: "openai", Model: "gpt-4o-mini", Purpose: "warmup", InputTokens: 10, OutputTokens: 5, LatencyMs: 50, Success: true},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append %s: %v", e.RequestID, err)
		}
	}
}

func TestAppendAndGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	fixedClock(s, start)
	seedEvents(t, s)

	e, err := s.EventRepo().GetLLMEvent(context.Background(), 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil {
		t.Fatal("expected event 1")
	}
	if e.RequestID != "r1" || e.Provider != "gemini" || e.LessonID != "lesson-intro" {
		t.Errorf("event = %+v", e.LLMRequestEventData)
	}
	if e.Sequence != 1 {
		t.Errorf("sequence = %d, want 1", e.Sequence)
	}
	if !e.Timestamp.Equal(start) {
		t.Errorf("timestamp = %v, want %v", e.Timestamp, start)
	}
	if !e.Success {
		t.Error("expected success")
	}
	if e.ResponseBody != `{"answer":"one of two equal parts"}` {
		t.Errorf("response body = %q", e.ResponseBody)
	}
}

func TestGetLLMEventMissing(t *testing.T) {
	s := openTestStore(t)
	e, err := s.EventRepo().GetLLMEvent(context.Background(), 42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e != nil {
		t.Errorf("expected nil, got %+v", e)
	}
}

func TestQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	fixedClock(s, start)
	seedEvents(t, s)

	tests := []struct {
		name string
		opts QueryOpts
		want []string
	}{
		{"all newest first", QueryOpts{}, []string{"r4", "r3", "r2", "r1"}},
		{"limit", QueryOpts{Limit: 2}, []string{"r4", "r3"}},
		{"after", QueryOpts{After: 2}, []string{"r4", "r3"}},
		{"before", QueryOpts{Before: 3}, []string{"r2", "r1"}},
		{"purpose", QueryOpts{Purpose: "warmup"}, []string{"r4"}},
		{"lesson", QueryOpts{LessonID: "lesson-intro"}, []string{"r3", "r1"}},
		{"failed only", QueryOpts{FailedOnly: true}, []string{"r3"}},
		{"time window", QueryOpts{From: start.Add(time.Minute), To: start.Add(2 * time.Minute)}, []string{"r3", "r2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := s.EventRepo().QueryLLMEvents(context.Background(), tt.opts)
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			var got []string
			for _, e := range events {
				got = append(got, e.RequestID)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestLLMUsageByPurpose(t *testing.T) {
	s := openTestStore(t)
	seedEvents(t, s)

	usage, err := s.EventRepo().LLMUsageByPurpose(context.Background())
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 2 {
		t.Fatalf("purposes = %d, want 2", len(usage))
	}

	a := usage[0]
	if a.Purpose != "assistant" {
		t.Fatalf("first purpose = %q, want assistant", a.Purpose)
	}
	if a.Calls != 3 || a.Failures != 1 {
		t.Errorf("calls/failures = %d/%d, want 3/1", a.Calls, a.Failures)
	}
	if a.InputTokens != 300 || a.OutputTokens != 100 {
		t.Errorf("tokens = %d/%d, want 300/100", a.InputTokens, a.OutputTokens)
	}
	if a.AvgLatencyMs != 300 {
		t.Errorf("avg latency = %d, want 300", a.AvgLatencyMs)
	}
}

func TestLLMUsageByModel(t *testing.T) {
	s := openTestStore(t)
	seedEvents(t, s)

	usage, err := s.EventRepo().LLMUsageByModel(context.Background())
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	want := []ModelUsage{
		{Model: "gemini-2.5-flash", Calls: 2, InputTokens: 300, OutputTokens: 100},
		{Model: "gpt-4o-mini", Calls: 2, InputTokens: 10, OutputTokens: 5},
	}
	if len(usage) != len(want) {
		t.Fatalf("models = %d, want %d", len(usage), len(want))
	}
	for i := range want {
		if usage[i] != want[i] {
			t.Errorf("usage[%d] = %+v, want %+v", i, usage[i], want[i])
		}
	}
}

func TestUsageEmpty(t *testing.T) {
	s := openTestStore(t)
	usage, err := s.EventRepo().LLMUsageByPurpose(context.Background())
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 0 {
		t.Errorf("usage = %v, want empty", usage)
	}
}
