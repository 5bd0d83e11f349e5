package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/mathflow/internal/store"
)

type recordingRepo struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func (r *recordingRepo) QueryLLMEvents(context.Context, store.QueryOpts) ([]store.LLMEvent, error) {
	return nil, nil
}

func (r *recordingRepo) GetLLMEvent(context.Context, int) (*store.LLMEvent, error) {
	return nil, nil
}

func (r *recordingRepo) LLMUsageByPurpose(context.Context) ([]store.PurposeUsage, error) {
	return nil, nil
}

func (r *recordingRepo) LLMUsageByModel(context.Context) ([]store.ModelUsage, error) {
	return nil, nil
}

func TestLogging_RecordsSuccess(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"answer":"half"}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 3},
	})
	repo := &recordingRepo{}
	p := WithLogging(mock, ProviderMock, repo, nil)

	ctx := WithPurpose(context.Background(), PurposeAssistant)
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithLesson(ctx, "lesson-intro")

	_, err := p.Generate(ctx, Request{
		System:   "be nice",
		Messages: []Message{{Role: RoleUser, Content: "what is 1/2?"}},
		Schema:   &Schema{Name: "answer", Definition: map[string]any{"type": "object"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("events = %d, want 1", len(repo.events))
	}
	e := repo.events[0]
	if e.RequestID != "req-1" || e.Purpose != PurposeAssistant || e.LessonID != "lesson-intro" {
		t.Errorf("context fields not recorded: %+v", e)
	}
	if !e.Success || e.ErrorMessage != "" {
		t.Errorf("success = %v, error = %q", e.Success, e.ErrorMessage)
	}
	if e.InputTokens != 12 || e.OutputTokens != 3 {
		t.Errorf("tokens = %d/%d, want 12/3", e.InputTokens, e.OutputTokens)
	}
	if e.ResponseBody != `{"answer":"half"}` {
		t.Errorf("response body = %q", e.ResponseBody)
	}
	for _, want := range []string{"[system]", "be nice", "[user]", "what is 1/2?", "[schema: answer]"} {
		if !strings.Contains(e.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, e.RequestBody)
		}
	}
}

func TestLogging_RecordsFailure(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})
	repo := &recordingRepo{}
	core, logs := observer.New(zap.WarnLevel)
	p := WithLogging(mock, ProviderMock, repo, zap.New(core))

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(repo.events) != 1 {
		t.Fatalf("events = %d, want 1", len(repo.events))
	}
	if repo.events[0].Success {
		t.Error("expected success = false")
	}
	if repo.events[0].ErrorMessage == "" {
		t.Error("expected error message to be recorded")
	}
	if logs.FilterMessage("llm request failed").Len() != 1 {
		t.Errorf("expected one warning, got %v", logs.All())
	}
}

func TestLogging_RepoErrorDoesNotFailRequest(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`"ok"`)})
	repo := &recordingRepo{err: errors.New("disk full")}
	core, logs := observer.New(zap.WarnLevel)
	p := WithLogging(mock, ProviderMock, repo, zap.New(core))

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "ok" {
		t.Errorf("text = %q, want ok", resp.Text())
	}
	if logs.FilterMessage("failed to record llm request event").Len() != 1 {
		t.Errorf("expected repo failure warning, got %v", logs.All())
	}
}

type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingProvider) ModelID() string { return "blocking" }

func TestTimeout_CancelsSlowProvider(t *testing.T) {
	p := WithTimeout(blockingProvider{}, 20*time.Millisecond)

	start := time.Now()
	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if time.Since(start) > time.Second {
		t.Error("timeout did not fire promptly")
	}
	if p.ModelID() != "blocking" {
		t.Errorf("model = %q", p.ModelID())
	}
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("model = %q, want mock", p.ModelID())
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Provider: "carrier-pigeon"}, nil, nil)
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewProvider_WrapsMiddleware(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenAI
	cfg.OpenAI.APIKey = "sk-test"

	p, err := NewProvider(context.Background(), cfg, &recordingRepo{}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tp, ok := p.(*TimeoutProvider)
	if !ok {
		t.Fatalf("outer provider = %T, want *TimeoutProvider", p)
	}
	if _, ok := tp.inner.(*RetryProvider); !ok {
		t.Fatalf("second layer = %T, want *RetryProvider", tp.inner)
	}
	if p.ModelID() != "gpt-4o-mini" {
		t.Errorf("model = %q, want gpt-4o-mini", p.ModelID())
	}
}

func TestConfig_HasKey(t *testing.T) {
	tests := []struct {
		cfg  Config
		want bool
	}{
		{Config{Provider: ProviderGemini}, false},
		{Config{Provider: ProviderGemini, Gemini: GeminiConfig{APIKey: "k"}}, true},
		{Config{Provider: ProviderOpenRouter, OpenRouter: OpenRouterConfig{APIKey: "k"}}, true},
		{Config{Provider: ProviderAnthropic}, false},
		{Config{Provider: ProviderMock}, true},
		{Config{Provider: ""}, false},
	}
	for _, tt := range tests {
		if got := tt.cfg.HasKey(); got != tt.want {
			t.Errorf("HasKey(%+v) = %v, want %v", tt.cfg.Provider, got, tt.want)
		}
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}

	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no config without keys")
	}

	t.Setenv("ANTHROPIC_API_KEY", "a-key")
	t.Setenv("OPENAI_API_KEY", "o-key")
	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected a discovered config")
	}
	if cfg.Provider != ProviderOpenAI || cfg.OpenAI.APIKey != "o-key" {
		t.Errorf("provider = %q key = %q, want openai o-key", cfg.Provider, cfg.OpenAI.APIKey)
	}
}

func TestResponseText(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`"  a half  "`, "a half"},
		{`{"answer":"x"}`, `{"answer":"x"}`},
		{`plain words`, "plain words"},
	}
	for _, tt := range tests {
		r := &Response{Content: json.RawMessage(tt.raw)}
		if got := r.Text(); got != tt.want {
			t.Errorf("Text(%s) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestEstimateCost(t *testing.T) {
	if got := EstimateCost("unknown-model", 1000, 1000); got != 0 {
		t.Errorf("unknown model cost = %v, want 0", got)
	}
	got := EstimateCost("gemini-2.5-flash", 1_000_000, 1_000_000)
	if got < 2.79 || got > 2.81 {
		t.Errorf("cost = %v, want 2.8", got)
	}
}
