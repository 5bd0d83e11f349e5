// Package assistant connects the tutor panel to an LLM provider.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/mathflow/internal/llm"
)

// Fixed replies shown instead of an answer.
const (
	DemoMessage     = "Demo mode: the AI tutor needs an API key. Set MATHFLOW_GEMINI_API_KEY (or another provider key) and restart."
	ErrorMessage    = "Something went wrong while talking to the AI tutor. Please try again."
	NoAnswerMessage = "Sorry, I can't answer that right now."
	KeyMessage      = "The AI tutor's API key was rejected. Check the key in your config or environment and restart."
)

// Bridge asks the tutor model questions about the current lesson.
type Bridge struct {
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger
}

// NewBridge creates a Bridge. A nil provider puts it in demo mode.
func NewBridge(provider llm.Provider, cfg Config, logger *zap.Logger) *Bridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bridge{provider: provider, cfg: cfg, logger: logger}
}

// Demo reports whether the bridge has no provider to talk to.
func (b *Bridge) Demo() bool {
	return b.provider == nil
}

type answerOutput struct {
	Answer string `json:"answer"`
}

// Ask returns the tutor's reply to question. It never fails: missing
// credentials, provider errors and empty answers each map to a fixed
// message. Callers tag ctx with llm.WithLesson so the event log records
// where the question came from.
func (b *Bridge) Ask(ctx context.Context, question, snippet string) string {
	if b.provider == nil {
		return DemoMessage
	}

	requestID := uuid.NewString()
	lessonID := llm.LessonFrom(ctx)
	ctx = llm.WithPurpose(ctx, llm.PurposeAssistant)
	ctx = llm.WithRequestID(ctx, requestID)

	req := llm.Request{
		System: systemPrompt(b.cfg.Language),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(question, snippet)},
		},
		Schema:      AnswerSchema,
		MaxTokens:   b.cfg.MaxTokens,
		Temperature: b.cfg.Temperature,
	}

	resp, err := b.provider.Generate(ctx, req)
	if err != nil {
		b.logger.Warn("assistant request failed",
			zap.String("request_id", requestID),
			zap.String("lesson", lessonID),
			zap.Error(err))
		var auth *llm.ErrAuth
		if errors.As(err, &auth) {
			return KeyMessage
		}
		return ErrorMessage
	}

	var out answerOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		b.logger.Warn("assistant response unreadable",
			zap.String("request_id", requestID),
			zap.Error(err))
		return ErrorMessage
	}

	answer := strings.TrimSpace(out.Answer)
	if answer == "" {
		return NoAnswerMessage
	}
	b.logger.Debug("assistant answered",
		zap.String("request_id", requestID),
		zap.String("lesson", lessonID),
		zap.Int("chars", len(answer)))
	return answer
}
