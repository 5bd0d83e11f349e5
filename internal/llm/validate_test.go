package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

// tutorAnswerSchema has the shape of the tutor panel's structured reply.
func tutorAnswerSchema() *Schema {
	return &Schema{
		Name:        "tutor-answer",
		Description: "A short answer to a student's question about the current lesson",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"answer": map[string]any{"type": "string"},
			},
			"required":             []any{"answer"},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		invalid bool
	}{
		{"plain answer", `{"answer":"$\\frac{1}{2}$ is one half."}`, `{"answer":"$\\frac{1}{2}$ is one half."}`, false},
		{"surrounding space", "\n  {\"answer\":\"half\"}  \n", `{"answer":"half"}`, false},
		{"json code fence", "```json\n{\"answer\":\"half\"}\n```", `{"answer":"half"}`, false},
		{"bare code fence", "```\n{\"answer\":\"half\"}\n```", `{"answer":"half"}`, false},
		{"missing answer", `{}`, "", true},
		{"extra property", `{"answer":"half","confidence":0.9}`, "", true},
		{"answer not a string", `{"answer":2}`, "", true},
		{"malformed", `{"answer":`, "", true},
		{"empty", ``, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validateResponse(tutorAnswerSchema(), json.RawMessage(tt.raw))
			if tt.invalid {
				var invErr *ErrInvalidResponse
				if !errors.As(err, &invErr) {
					t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
				}
				if string(invErr.Content) != tt.raw {
					t.Errorf("error content = %q, want the raw reply", invErr.Content)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("content = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	got, err := validateResponse(nil, json.RawMessage(" {\"anything\":\"goes\"} "))
	if err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
	if string(got) != `{"anything":"goes"}` {
		t.Errorf("content = %s", got)
	}
}

func TestValidateResponse_SameNameDifferentDefinition(t *testing.T) {
	loose := &Schema{Name: "tutor-answer", Definition: map[string]any{"type": "object"}}
	raw := json.RawMessage(`{"answer":"half","confidence":0.9}`)

	if _, err := validateResponse(loose, raw); err != nil {
		t.Fatalf("loose schema rejected reply: %v", err)
	}
	if _, err := validateResponse(tutorAnswerSchema(), raw); err == nil {
		t.Fatal("strict schema reused the loose validator")
	}
}

func TestFinishResponse(t *testing.T) {
	t.Run("plain text is quoted", func(t *testing.T) {
		resp, err := finishResponse(Request{}, json.RawMessage("One half."), Usage{}, "m", "end")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(resp.Content) != `"One half."` {
			t.Errorf("content = %s", resp.Content)
		}
		if resp.Text() != "One half." {
			t.Errorf("text = %q", resp.Text())
		}
	})

	t.Run("truncated structured reply", func(t *testing.T) {
		raw := json.RawMessage(`{"answer":"One ha`)
		_, err := finishResponse(Request{Schema: tutorAnswerSchema()}, raw, Usage{}, "m", "max_tokens")
		var maxTok *ErrMaxTokensExceeded
		if !errors.As(err, &maxTok) {
			t.Fatalf("expected ErrMaxTokensExceeded, got: %T (%v)", err, err)
		}
		if string(maxTok.Content) != string(raw) {
			t.Errorf("content = %s", maxTok.Content)
		}
	})

	t.Run("truncated plain reply is kept", func(t *testing.T) {
		resp, err := finishResponse(Request{}, json.RawMessage(`"One ha"`), Usage{OutputTokens: 4}, "m", "max_tokens")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StopReason != "max_tokens" || resp.Usage.OutputTokens != 4 {
			t.Errorf("resp = %+v", resp)
		}
	})
}
