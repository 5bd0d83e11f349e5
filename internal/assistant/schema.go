package assistant

import "github.com/abhisek/mathflow/internal/llm"

// AnswerSchema is the structured output the tutor returns.
var AnswerSchema = &llm.Schema{
	Name:        "tutor-answer",
	Description: "A short answer to a student's question about the current lesson",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"answer": map[string]any{
				"type":        "string",
				"description": "The answer shown to the student, plain text with $...$ for math",
			},
		},
		"required":             []any{"answer"},
		"additionalProperties": false,
	},
}
