package content

// catalogSchema is the JSON schema every catalog document must satisfy
// before it is decoded into typed lessons.
var catalogSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":    map[string]any{"type": "string", "minLength": 1},
		"title": map[string]any{"type": "string", "minLength": 1},
		"lessons": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    lessonSchema,
		},
	},
	"required": []any{"id", "title", "lessons"},
}

var lessonSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":    map[string]any{"type": "string", "minLength": 1},
		"title": map[string]any{"type": "string", "minLength": 1},
		"theory": map[string]any{
			"type":  "array",
			"items": blockSchema,
		},
		"practice": map[string]any{
			"type":  "array",
			"items": exerciseSchema,
		},
	},
	"required": []any{"id", "title"},
}

var valueSchema = map[string]any{
	"type": []any{"string", "number"},
}

var fractionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"numerator":   valueSchema,
		"denominator": valueSchema,
		"whole":       valueSchema,
	},
}

var blockSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"type": map[string]any{
			"type": "string",
			"enum": []any{
				string(KindText), string(KindLatexBlock), string(KindTip),
				string(KindCharacterSpeech), string(KindFractionBlock),
				string(KindFractionCards), string(KindExample), string(KindImage),
			},
		},
		"content":    map[string]any{"type": "string"},
		"label":      map[string]any{"type": "string"},
		"audio_text": map[string]any{"type": "string"},
		"image_src":  map[string]any{"type": "string"},
		"fraction":   fractionSchema,
		"items": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"cards": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"label":    map[string]any{"type": "string"},
					"color":    map[string]any{"type": "string"},
					"fraction": fractionSchema,
				},
				"required": []any{"fraction"},
			},
		},
	},
	"required": []any{"type"},
}

var exerciseSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":           map[string]any{"type": "string", "minLength": 1},
		"title":        map[string]any{"type": "string"},
		"instruction":  map[string]any{"type": "string"},
		"display_mode": map[string]any{"type": "string", "enum": []any{string(DisplayList), string(DisplayTable)}},
		"questions": map[string]any{
			"type":  "array",
			"items": questionSchema,
		},
	},
	"required": []any{"id"},
}

var questionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":             map[string]any{"type": "string", "minLength": 1},
		"label":          map[string]any{"type": "string"},
		"pre_text":       map[string]any{"type": "string"},
		"post_text":      map[string]any{"type": "string"},
		"latex":          map[string]any{"type": "string"},
		"correct_answer": valueSchema,
		"placeholder":    map[string]any{"type": "string"},
		"type":           map[string]any{"type": "string", "enum": []any{string(TypeInput), string(TypeSelect), string(TypeInfo)}},
		"input_type":     map[string]any{"type": "string", "enum": []any{string(InputText), string(InputFraction)}},
		"options": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
	},
	"required": []any{"id"},
}
