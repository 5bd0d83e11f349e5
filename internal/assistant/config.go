package assistant

// Config holds assistant settings.
type Config struct {
	// Language the tutor answers in unless the student asks otherwise.
	Language    string
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for tutor answers.
func DefaultConfig() Config {
	return Config{
		Language:    "English",
		MaxTokens:   512,
		Temperature: 0.4,
	}
}
