package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathflow/internal/llm"
)

// isolate clears every variable Load or DiscoverConfig might read.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{
		"MATHFLOW_DB", "MATHFLOW_LLM_PROVIDER", "MATHFLOW_LLM_TIMEOUT",
		"MATHFLOW_GEMINI_API_KEY", "MATHFLOW_OPENAI_API_KEY",
		"MATHFLOW_ANTHROPIC_API_KEY", "MATHFLOW_OPENROUTER_API_KEY",
		"MATHFLOW_LLM_GEMINI_API_KEY", "MATHFLOW_ASSISTANT_LANGUAGE",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "lesson-investigation", cfg.Content.DefaultLesson)
	assert.Equal(t, "English", cfg.Assistant.Language)
	assert.Equal(t, 512, cfg.Assistant.MaxTokens)
	assert.Equal(t, 20*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 160, cfg.Speech.Rate)
	assert.Empty(t, cfg.File)
}

func TestLoadFile(t *testing.T) {
	isolate(t)
	p := writeConfig(t, `
db: /tmp/mf.db
content:
  default_lesson: lesson-intro
llm:
  provider: openai
  timeout: 45s
  openai:
    api_key: sk-file
    model: gpt-4o
assistant:
  language: Macedonian
speech:
  command: espeak-ng
  rate: 120
log:
  level: debug
`)

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, p, cfg.File)
	assert.Equal(t, "/tmp/mf.db", cfg.DB)
	assert.Equal(t, "lesson-intro", cfg.Content.DefaultLesson)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "sk-file", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "Macedonian", cfg.ToAssistant().Language)
	assert.Equal(t, "espeak-ng", cfg.ToSpeech().Command)
	assert.Equal(t, 120, cfg.ToSpeech().Rate)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadDefaultLocation(t *testing.T) {
	isolate(t)
	dir := os.Getenv("XDG_CONFIG_HOME")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "mathflow"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mathflow", "config.yaml"), []byte("assistant:\n  language: German\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "German", cfg.Assistant.Language)
}

func TestEnvOverridesFile(t *testing.T) {
	isolate(t)
	p := writeConfig(t, "assistant:\n  language: German\nllm:\n  provider: openai\n")

	t.Setenv("MATHFLOW_ASSISTANT_LANGUAGE", "French")
	t.Setenv("MATHFLOW_LLM_PROVIDER", "gemini")
	t.Setenv("MATHFLOW_GEMINI_API_KEY", "g-env")
	t.Setenv("MATHFLOW_DB", "/data/x.db")

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "French", cfg.Assistant.Language)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "g-env", cfg.LLM.Gemini.APIKey)
	assert.Equal(t, "/data/x.db", cfg.DB)
}

func TestToLLM(t *testing.T) {
	t.Run("configured provider", func(t *testing.T) {
		isolate(t)
		cfg := &Config{LLM: LLMConfig{
			Provider: "anthropic",
			Timeout:  5 * time.Second,
			Anthropic: ProviderConfig{
				APIKey: "a-key",
			},
		}}
		got, err := cfg.ToLLM()
		require.NoError(t, err)
		assert.Equal(t, llm.ProviderAnthropic, got.Provider)
		assert.Equal(t, "a-key", got.Anthropic.APIKey)
		assert.Equal(t, "claude-haiku", got.Anthropic.Model)
		assert.Equal(t, 5*time.Second, got.Timeout)
	})

	t.Run("discovers standard variables", func(t *testing.T) {
		isolate(t)
		t.Setenv("OPENAI_API_KEY", "o-key")
		cfg := &Config{LLM: LLMConfig{Timeout: 7 * time.Second}}
		got, err := cfg.ToLLM()
		require.NoError(t, err)
		assert.Equal(t, llm.ProviderOpenAI, got.Provider)
		assert.Equal(t, "o-key", got.OpenAI.APIKey)
		assert.Equal(t, 7*time.Second, got.Timeout)
	})

	t.Run("nothing configured", func(t *testing.T) {
		isolate(t)
		cfg := &Config{}
		_, err := cfg.ToLLM()
		assert.True(t, errors.Is(err, ErrNoProvider))
	})

	t.Run("explicit provider without key does not discover", func(t *testing.T) {
		isolate(t)
		t.Setenv("OPENAI_API_KEY", "o-key")
		cfg := &Config{LLM: LLMConfig{Provider: "gemini"}}
		_, err := cfg.ToLLM()
		assert.True(t, errors.Is(err, ErrNoProvider))
	})

	t.Run("mock needs no key", func(t *testing.T) {
		isolate(t)
		cfg := &Config{LLM: LLMConfig{Provider: "mock"}}
		got, err := cfg.ToLLM()
		require.NoError(t, err)
		assert.Equal(t, llm.ProviderMock, got.Provider)
	})
}
