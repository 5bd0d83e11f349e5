// Package config layers defaults, an optional YAML file and MATHFLOW_*
// environment variables into one Config.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/abhisek/mathflow/internal/assistant"
	"github.com/abhisek/mathflow/internal/content"
	"github.com/abhisek/mathflow/internal/llm"
	"github.com/abhisek/mathflow/internal/speech"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MATHFLOW"

type Config struct {
	DB        string          `mapstructure:"db"`
	Content   ContentConfig   `mapstructure:"content"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Speech    SpeechConfig    `mapstructure:"speech"`
	Log       LogConfig       `mapstructure:"log"`

	// File is the config file that was read, or "" when none was.
	File string `mapstructure:"-"`
}

type ContentConfig struct {
	Path          string `mapstructure:"path"`
	DefaultLesson string `mapstructure:"default_lesson"`
}

type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type LLMConfig struct {
	Provider    string         `mapstructure:"provider"`
	Timeout     time.Duration  `mapstructure:"timeout"`
	MaxAttempts int            `mapstructure:"max_attempts"`
	Anthropic   ProviderConfig `mapstructure:"anthropic"`
	OpenAI      ProviderConfig `mapstructure:"openai"`
	Gemini      ProviderConfig `mapstructure:"gemini"`
	OpenRouter  ProviderConfig `mapstructure:"openrouter"`
}

type AssistantConfig struct {
	Language    string  `mapstructure:"language"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

type SpeechConfig struct {
	Command  string `mapstructure:"command"`
	Language string `mapstructure:"language"`
	Rate     int    `mapstructure:"rate"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Path     string `mapstructure:"path"`
	Disabled bool   `mapstructure:"disabled"`
}

func setDefaults(v *viper.Viper) {
	llmDefaults := llm.DefaultConfig()
	asstDefaults := assistant.DefaultConfig()
	speechDefaults := speech.DefaultConfig()

	v.SetDefault("db", "")
	v.SetDefault("content.path", "")
	v.SetDefault("content.default_lesson", content.DefaultLessonID)

	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.timeout", llmDefaults.Timeout)
	v.SetDefault("llm.max_attempts", llmDefaults.Retry.MaxAttempts)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", llmDefaults.Anthropic.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", llmDefaults.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", llmDefaults.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", llmDefaults.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")

	v.SetDefault("assistant.language", asstDefaults.Language)
	v.SetDefault("assistant.max_tokens", asstDefaults.MaxTokens)
	v.SetDefault("assistant.temperature", asstDefaults.Temperature)

	v.SetDefault("speech.command", speechDefaults.Command)
	v.SetDefault("speech.language", speechDefaults.Language)
	v.SetDefault("speech.rate", speechDefaults.Rate)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", "")
	v.SetDefault("log.disabled", false)
}

// bindAliases maps the short provider key names onto their nested keys.
func bindAliases(v *viper.Viper) error {
	aliases := map[string]string{
		"llm.anthropic.api_key":  EnvPrefix + "_ANTHROPIC_API_KEY",
		"llm.openai.api_key":     EnvPrefix + "_OPENAI_API_KEY",
		"llm.gemini.api_key":     EnvPrefix + "_GEMINI_API_KEY",
		"llm.openrouter.api_key": EnvPrefix + "_OPENROUTER_API_KEY",
	}
	for key, env := range aliases {
		nested := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, nested, env); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
	}
	return nil
}

// Load reads configuration. An explicit path must exist; without one the
// default location is used when present.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindAliases(v); err != nil {
		return nil, err
	}

	if path == "" {
		if p, err := DefaultPath(); err == nil {
			if _, statErr := os.Stat(p); statErr == nil {
				path = p
			}
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = path
	return &cfg, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/mathflow/config.yaml.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "mathflow", "config.yaml"), nil
}

// ErrNoProvider means no LLM credentials were configured or discovered.
var ErrNoProvider = errors.New("no LLM provider configured")

// ToLLM converts the llm section into an llm.Config. When the chosen
// provider has no key, the standard *_API_KEY variables are probed. It
// returns ErrNoProvider when nothing usable is found.
func (c *Config) ToLLM() (llm.Config, error) {
	out := llm.DefaultConfig()
	if c.LLM.Provider != "" {
		out.Provider = c.LLM.Provider
	}
	if c.LLM.Timeout > 0 {
		out.Timeout = c.LLM.Timeout
	}
	if c.LLM.MaxAttempts > 0 {
		out.Retry.MaxAttempts = c.LLM.MaxAttempts
	}
	out.Anthropic = llm.AnthropicConfig{APIKey: c.LLM.Anthropic.APIKey, Model: or(c.LLM.Anthropic.Model, out.Anthropic.Model), BaseURL: c.LLM.Anthropic.BaseURL}
	out.OpenAI = llm.OpenAIConfig{APIKey: c.LLM.OpenAI.APIKey, Model: or(c.LLM.OpenAI.Model, out.OpenAI.Model), BaseURL: c.LLM.OpenAI.BaseURL}
	out.Gemini = llm.GeminiConfig{APIKey: c.LLM.Gemini.APIKey, Model: or(c.LLM.Gemini.Model, out.Gemini.Model)}
	out.OpenRouter = llm.OpenRouterConfig{APIKey: c.LLM.OpenRouter.APIKey, Model: or(c.LLM.OpenRouter.Model, out.OpenRouter.Model), BaseURL: c.LLM.OpenRouter.BaseURL}

	if out.HasKey() {
		return out, out.Validate()
	}
	if c.LLM.Provider == "" {
		if found, ok := llm.DiscoverConfig(); ok {
			found.Timeout = out.Timeout
			found.Retry = out.Retry
			return found, nil
		}
	}
	return out, ErrNoProvider
}

// ToAssistant returns the tutor settings.
func (c *Config) ToAssistant() assistant.Config {
	return assistant.Config{
		Language:    c.Assistant.Language,
		MaxTokens:   c.Assistant.MaxTokens,
		Temperature: c.Assistant.Temperature,
	}
}

// ToSpeech returns the speech settings.
func (c *Config) ToSpeech() speech.Config {
	return speech.Config{
		Command:  c.Speech.Command,
		Language: c.Speech.Language,
		Rate:     c.Speech.Rate,
	}
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
