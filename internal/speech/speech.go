// Package speech reads character lines aloud through an installed
// text-to-speech command.
package speech

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// ErrUnavailable is returned when no speech command can be found.
var ErrUnavailable = errors.New("speech output is not available")

// Speaker reads text aloud without blocking the caller.
type Speaker interface {
	Speak(text string) error
	Available() bool
}

// Config selects and tunes the speech command.
type Config struct {
	// Command overrides auto-detection. Empty means trying each of Candidates.
	Command  string
	Language string // BCP-47 style tag, e.g. "en", "mk"
	Rate     int    // words per minute; 0 keeps the command default
}

// DefaultConfig returns the auto-detecting configuration.
func DefaultConfig() Config {
	return Config{Language: "en", Rate: 160}
}

// Candidates are probed in order when no command is configured.
var Candidates = []string{"espeak-ng", "espeak", "spd-say", "say"}

// ExecSpeaker runs a TTS command per utterance. A new utterance stops the
// previous one.
type ExecSpeaker struct {
	cfg      Config
	path     string
	name     string
	logger   *zap.Logger
	start    func(cmd *exec.Cmd) error
	mu       sync.Mutex
	current  *exec.Cmd
	lookPath func(string) (string, error)
}

// Option customizes an ExecSpeaker.
type Option func(*ExecSpeaker)

// WithLookPath replaces exec.LookPath, mainly for tests.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(s *ExecSpeaker) { s.lookPath = fn }
}

// WithStarter replaces cmd.Start, mainly for tests.
func WithStarter(fn func(cmd *exec.Cmd) error) Option {
	return func(s *ExecSpeaker) { s.start = fn }
}

// New detects a speech command. The returned speaker is always usable;
// Speak reports ErrUnavailable when detection found nothing.
func New(cfg Config, logger *zap.Logger, opts ...Option) *ExecSpeaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ExecSpeaker{
		cfg:      cfg,
		logger:   logger,
		lookPath: exec.LookPath,
		start:    func(cmd *exec.Cmd) error { return cmd.Start() },
	}
	for _, o := range opts {
		o(s)
	}

	candidates := Candidates
	if cfg.Command != "" {
		candidates = []string{cfg.Command}
	}
	for _, c := range candidates {
		if p, err := s.lookPath(c); err == nil {
			s.path = p
			s.name = baseName(c)
			break
		}
	}
	if s.path == "" {
		logger.Info("no speech command found", zap.Strings("candidates", candidates))
	} else {
		logger.Debug("speech command ready", zap.String("command", s.path))
	}
	return s
}

// Available reports whether a speech command was found.
func (s *ExecSpeaker) Available() bool {
	return s.path != ""
}

// Speak starts reading text and returns immediately.
func (s *ExecSpeaker) Speak(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if !s.Available() {
		return ErrUnavailable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	cmd := exec.Command(s.path, Args(s.name, s.cfg, text)...)
	if err := s.start(cmd); err != nil {
		s.logger.Warn("speech command failed", zap.String("command", s.path), zap.Error(err))
		return fmt.Errorf("start %s: %w", s.name, err)
	}
	s.current = cmd
	if cmd.Process != nil {
		go func() { _ = cmd.Wait() }()
	}
	return nil
}

// Stop interrupts the current utterance, if any.
func (s *ExecSpeaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *ExecSpeaker) stopLocked() {
	if s.current != nil && s.current.Process != nil && s.current.ProcessState == nil {
		_ = s.current.Process.Kill()
	}
	s.current = nil
}

// Args builds the argument list for a known speech command.
func Args(name string, cfg Config, text string) []string {
	var args []string
	switch name {
	case "espeak-ng", "espeak":
		if cfg.Language != "" {
			args = append(args, "-v", cfg.Language)
		}
		if cfg.Rate > 0 {
			args = append(args, "-s", strconv.Itoa(cfg.Rate))
		}
	case "spd-say":
		if cfg.Language != "" {
			args = append(args, "-l", cfg.Language)
		}
	case "say":
		if cfg.Rate > 0 {
			args = append(args, "-r", strconv.Itoa(cfg.Rate))
		}
	}
	return append(args, text)
}

func baseName(cmd string) string {
	if i := strings.LastIndexAny(cmd, `/\`); i >= 0 {
		return cmd[i+1:]
	}
	return cmd
}

// Nop is a Speaker with no output device.
type Nop struct{}

func (Nop) Speak(string) error { return ErrUnavailable }
func (Nop) Available() bool    { return false }
