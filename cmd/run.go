package cmd

import (
	"errors"
	"fmt"

	"github.com/abhisek/mathflow/internal/app"
	"github.com/abhisek/mathflow/internal/assistant"
	"github.com/abhisek/mathflow/internal/config"
	"github.com/abhisek/mathflow/internal/llm"
	"github.com/abhisek/mathflow/internal/logging"
	"github.com/abhisek/mathflow/internal/mathrender"
	"github.com/abhisek/mathflow/internal/speech"
	"github.com/abhisek/mathflow/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runApp loads config and content, opens the store, builds dependencies,
// and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Config{
		Level:    cfg.Log.Level,
		Path:     cfg.Log.Path,
		Disabled: cfg.Log.Disabled,
	})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	catalog, err := loadCatalog(cmd, cfg)
	if err != nil {
		return fmt.Errorf("load lessons: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	var provider llm.Provider
	llmCfg, err := cfg.ToLLM()
	switch {
	case errors.Is(err, config.ErrNoProvider):
		logger.Info("no llm provider configured, tutor runs in demo mode")
	case err != nil:
		logger.Warn("invalid llm config, tutor runs in demo mode", zap.Error(err))
	default:
		provider, err = llm.NewProvider(ctx, llmCfg, st.EventRepo(), logger)
		if err != nil {
			logger.Warn("llm provider unavailable, tutor runs in demo mode", zap.Error(err))
			provider = nil
		}
	}

	start, _ := cmd.Flags().GetString("lesson")
	if start == "" {
		start = cfg.Content.DefaultLesson
	}

	logger.Info("starting",
		zap.String("version", version),
		zap.String("config", cfg.File),
		zap.String("db", dbPath),
		zap.Int("lessons", catalog.Len()),
		zap.Bool("tutor", provider != nil))

	return app.Run(app.Options{
		Catalog:     catalog,
		Renderer:    mathrender.New(),
		Bridge:      assistant.NewBridge(provider, cfg.ToAssistant(), logger),
		Speaker:     speech.New(cfg.ToSpeech(), logger),
		Logger:      logger,
		StartLesson: start,
	})
}
