package cmd

import (
	"github.com/abhisek/mathflow/internal/config"
	"github.com/abhisek/mathflow/internal/content"
	"github.com/abhisek/mathflow/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mathflow",
	Short: "Interactive fractions textbook",
	Long:  "MathFlow — a terminal textbook on fractions with theory, checked practice and an AI tutor.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHFLOW_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/mathflow/config.yaml)")
	rootCmd.PersistentFlags().String("content", "", "Path to a lesson catalog YAML file (default: built-in fractions unit)")
	rootCmd.Flags().StringP("lesson", "l", "", "Lesson to open first")

	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// loadConfig reads the config file named by --config, or the default one.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// loadCatalog loads the catalog from --content, then content.path, then
// the embedded unit.
func loadCatalog(cmd *cobra.Command, cfg *config.Config) (*content.Catalog, error) {
	path, _ := cmd.Flags().GetString("content")
	if path == "" && cfg != nil {
		path = cfg.Content.Path
	}
	return content.Load(path)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the db config key (which MATHFLOW_DB also sets), then the default
// XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openStore opens the event store for the llm subcommands.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}
