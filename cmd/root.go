package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptive/internal/config"
	"github.com/abhisek/adaptive/internal/curriculum"
	"github.com/abhisek/adaptive/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "adaptive",
	Short: "Adaptive learning decision engine",
	Long: "adaptive picks the next question for a learner from their recent answers:\n" +
		"whether to make it easier or harder, and whether to stay on the topic or move on.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ADAPTIVE_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides ADAPTIVE_CONFIG env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(decideCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(curriculumCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads configuration using the --config flag when set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// cliLogger is the text logger used by one-shot commands.
func cliLogger(cmd *cobra.Command, cfg config.Config) *slog.Logger {
	lc := cfg.Log
	lc.Format = "text"
	return lc.NewLogger(cmd.ErrOrStderr())
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path (config file or ADAPTIVE_DB), then the default
// XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.History.DBPath != "" {
		return cfg.History.DBPath, store.EnsureDir(cfg.History.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the attempt and decision database.
func openStore(cmd *cobra.Command, cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// loadCurriculum returns the configured curriculum, or the built-in one.
func loadCurriculum(cfg config.Config) (*curriculum.Map, error) {
	if cfg.Curriculum.File == "" {
		return curriculum.Default(), nil
	}
	return curriculum.Load(cfg.Curriculum.File)
}
