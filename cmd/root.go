package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/educareer/internal/catalog"
	"github.com/abhisek/educareer/internal/config"
	"github.com/abhisek/educareer/internal/llm"
	"github.com/abhisek/educareer/internal/logger"
	"github.com/abhisek/educareer/internal/mentor"
	"github.com/abhisek/educareer/internal/oracle"
	"github.com/abhisek/educareer/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "educareer",
	Short: "Career training with an AI mentor",
	Long: "EduCareer: " + oracle.Slogan + ".\n\n" +
		"Pick a career track, take a placement test and work through daily tasks reviewed by an AI mentor.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides EDUCAREER_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("env", ".env", "Path to a dotenv file")
	rootCmd.PersistentFlags().Bool("offline", false, "Use canned content instead of an LLM provider")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the --config and --env flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env")
	cfg, err := config.Load(path, envFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the logger from cfg. The TUI owns the terminal, so
// interactive commands log to a file or not at all.
func newLogger(cfg *config.Config, interactive bool) (*logger.Logger, error) {
	switch {
	case cfg.Log.File != "":
		return logger.NewFile(cfg.Log.Mode, cfg.Log.File)
	case interactive:
		return logger.Nop(), nil
	default:
		return logger.New(cfg.Log.Mode)
	}
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured DSN, then EDUCAREER_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.Store.DSN != "" {
		return cfg.Store.DSN, store.EnsureDir(cfg.Store.DSN)
	}
	return store.DefaultDBPath()
}

// openStore opens the event store named by the flags and config.
func openStore(cmd *cobra.Command, cfg *config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// buildOracle returns the content oracle. Without --offline it needs a
// working LLM provider; offline mode serves canned content.
func buildOracle(ctx context.Context, cmd *cobra.Command, cfg *config.Config, eventRepo store.EventRepo, log *logger.Logger, opts ...llm.FactoryOption) (oracle.ContentOracle, error) {
	if offline, _ := cmd.Flags().GetBool("offline"); offline {
		log.Info("offline mode, using canned content")
		return oracle.NewFake(), nil
	}
	if err := cfg.LLM.Validate(); err != nil {
		return nil, fmt.Errorf("LLM provider: %w (use --offline to run without one)", err)
	}

	opts = append(opts, llm.WithLogger(log))
	provider, err := llm.NewProvider(ctx, cfg.LLM, eventRepo, opts...)
	if err != nil {
		return nil, fmt.Errorf("LLM provider: %w", err)
	}
	return oracle.WithFallback(oracle.New(provider, catalog.Default(), oracle.DefaultConfig()), log), nil
}

// buildMentor wires the oracle into the mentor service.
func buildMentor(ctx context.Context, cmd *cobra.Command, cfg *config.Config, eventRepo store.EventRepo, log *logger.Logger, opts ...llm.FactoryOption) (*mentor.Service, error) {
	o, err := buildOracle(ctx, cmd, cfg, eventRepo, log, opts...)
	if err != nil {
		return nil, err
	}
	return mentor.New(o, log), nil
}
