package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/daibit/internal/config"
	"github.com/jmylchreest/daibit/internal/model"
	"github.com/jmylchreest/daibit/internal/store"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		stateFile  string
		configPath string
	}
	logger *slog.Logger

	// storage backs stateStore and is closed after each command
	storage    store.Storage
	stateStore *store.StateStore
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "daibit",
	Short: "Daily habit tracker for the terminal",
	Long: `daibit tracks daily habits with per-day counts, streaks and a
colour-graded activity heatmap.

State is kept in a local key-value store (a JSON file by default) so the
CLI and the TUI can share it.

Running daibit without a subcommand launches the interactive TUI.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Setup logging
		setupLogger()

		// Load configuration
		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Use custom state file path if specified, otherwise use config/default
		statePath := globalOpts.stateFile
		if statePath == "" {
			if cfg.Storage.Path == "" && cfg.Storage.Backend != store.BackendMemory {
				if err := config.EnsureDataDir(); err != nil {
					return fmt.Errorf("failed to create data directory: %w", err)
				}
			}
			statePath = cfg.StoragePath()
		}

		// A failed command skips PersistentPostRunE
		if storage != nil {
			_ = storage.Close()
		}
		storage, err = store.Open(cfg.Storage.Backend, statePath)
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
		}
		logger.Debug("storage opened", "backend", cfg.Storage.Backend, "path", statePath)

		stateStore = store.NewStateStore(storage, store.StateOptions{
			Key:      cfg.Storage.Key,
			Resolver: cfg.Resolver(),
			Logger:   logger,
		})
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if storage != nil {
			err := storage.Close()
			storage = nil
			return err
		}
		return nil
	},
	// Default to TUI when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.stateFile, "state-file", "",
		"Path to state storage (default: ~/.local/share/daibit/storage.json)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/daibit/config.toml)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// statePath returns the path of the file-backed storage, or "" for backends
// that cannot be watched.
func statePath() string {
	if fs, ok := storage.(*store.FileStorage); ok {
		return fs.Path()
	}
	return ""
}

// loadForUpdate loads the state a command is about to modify. Defaults are
// seeded only when nothing is stored; an unreadable blob is never overwritten.
func loadForUpdate() (*model.State, error) {
	snap, err := stateStore.Load()
	if err == nil {
		return snap.State, nil
	}
	if errors.Is(err, store.ErrNoState) {
		return cfg.SeedState(), nil
	}
	return nil, fmt.Errorf("%w (run 'daibit state reset' to start over)", err)
}
