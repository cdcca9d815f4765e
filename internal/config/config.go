// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/daibit/internal/model"
	"github.com/jmylchreest/daibit/internal/store"
	"github.com/jmylchreest/daibit/internal/theme"
)

// Default configuration values.
const (
	DefaultBackend    = store.BackendFile
	DefaultMapping    = string(theme.MappingLegacy)
	DefaultHeatmapLen = 14
	DefaultFormat     = "plain"
)

// Config represents the daibit configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Theme   ThemeConfig   `toml:"theme"`
	TUI     TUIConfig     `toml:"tui"`
	Output  OutputConfig  `toml:"output"`
}

// StorageConfig selects where state is persisted.
type StorageConfig struct {
	Backend string `toml:"backend"` // file, sqlite, memory
	Path    string `toml:"path"`    // Empty = default under the data directory
	Key     string `toml:"key"`     // Storage key for the state entry
}

// ThemeConfig holds the theme used for fresh state and how backgrounds resolve.
type ThemeConfig struct {
	Accent            string `toml:"accent"`
	Background        string `toml:"background"`
	BackgroundMapping string `toml:"background_mapping"` // legacy, intended
}

// TUIConfig holds TUI-specific settings.
type TUIConfig struct {
	Days     int  `toml:"days"` // Heatmap length
	ShowHelp bool `toml:"show_help"`
}

// OutputConfig holds CLI output defaults.
type OutputConfig struct {
	Format string `toml:"format"` // plain, json, yaml, ids
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: DefaultBackend,
			Path:    "", // Resolved from backend
			Key:     store.DefaultKey,
		},
		Theme: ThemeConfig{
			Accent:            string(model.DefaultAccent),
			Background:        string(model.DefaultBackground),
			BackgroundMapping: DefaultMapping,
		},
		TUI: TUIConfig{
			Days:     DefaultHeatmapLen,
			ShowHelp: true,
		},
		Output: OutputConfig{
			Format: DefaultFormat,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "daibit", "config.toml")
}

// DataPath returns the path to the data directory.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share.
func DataPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "daibit")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case store.BackendFile, store.BackendSQLite, store.BackendMemory:
	default:
		return fmt.Errorf("storage.backend: %w: %q", store.ErrUnknownBackend, c.Storage.Backend)
	}
	if _, err := theme.ParseAccent(c.Theme.Accent); err != nil {
		return fmt.Errorf("theme.accent: %w", err)
	}
	if _, err := theme.ParseBackground(c.Theme.Background); err != nil {
		return fmt.Errorf("theme.background: %w", err)
	}
	if _, err := theme.ParseMapping(c.Theme.BackgroundMapping); err != nil {
		return fmt.Errorf("theme.background_mapping: %w", err)
	}
	if c.TUI.Days <= 0 {
		return fmt.Errorf("tui.days must be greater than 0")
	}
	return nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// StoragePath returns the configured storage path, or the backend's default
// file under the data directory.
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	name := "storage.json"
	if c.Storage.Backend == store.BackendSQLite {
		name = "storage.sqlite"
	}
	return filepath.Join(DataPath(), name)
}

// DefaultTheme returns the configured theme selection for fresh state.
// Validate has already checked both values.
func (c *Config) DefaultTheme() model.Theme {
	accent, err := theme.ParseAccent(c.Theme.Accent)
	if err != nil {
		accent = model.DefaultAccent
	}
	bg, err := theme.ParseBackground(c.Theme.Background)
	if err != nil {
		bg = model.DefaultBackground
	}
	return model.Theme{Accent: accent, Background: bg}
}

// Resolver returns a theme resolver for the configured background mapping.
func (c *Config) Resolver() *theme.Resolver {
	mapping, err := theme.ParseMapping(c.Theme.BackgroundMapping)
	if err != nil {
		mapping = theme.MappingLegacy
	}
	return theme.NewResolver(mapping)
}

// SeedState returns a fresh default state using the configured theme.
func (c *Config) SeedState() *model.State {
	s := model.DefaultState()
	s.Theme = c.DefaultTheme()
	return s
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	path := DataPath()
	if path == "" {
		return errors.New("unable to determine data directory")
	}
	return os.MkdirAll(path, 0755)
}
