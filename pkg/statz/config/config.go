package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level      string            `mapstructure:"level"`
	Path       string            `mapstructure:"path"`
	Components map[string]string `mapstructure:"components"`
}

// HistoryConfig configures snapshot history storage.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"` // Badger directory (default XDG data path if empty)
	Keep    int    `mapstructure:"keep"`
}

// Config represents the application configuration.
type Config struct {
	Format         string `mapstructure:"format"`
	SampleInterval string `mapstructure:"sample_interval"`
	Processes      struct {
		Count int    `mapstructure:"count"`
		Sort  string `mapstructure:"sort"`
	} `mapstructure:"processes"`
	ExportDir string        `mapstructure:"export_dir"`
	History   HistoryConfig `mapstructure:"history"`
	Logging   LoggingConfig `mapstructure:"logging"`
}

// Load loads configuration from file and environment variables.
// Config file locations (in order of precedence):
//   - $XDG_CONFIG_HOME/statz/config.yaml
//   - $HOME/.config/statz/config.yaml
//
// Environment variables are prefixed with STATZ_ (e.g., STATZ_FORMAT).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		v.AddConfigPath(filepath.Join(xdgConfigHome, "statz"))
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	v.AddConfigPath(filepath.Join(homeDir, ".config", "statz"))

	v.SetEnvPrefix("STATZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("format", DefaultFormat)
	v.SetDefault("sample_interval", DefaultSampleInterval)
	v.SetDefault("processes.count", DefaultProcessCount)
	v.SetDefault("processes.sort", DefaultProcessSort)
	v.SetDefault("export_dir", DefaultExportDir)

	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", "") // Empty means use DefaultHistoryPath
	v.SetDefault("history.keep", DefaultHistoryKeep)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.path", "") // Empty means use the default XDG state path
	v.SetDefault("logging.components", map[string]string{
		"collect": "info",
		"compare": "info",
		"history": "warn",
		"tui":     "info",
	})

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if strings.HasPrefix(cfg.ExportDir, "~") {
		cfg.ExportDir = filepath.Join(homeDir, cfg.ExportDir[1:])
	}
	if strings.HasPrefix(cfg.History.Path, "~") {
		cfg.History.Path = filepath.Join(homeDir, cfg.History.Path[1:])
	}

	return &cfg, nil
}

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "statz"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "statz"), nil
}

// DataDir returns $XDG_DATA_HOME/statz/ for the history database.
func DataDir() string {
	return filepath.Join(xdg.DataHome, "statz")
}

// StateDir returns $XDG_STATE_HOME/statz/ for log files.
func StateDir() string {
	return filepath.Join(xdg.StateHome, "statz")
}

// DefaultHistoryPath returns the default history database path.
func DefaultHistoryPath() string {
	return filepath.Join(DataDir(), "history.db")
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	return filepath.Join(StateDir(), "statz.log")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	if err := os.MkdirAll(DataDir(), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	return nil
}

// EnsureStateDir creates the state directory if it doesn't exist.
func EnsureStateDir() error {
	if err := os.MkdirAll(StateDir(), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	return nil
}
