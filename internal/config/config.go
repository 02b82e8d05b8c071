// Package config loads movierec settings.
//
// Precedence, lowest to highest: built-in defaults, ~/.movierec/config.yaml,
// a .env file in the working directory, then process environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Autocomplete AutocompleteConfig `yaml:"autocomplete"`
	UI           UIConfig           `yaml:"ui"`
	Logging      LoggingConfig      `yaml:"logging"`
	History      HistoryConfig      `yaml:"history"`

	// DataDir holds logs, the event log and the history database.
	DataDir string `yaml:"data_dir"`
}

// ServerConfig describes the recommendation backend.
type ServerConfig struct {
	BaseURL       string        `yaml:"base_url"`
	Timeout       time.Duration `yaml:"timeout"`
	RatePerSecond float64       `yaml:"rate_per_second"` // 0 = unlimited
}

// AutocompleteConfig tunes the suggestion debounce.
type AutocompleteConfig struct {
	Debounce    time.Duration `yaml:"debounce"`
	MinQueryLen int           `yaml:"min_query_len"`
}

// UIConfig holds terminal preferences.
type UIConfig struct {
	AltScreen bool `yaml:"alt_screen"`
	Mouse     bool `yaml:"mouse"`
}

// LoggingConfig controls the rotated log file.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// HistoryConfig controls the recommendation history database.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // defaults to <data_dir>/history.db
}

// Default returns the built-in configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Server: ServerConfig{
			BaseURL: "http://localhost:5000",
			Timeout: 10 * time.Second,
		},
		Autocomplete: AutocompleteConfig{
			Debounce:    300 * time.Millisecond,
			MinQueryLen: 2,
		},
		UI: UIConfig{
			AltScreen: true,
			Mouse:     true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		History: HistoryConfig{
			Enabled: true,
		},
		DataDir: filepath.Join(home, ".movierec"),
	}
}

// DefaultPath returns ~/.movierec/config.yaml.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".movierec", "config.yaml")
}

// Load reads path (DefaultPath when empty), applies .env and environment
// overrides and validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	// .env never overrides variables already set in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays MOVIEREC_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("MOVIEREC_SERVER_URL"); v != "" {
		c.Server.BaseURL = v
	}
	if v := os.Getenv("MOVIEREC_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: MOVIEREC_TIMEOUT: %w", err)
		}
		c.Server.Timeout = d
	}
	if v := os.Getenv("MOVIEREC_DEBOUNCE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: MOVIEREC_DEBOUNCE: %w", err)
		}
		c.Autocomplete.Debounce = d
	}
	if v := os.Getenv("MOVIEREC_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("MOVIEREC_HISTORY"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: MOVIEREC_HISTORY: %w", err)
		}
		c.History.Enabled = on
	}
	if v := os.Getenv("MOVIEREC_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	return nil
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	if c.Server.BaseURL == "" {
		return errors.New("config: server.base_url is required")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("config: server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Server.RatePerSecond < 0 {
		return fmt.Errorf("config: server.rate_per_second must not be negative, got %v", c.Server.RatePerSecond)
	}
	if c.Autocomplete.Debounce <= 0 {
		return fmt.Errorf("config: autocomplete.debounce must be positive, got %s", c.Autocomplete.Debounce)
	}
	if c.Autocomplete.MinQueryLen < 1 {
		return fmt.Errorf("config: autocomplete.min_query_len must be at least 1, got %d", c.Autocomplete.MinQueryLen)
	}
	if c.DataDir == "" {
		return errors.New("config: data_dir is required")
	}
	return nil
}

// LogDir is where the rotated text log lives.
func (c *Config) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// EventLogPath is the JSONL diagnostic event log.
func (c *Config) EventLogPath() string {
	return filepath.Join(c.DataDir, "movierec.events.jsonl")
}

// HistoryPath is the history database location.
func (c *Config) HistoryPath() string {
	if c.History.Path != "" {
		return c.History.Path
	}
	return filepath.Join(c.DataDir, "history.db")
}
