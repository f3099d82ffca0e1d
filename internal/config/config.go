// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/lfreitas/divan/internal/timeutil"
)

// Config holds the application configuration.
type Config struct {
	API      APIConfig      `toml:"api"`
	Schedule ScheduleConfig `toml:"schedule"`
	LLM      LLMConfig      `toml:"llm"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
}

// APIConfig holds remote service settings.
type APIConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// ScheduleConfig holds defaults prefilled into the agenda form.
type ScheduleConfig struct {
	DefaultStart           string `toml:"default_start"`           // e.g., "08:00"
	DefaultEnd             string `toml:"default_end"`             // e.g., "18:00"
	DefaultIntervalMinutes int    `toml:"default_interval"`        // e.g., 50
	CancellationPolicyDays int    `toml:"cancellation_policy_days"`
}

// LLMConfig holds LLM provider settings for report insights.
type LLMConfig struct {
	Provider string `toml:"provider"` // "none", "ollama", "copilot"
	Model    string `toml:"model"`    // e.g., "gpt-4o"
	BaseURL  string `toml:"base_url"` // e.g., "http://localhost:11434"
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:3000",
			TimeoutSeconds: 10,
		},
		Schedule: ScheduleConfig{
			DefaultStart:           "08:00",
			DefaultEnd:             "18:00",
			DefaultIntervalMinutes: 50,
			CancellationPolicyDays: 1,
		},
		LLM: LLMConfig{
			Provider: "none",
			Model:    "gpt-4o",
			BaseURL:  "http://localhost:11434",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "frappe",
		},
	}
}

// Timeout returns the API timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "divan.db"
	}
	return filepath.Join(home, ".local", "share", "divan", "divan.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "divan", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DIVAN_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("DIVAN_API_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.API.TimeoutSeconds = n
		}
	}

	if v := os.Getenv("DIVAN_SCHEDULE_START"); v != "" {
		cfg.Schedule.DefaultStart = v
	}
	if v := os.Getenv("DIVAN_SCHEDULE_END"); v != "" {
		cfg.Schedule.DefaultEnd = v
	}
	if v := os.Getenv("DIVAN_SCHEDULE_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Schedule.DefaultIntervalMinutes = n
		}
	}

	if v := os.Getenv("DIVAN_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("DIVAN_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("DIVAN_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	if v := os.Getenv("DIVAN_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	if v := os.Getenv("DIVAN_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api base_url must be set")
	}
	if c.API.TimeoutSeconds <= 0 {
		return errors.New("timeout_seconds must be positive")
	}

	if err := timeutil.ValidateTime(c.Schedule.DefaultStart); err != nil {
		return fmt.Errorf("default_start: %w", err)
	}
	if err := timeutil.ValidateTime(c.Schedule.DefaultEnd); err != nil {
		return fmt.Errorf("default_end: %w", err)
	}
	if c.Schedule.DefaultStart >= c.Schedule.DefaultEnd {
		return errors.New("default_start must be before default_end")
	}
	if c.Schedule.DefaultIntervalMinutes <= 0 {
		return errors.New("default_interval must be positive")
	}
	if c.Schedule.CancellationPolicyDays < 0 {
		return errors.New("cancellation_policy_days cannot be negative")
	}

	switch c.LLM.Provider {
	case "none", "ollama", "copilot":
	default:
		return fmt.Errorf("invalid llm provider: %s", c.LLM.Provider)
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
