// Package config loads and validates the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/mttlgn/ParseAnalysisVisualizer/internal/raids"
)

// Config represents the application configuration.
type Config struct {
	// Data file locations
	Data DataConfig `toml:"data"`

	// Raid reference data
	Raids RaidsConfig `toml:"raids"`

	// HTTP server configuration
	Server ServerConfig `toml:"server"`

	// Snapshot database configuration
	Storage StorageConfig `toml:"storage"`

	// Chart rendering configuration
	Charts ChartsConfig `toml:"charts"`
}

// DataConfig locates the CSV inputs.
type DataConfig struct {
	RaidDir    string `toml:"raid_dir"`    // Directory of per-raid parse CSVs
	FilePrefix string `toml:"file_prefix"` // Filename prefix stripped from raid names
	MythicDir  string `toml:"mythic_dir"`  // Directory of M+ scaling CSVs (optional)
	Watch      bool   `toml:"watch"`       // Reload when files change
}

// RaidsConfig overrides reference data.
type RaidsConfig struct {
	// Order is the chronological raid order, oldest first. Empty means
	// the built-in release order.
	Order []string `toml:"order"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port           int      `toml:"port"`             // Listen port
	OpenBrowser    bool     `toml:"open_browser"`     // Open the dashboard on startup
	AllowedOrigins []string `toml:"allowed_origins"`  // CORS origins
	RateLimitRPS   float64  `toml:"rate_limit_rps"`   // Requests per second (0 = unlimited)
	RateLimitBurst int      `toml:"rate_limit_burst"` // Burst size for the limiter
}

// StorageConfig contains snapshot database settings.
type StorageConfig struct {
	Path        string `toml:"path"`         // SQLite database path
	AutoMigrate bool   `toml:"auto_migrate"` // Run pending migrations on open
}

// ChartsConfig contains chart rendering settings.
type ChartsConfig struct {
	Theme  string `toml:"theme"`  // echarts theme
	Width  string `toml:"width"`  // Chart width (e.g., "900px")
	Height string `toml:"height"` // Chart height (e.g., "500px")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			RaidDir:    "parse_data",
			FilePrefix: raids.DefaultFilePrefix,
			MythicDir:  "mythic_scaling_data",
			Watch:      true,
		},
		Server: ServerConfig{
			Port:           8080,
			OpenBrowser:    false,
			AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
			RateLimitRPS:   50,
			RateLimitBurst: 100,
		},
		Storage: StorageConfig{
			Path:        "",
			AutoMigrate: true,
		},
		Charts: ChartsConfig{
			Theme:  "dark",
			Width:  "900px",
			Height: "500px",
		},
	}
}

// DefaultPath returns the default configuration file path, creating its
// directory if needed.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".parseviz")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads the configuration from the given path, or the default path
// when path is empty. Returns the default config if the file doesn't
// exist.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Unset fields keep their defaults.
	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}

// Save saves the configuration to the given path, or the default path
// when path is empty.
func (c *Config) Save(path string) error {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.RateLimitRPS < 0 {
		return fmt.Errorf("rate limit cannot be negative: %v", c.Server.RateLimitRPS)
	}
	if c.Server.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit burst cannot be negative: %d", c.Server.RateLimitBurst)
	}
	if c.Data.RaidDir == "" {
		return fmt.Errorf("raid data directory is not set")
	}
	return nil
}

// RaidOrder returns the configured raid order, falling back to the
// built-in release order.
func (c *Config) RaidOrder() []string {
	if len(c.Raids.Order) > 0 {
		order := make([]string, len(c.Raids.Order))
		copy(order, c.Raids.Order)
		return order
	}
	return raids.DefaultOrder()
}
