// Package config provides configuration loading for the portfolio dashboard.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the dashboard configuration.
type Config struct {
	// Wallet addresses whose positions are combined into one portfolio
	Wallets []string `yaml:"wallets"`

	// Liquidation fractions estimated per position, each in (0, 1]
	Fractions []float64 `yaml:"fractions"`

	// HTTP client settings
	HTTP HTTPConfig `yaml:"http"`

	// Position source settings
	DataAPI EndpointConfig `yaml:"data_api"`

	// Order book source settings
	CLOB EndpointConfig `yaml:"clob"`

	// WebSocket settings for watch mode
	WebSocket WebSocketConfig `yaml:"websocket"`

	// Snapshot history settings
	History HistoryConfig `yaml:"history"`

	// Watch mode settings
	Watch WatchConfig `yaml:"watch"`
}

// HTTPConfig contains HTTP client settings.
type HTTPConfig struct {
	// Request timeout for REST calls
	Timeout time.Duration `yaml:"timeout"`

	// Minimum position size to include
	SizeThreshold float64 `yaml:"size_threshold"`
}

// EndpointConfig overrides an API base URL (empty means the default).
type EndpointConfig struct {
	URL string `yaml:"url"`
}

// WebSocketConfig contains WebSocket settings.
type WebSocketConfig struct {
	// Custom WebSocket URL (optional)
	URL string `yaml:"url"`

	// Initial reconnection backoff
	InitialBackoff time.Duration `yaml:"initial_backoff"`

	// Maximum reconnection backoff
	MaxBackoff time.Duration `yaml:"max_backoff"`

	// Backoff multiplier
	BackoffFactor float64 `yaml:"backoff_factor"`
}

// HistoryConfig contains snapshot persistence settings.
type HistoryConfig struct {
	// Backend type: "sqlite", "file" or "none"
	Type string `yaml:"type"`

	// Database path for sqlite storage
	Path string `yaml:"path"`

	// Output directory for file storage
	OutputDir string `yaml:"output_dir"`

	// File rotation interval
	RotationInterval time.Duration `yaml:"rotation_interval"`
}

// WatchConfig contains settings for live watch mode.
type WatchConfig struct {
	// How often to recompute and re-render from the book cache
	RenderInterval time.Duration `yaml:"render_interval"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Fractions: []float64{0.25, 0.50, 0.75, 1.00},
		HTTP: HTTPConfig{
			Timeout: 30 * time.Second,
		},
		WebSocket: WebSocketConfig{
			InitialBackoff: 1 * time.Second,
			MaxBackoff:     30 * time.Second,
			BackoffFactor:  2.0,
		},
		History: HistoryConfig{
			Type:             "none",
			Path:             "data/portfolio.db",
			OutputDir:        "data",
			RotationInterval: 1 * time.Hour,
		},
		Watch: WatchConfig{
			RenderInterval: 5 * time.Second,
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if len(c.Fractions) == 0 {
		return fmt.Errorf("at least one liquidation fraction is required")
	}
	for _, f := range c.Fractions {
		if f <= 0 || f > 1 {
			return fmt.Errorf("invalid liquidation fraction: %v (must be in (0, 1])", f)
		}
	}

	switch c.History.Type {
	case "sqlite":
		if c.History.Path == "" {
			return fmt.Errorf("path required for sqlite history")
		}
	case "file":
		if c.History.OutputDir == "" {
			return fmt.Errorf("output_dir required for file history")
		}
	case "none", "":
	default:
		return fmt.Errorf("invalid history type: %s", c.History.Type)
	}

	return nil
}
