// Package common provides shared utilities for the tracker
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the tracker
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Clients     ClientsConfig `toml:"clients"`
	Prices      PricesConfig  `toml:"prices"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds the ledger storage location.
type StorageConfig struct {
	Path string `toml:"path"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Data912 Data912Config `toml:"data912"`
}

// Data912Config holds data912 API configuration
type Data912Config struct {
	BaseURL    string `toml:"base_url"`
	RateLimit  int    `toml:"rate_limit"`
	Timeout    string `toml:"timeout"`
	MaxRetries int    `toml:"max_retries"`
	RetryDelay string `toml:"retry_delay"`
}

// GetTimeout parses and returns the per-attempt timeout duration
func (c *Data912Config) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// GetRetryDelay parses and returns the inter-attempt delay
func (c *Data912Config) GetRetryDelay() time.Duration {
	d, err := time.ParseDuration(c.RetryDelay)
	if err != nil {
		return 1 * time.Second
	}
	return d
}

// PricesConfig holds price cache configuration
type PricesConfig struct {
	Freshness string `toml:"freshness"`
}

// GetFreshness parses and returns the cache freshness window
func (c *PricesConfig) GetFreshness() time.Duration {
	d, err := time.ParseDuration(c.Freshness)
	if err != nil {
		return FreshnessPrices
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Path: "data",
		},
		Clients: ClientsConfig{
			Data912: Data912Config{
				BaseURL:    "https://data912.com",
				RateLimit:  10,
				Timeout:    "10s",
				MaxRetries: 2,
				RetryDelay: "1s",
			},
		},
		Prices: PricesConfig{
			Freshness: "5m",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("TRACKER_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("TRACKER_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("TRACKER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("TRACKER_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("TRACKER_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if url := os.Getenv("TRACKER_DATA912_URL"); url != "" {
		config.Clients.Data912.BaseURL = url
	}

	if fresh := os.Getenv("TRACKER_PRICE_FRESHNESS"); fresh != "" {
		config.Prices.Freshness = fresh
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
