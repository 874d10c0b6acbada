// Package common provides shared utilities for StockPulse
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for StockPulse
type Config struct {
	Environment string          `toml:"environment" yaml:"environment"`
	Server      ServerConfig    `toml:"server" yaml:"server"`
	Clients     ClientsConfig   `toml:"clients" yaml:"clients"`
	Cache       CacheConfig     `toml:"cache" yaml:"cache"`
	Synthetic   SyntheticConfig `toml:"synthetic" yaml:"synthetic"`
	Warm        WarmConfig      `toml:"warm" yaml:"warm"`
	Logging     LoggingConfig   `toml:"logging" yaml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host" yaml:"host"`
	Port int    `toml:"port" yaml:"port"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	AlphaVantage AlphaVantageConfig `toml:"alphavantage" yaml:"alphavantage"`
}

// AlphaVantageConfig holds Alpha Vantage API configuration.
// An empty APIKey runs the service in full-synthetic mode.
type AlphaVantageConfig struct {
	BaseURL   string `toml:"base_url" yaml:"base_url"`
	APIKey    string `toml:"api_key" yaml:"api_key"`
	RateLimit int    `toml:"rate_limit" yaml:"rate_limit"`
	Timeout   string `toml:"timeout" yaml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *AlphaVantageConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// HasCredential reports whether a provider API key is configured.
func (c *AlphaVantageConfig) HasCredential() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend string      `toml:"backend" yaml:"backend"` // "memory" or "redis"
	Shards  int         `toml:"shards" yaml:"shards"`
	Redis   RedisConfig `toml:"redis" yaml:"redis"`
}

// RedisConfig holds connection settings for the redis cache backend
type RedisConfig struct {
	Address  string `toml:"address" yaml:"address"`
	Password string `toml:"password" yaml:"password"`
	DB       int    `toml:"db" yaml:"db"`
}

// SyntheticConfig controls the fallback data generator.
type SyntheticConfig struct {
	Seed uint64 `toml:"seed" yaml:"seed"` // 0 = random seed per process
}

// WarmConfig controls the periodic cache warm-up job
type WarmConfig struct {
	Enabled  bool     `toml:"enabled" yaml:"enabled"`
	Schedule string   `toml:"schedule" yaml:"schedule"`
	Symbols  []string `toml:"symbols" yaml:"symbols"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "console" or "json"
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Clients: ClientsConfig{
			AlphaVantage: AlphaVantageConfig{
				BaseURL:   "https://www.alphavantage.co",
				RateLimit: 5,
				Timeout:   "10s",
			},
		},
		Cache: CacheConfig{
			Backend: "memory",
			Shards:  32,
			Redis: RedisConfig{
				Address: "localhost:6379",
			},
		},
		Warm: WarmConfig{
			Enabled:  true,
			Schedule: "@every 5m",
			Symbols:  []string{"AAPL", "MSFT", "GOOGL"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Files ending in .yaml or .yml are parsed as YAML, everything else as TOML.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Later files override earlier ones
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, config)
		default:
			err = toml.Unmarshal(data, config)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("STOCKPULSE_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("STOCKPULSE_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("STOCKPULSE_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("STOCKPULSE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	for _, name := range []string{"ALPHA_VANTAGE_API_KEY", "STOCKPULSE_ALPHA_VANTAGE_API_KEY"} {
		if v := os.Getenv(name); v != "" {
			config.Clients.AlphaVantage.APIKey = v
			break
		}
	}

	if v := os.Getenv("ALPHA_VANTAGE_BASE_URL"); v != "" {
		config.Clients.AlphaVantage.BaseURL = v
	}

	if v := os.Getenv("STOCKPULSE_CACHE_BACKEND"); v != "" {
		config.Cache.Backend = strings.ToLower(v)
	}

	if v := os.Getenv("STOCKPULSE_REDIS_ADDR"); v != "" {
		config.Cache.Redis.Address = v
	}

	if v := os.Getenv("STOCKPULSE_SYNTHETIC_SEED"); v != "" {
		if seed, err := strconv.ParseUint(v, 10, 64); err == nil {
			config.Synthetic.Seed = seed
		}
	}

	if v := os.Getenv("STOCKPULSE_WARM_CACHE"); strings.EqualFold(v, "off") {
		config.Warm.Enabled = false
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
