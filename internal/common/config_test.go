package common

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_DefaultPort(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port default = %d, want %d", cfg.Server.Port, 8080)
	}
}

func TestConfig_PortEnvOverride(t *testing.T) {
	t.Setenv("STOCKPULSE_PORT", "9090")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d after env override, want %d", cfg.Server.Port, 9090)
	}
}

func TestConfig_InvalidPortEnvIgnored(t *testing.T) {
	t.Setenv("STOCKPULSE_PORT", "not-a-port")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want default 8080", cfg.Server.Port)
	}
}

func TestConfig_APIKeyEnvOverride(t *testing.T) {
	t.Setenv("ALPHA_VANTAGE_API_KEY", "from-env")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Clients.AlphaVantage.APIKey != "from-env" {
		t.Errorf("AlphaVantage.APIKey = %q, want %q", cfg.Clients.AlphaVantage.APIKey, "from-env")
	}
	if !cfg.Clients.AlphaVantage.HasCredential() {
		t.Error("HasCredential() = false, want true")
	}
}

func TestConfig_NoCredentialByDefault(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Clients.AlphaVantage.HasCredential() {
		t.Error("default config should run without a provider credential")
	}
}

func TestConfig_WarmCacheOff(t *testing.T) {
	t.Setenv("STOCKPULSE_WARM_CACHE", "OFF")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Warm.Enabled {
		t.Error("Warm.Enabled = true, want false")
	}
}

func TestConfig_SyntheticSeedEnv(t *testing.T) {
	t.Setenv("STOCKPULSE_SYNTHETIC_SEED", "42")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Synthetic.Seed != 42 {
		t.Errorf("Synthetic.Seed = %d, want 42", cfg.Synthetic.Seed)
	}
}

func TestConfig_GetTimeout(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"10s", 10 * time.Second},
		{"2s", 2 * time.Second},
		{"", 10 * time.Second},
		{"garbage", 10 * time.Second},
		{"-1s", 10 * time.Second},
	}
	for _, tt := range tests {
		c := AlphaVantageConfig{Timeout: tt.in}
		if got := c.GetTimeout(); got != tt.want {
			t.Errorf("GetTimeout(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoadConfig_TOMLThenYAML(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "stockpulse.toml")
	yamlPath := filepath.Join(dir, "override.yaml")

	tomlData := `
environment = "production"

[server]
port = 7000

[cache]
backend = "redis"

[cache.redis]
address = "redis:6379"
`
	yamlData := `
server:
  port: 7100
logging:
  level: debug
`
	if err := os.WriteFile(tomlPath, []byte(tomlData), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(yamlPath, []byte(yamlData), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(tomlPath, filepath.Join(dir, "missing.toml"), yamlPath)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if !cfg.IsProduction() {
		t.Errorf("Environment = %q, want production", cfg.Environment)
	}
	if cfg.Server.Port != 7100 {
		t.Errorf("Server.Port = %d, want 7100 (yaml overrides toml)", cfg.Server.Port)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.Redis.Address != "redis:6379" {
		t.Errorf("Cache = %+v, want redis at redis:6379", cfg.Cache)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Clients.AlphaVantage.BaseURL != "https://www.alphavantage.co" {
		t.Errorf("BaseURL default lost: %q", cfg.Clients.AlphaVantage.BaseURL)
	}
}

func TestLoadConfig_ParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("[server\nport = "), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected parse error for malformed toml")
	}
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{fmt.Errorf("%w: bad period", ErrInvalidInput), "invalid_input"},
		{fmt.Errorf("quote AAPL: %w", ErrSourceRateLimited), "source_rate_limited"},
		{fmt.Errorf("%w: deadline", ErrSourceTimeout), "source_timeout"},
		{ErrSourceUnavailable, "source_unavailable"},
		{ErrNotFound, "not_found"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		if got := ErrorKind(tt.err); got != tt.want {
			t.Errorf("ErrorKind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.234, 1.23},
		{1.235, 1.24},
		{-1.235, -1.24},
		{100, 100},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate(0.69999, 3); got != 0.699 {
		t.Errorf("Truncate(0.69999, 3) = %v, want 0.699", got)
	}
	if got := Truncate(0.3, 3); got != 0.3 {
		t.Errorf("Truncate(0.3, 3) = %v, want 0.3", got)
	}
}

func TestFallbackCounter(t *testing.T) {
	var c FallbackCounter
	c.Record(nil)
	c.Record(fmt.Errorf("%w: x", ErrSourceTimeout))
	c.Record(fmt.Errorf("%w: x", ErrSourceTimeout))
	c.Record(ErrSourceRateLimited)
	c.Record(ErrSourceUnavailable)
	c.Record(errors.New("other"))

	got := c.Snapshot()
	want := map[string]int64{
		"source_rate_limited": 1,
		"source_timeout":      2,
		"source_unavailable":  1,
		"other":               1,
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("Snapshot()[%q] = %d, want %d", k, got[k], v)
		}
	}
}
