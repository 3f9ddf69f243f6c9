package careline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/careline/careline/plugin"
)

// DefaultConfig returns the configuration used when no config file is given:
// local listener, ./data/kb corpus, always-on styling, and the standard
// plugin chain (sanitizer before, styler and turn-logger after).
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr: ":8000",
			RateLimit: RateLimitConfig{
				Enabled:   true,
				PerSecond: 10,
				Burst:     20,
			},
		},
		KB: KBConfig{
			Dir:  "data/kb",
			TopK: 2,
		},
		Style: StyleConfig{Mode: StyleAlways},
		Transcript: TranscriptConfig{
			Driver: TranscriptOff,
		},
		Plugins: []PluginConfig{
			{Name: "sanitizer", Type: "guardrail", Stage: string(plugin.StageBeforeTurn), Enabled: true},
			{Name: "styler", Type: "transform", Stage: string(plugin.StageAfterTurn), Enabled: true},
			{Name: "turn-logger", Type: "logging", Stage: string(plugin.StageAfterTurn), Enabled: true},
		},
	}
}

// LoadConfig reads and parses a config file from the given path.
// Supported formats: JSON (.json), YAML (.yaml, .yml).
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file extension %q: use .json, .yaml, or .yml", ext)
	}

	return &cfg, nil
}

// ValidateConfig validates a Config for correctness.
func ValidateConfig(cfg Config) error {
	switch cfg.Style.Mode {
	case StyleAlways, StyleNever, "":
	default:
		return fmt.Errorf("unknown style mode: %q", cfg.Style.Mode)
	}

	switch cfg.Transcript.Driver {
	case TranscriptOff, TranscriptSQLite, TranscriptPostgres, "":
	default:
		return fmt.Errorf("unknown transcript driver: %q", cfg.Transcript.Driver)
	}
	if cfg.Transcript.Driver == TranscriptPostgres && strings.TrimSpace(cfg.Transcript.DSN) == "" {
		return fmt.Errorf("postgres transcript driver requires a dsn")
	}

	if cfg.KB.TopK < 0 {
		return fmt.Errorf("kb top_k must not be negative")
	}
	if cfg.KB.CacheTTL != "" {
		if _, err := time.ParseDuration(cfg.KB.CacheTTL); err != nil {
			return fmt.Errorf("invalid kb cache_ttl: %w", err)
		}
	}

	if cfg.Server.RateLimit.Enabled && cfg.Server.RateLimit.PerSecond <= 0 {
		return fmt.Errorf("rate limit per_second must be positive when enabled")
	}

	if cfg.Remote.Timeout != "" {
		if _, err := time.ParseDuration(cfg.Remote.Timeout); err != nil {
			return fmt.Errorf("invalid remote timeout: %w", err)
		}
	}

	for _, pc := range cfg.Plugins {
		if pc.Name == "" {
			return fmt.Errorf("plugin entry is missing a name")
		}
		switch plugin.Stage(pc.Stage) {
		case plugin.StageBeforeTurn, plugin.StageAfterTurn, plugin.StageOnError:
		default:
			return fmt.Errorf("plugin %s has unknown stage: %q", pc.Name, pc.Stage)
		}
	}

	return nil
}
