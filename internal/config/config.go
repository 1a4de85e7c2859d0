// Package config loads the service configuration from a YAML file with
// environment variable overrides for deployment-specific values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration lets YAML carry durations in time.ParseDuration notation
// ("90s", "10m").
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config mirrors okrcoach.yml.
type Config struct {
	Listen string `yaml:"listen"`

	SessionDB string `yaml:"session_db"`
	AuditDB   string `yaml:"audit_db"`

	// Adapter selects the coaching backend: "mock" or "openai".
	Adapter string `yaml:"adapter"`

	OpenAI struct {
		APIKey  string `yaml:"api_key"`
		Model   string `yaml:"model"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"openai"`

	Cache struct {
		Size int      `yaml:"size"`
		TTL  Duration `yaml:"ttl"`
	} `yaml:"cache"`

	// ForceAfterTurns lifts the quality gate for a stalled phase after this
	// many turns in it. Zero disables forcing.
	ForceAfterTurns int `yaml:"force_after_turns"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{
		Listen:    ":8080",
		SessionDB: filepath.Join("data", "sessions.db"),
		AuditDB:   filepath.Join("audit", "events.db"),
		Adapter:   "mock",
	}
	cfg.OpenAI.Model = "gpt-4o-mini"
	cfg.Cache.Size = 1024
	cfg.Cache.TTL = Duration(10 * time.Minute)
	return cfg
}

// Load reads the YAML file at path, falling back to defaults when the file
// does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	case os.IsNotExist(err):
		// defaults stand
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("OKRCOACH_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("OKRCOACH_SESSION_DB"); v != "" {
		cfg.SessionDB = v
	}
	if v := os.Getenv("OKRCOACH_AUDIT_DB"); v != "" {
		cfg.AuditDB = v
	}
	if v := os.Getenv("OKRCOACH_ADAPTER"); v != "" {
		cfg.Adapter = v
	}
	if v := os.Getenv("OKRCOACH_OPENAI_KEY"); v != "" {
		cfg.OpenAI.APIKey = v
	}
	if v := os.Getenv("OKRCOACH_OPENAI_MODEL"); v != "" {
		cfg.OpenAI.Model = v
	}
	if v := os.Getenv("OKRCOACH_FORCE_AFTER_TURNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.ForceAfterTurns = n
		}
	}
}

func (c *Config) validate() error {
	switch c.Adapter {
	case "mock":
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("openai adapter requires an API key (openai.api_key or OKRCOACH_OPENAI_KEY)")
		}
	default:
		return fmt.Errorf("unknown adapter %q (want \"mock\" or \"openai\")", c.Adapter)
	}
	if c.Cache.Size <= 0 {
		return fmt.Errorf("cache size must be positive, got %d", c.Cache.Size)
	}
	return nil
}
