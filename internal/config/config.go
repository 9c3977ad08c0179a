// Package config provides configuration loading and validation for the CLI
// and HTTP server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. JOBFIT_LLM_API_KEY
const EnvPrefix = "JOBFIT"

// LogConfig controls the zap logger
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// LLMConfig controls the optional model-augmented spinner
type LLMConfig struct {
	Enabled     bool              `mapstructure:"enabled"`
	APIKey      string            `mapstructure:"api_key"`
	Timeout     time.Duration     `mapstructure:"timeout"`
	Temperature float32           `mapstructure:"temperature"`
	Models      map[string]string `mapstructure:"models"`
}

// RateLimitConfig controls per-client limits on the HTTP server
type RateLimitConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Limit     int           `mapstructure:"limit"`
	Window    time.Duration `mapstructure:"window"`
	Whitelist []string      `mapstructure:"whitelist"`
	Blacklist []string      `mapstructure:"blacklist"`
}

// Config is the full runtime configuration. Every field has a default, so a
// missing file is not an error.
type Config struct {
	Port          int             `mapstructure:"port"`
	TaxonomyPath  string          `mapstructure:"taxonomy_path"`
	TargetBullets int             `mapstructure:"target_bullets"`
	PreferUnused  bool            `mapstructure:"prefer_unused"`
	DatabaseURL   string          `mapstructure:"database_url"`
	Log           LogConfig       `mapstructure:"log"`
	LLM           LLMConfig       `mapstructure:"llm"`
	RateLimit     RateLimitConfig `mapstructure:"rate_limit"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Port:          8080,
		TargetBullets: 13,
		Log:           LogConfig{Level: "info"},
		LLM: LLMConfig{
			Timeout:     15 * time.Second,
			Temperature: 0.4,
			Models:      map[string]string{},
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			Limit:   600,
			Window:  time.Minute,
		},
	}
}

// New returns a viper instance seeded with defaults and environment bindings
func New() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault("port", d.Port)
	v.SetDefault("taxonomy_path", d.TaxonomyPath)
	v.SetDefault("target_bullets", d.TargetBullets)
	v.SetDefault("prefer_unused", d.PreferUnused)
	v.SetDefault("database_url", d.DatabaseURL)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("llm.enabled", d.LLM.Enabled)
	v.SetDefault("llm.api_key", d.LLM.APIKey)
	v.SetDefault("llm.timeout", d.LLM.Timeout)
	v.SetDefault("llm.temperature", d.LLM.Temperature)
	v.SetDefault("llm.models", d.LLM.Models)
	v.SetDefault("rate_limit.enabled", d.RateLimit.Enabled)
	v.SetDefault("rate_limit.limit", d.RateLimit.Limit)
	v.SetDefault("rate_limit.window", d.RateLimit.Window)
	v.SetDefault("rate_limit.whitelist", d.RateLimit.Whitelist)
	v.SetDefault("rate_limit.blacklist", d.RateLimit.Blacklist)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads an optional JSON or YAML file into v and decodes the result.
// Environment variables override file values.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	return &cfg, nil
}

// LoadFile is Load with a fresh viper instance
func LoadFile(path string) (*Config, error) {
	return Load(New(), path)
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("config error: 'port' must be between 1 and 65535"))
	}
	if c.TargetBullets <= 0 {
		errs = append(errs, fmt.Errorf("config error: 'target_bullets' must be positive"))
	}
	if c.LLM.Timeout < 0 {
		errs = append(errs, fmt.Errorf("config error: 'llm.timeout' must be non-negative"))
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errs = append(errs, fmt.Errorf("config error: 'llm.temperature' must be between 0 and 2"))
	}
	if c.LLM.Enabled && c.LLM.APIKey == "" {
		errs = append(errs, fmt.Errorf("config error: 'llm.api_key' is required when llm.enabled is set"))
	}
	if c.RateLimit.Enabled && (c.RateLimit.Limit <= 0 || c.RateLimit.Window <= 0) {
		errs = append(errs, fmt.Errorf("config error: 'rate_limit.limit' and 'rate_limit.window' must be positive when enabled"))
	}
	if c.TaxonomyPath != "" {
		if _, err := os.Stat(c.TaxonomyPath); os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("config error: taxonomy file not found: %s", c.TaxonomyPath))
		}
	}
	return errors.Join(errs...)
}
