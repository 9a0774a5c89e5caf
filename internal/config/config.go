package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete DSV configuration.
type Config struct {
	Version  int    `json:"version" mapstructure:"version"`
	RepoRoot string `json:"repoRoot" mapstructure:"repoRoot"`

	Rules       RulesConfig    `json:"rules" mapstructure:"rules"`
	Keywords    KeywordsConfig `json:"keywords" mapstructure:"keywords"`
	Cache       CacheConfig    `json:"cache" mapstructure:"cache"`
	Logging     LoggingConfig  `json:"logging" mapstructure:"logging"`
	Concurrency int            `json:"concurrency" mapstructure:"concurrency"`
}

// RulesConfig controls which checks run and how their findings are ranked.
type RulesConfig struct {
	Disabled []string          `json:"disabled" mapstructure:"disabled"`
	Severity map[string]string `json:"severity" mapstructure:"severity"`
}

// KeywordsConfig points at an optional TOML file overriding the built-in
// side-effect keyword table.
type KeywordsConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// CacheConfig contains diagnostics cache configuration.
type CacheConfig struct {
	Enabled    bool   `json:"enabled" mapstructure:"enabled"`
	Dir        string `json:"dir" mapstructure:"dir"`
	MaxAgeDays int    `json:"maxAgeDays" mapstructure:"maxAgeDays"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		RepoRoot: ".",
		Rules: RulesConfig{
			Disabled: []string{},
			Severity: map[string]string{},
		},
		Keywords: KeywordsConfig{
			Path: "",
		},
		Cache: CacheConfig{
			Enabled:    true,
			Dir:        ".dsv",
			MaxAgeDays: 30,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Concurrency: 0, // 0 = number of CPUs
	}
}

// LoadConfig loads configuration from .dsv/config.json under repoRoot.
// A missing config file yields the defaults.
func LoadConfig(repoRoot string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)
	v.SetDefault("repoRoot", ".")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.dir", ".dsv")
	v.SetDefault("cache.maxAgeDays", 30)
	v.SetDefault("logging.level", "info")
	v.SetDefault("concurrency", 0)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(repoRoot, ".dsv"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to .dsv/config.json under repoRoot.
func (c *Config) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, ".dsv")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must be >= 0, got %d", c.Concurrency)
	}
	if c.Cache.MaxAgeDays < 0 {
		return fmt.Errorf("cache.maxAgeDays must be >= 0, got %d", c.Cache.MaxAgeDays)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging level: %s", c.Logging.Level)
	}
	for id, severity := range c.Rules.Severity {
		switch severity {
		case "error", "warning", "info", "hint":
		default:
			return fmt.Errorf("unknown severity %q for rule %s", severity, id)
		}
	}
	return nil
}
