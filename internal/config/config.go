package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the global ~/.convo/config.toml.
type Config struct {
	DefaultProfile string `toml:"default_profile"`
	// Locale is a BCP 47 tag for list captions.
	Locale string `toml:"locale"`
	Keys   Keys   `toml:"keys"`
	Search Search `toml:"search"`
	Focus  Focus  `toml:"focus"`
	// RefreshIntervalMS is how often the TUI reloads conversations to pick
	// up changes made by other processes.
	RefreshIntervalMS int `toml:"refresh_interval_ms"`
}

// Keys configures keyboard handling.
type Keys struct {
	// PrimaryModifier is one of auto, ctrl, alt or meta.
	PrimaryModifier string `toml:"primary_modifier"`
}

// Search configures conversation search.
type Search struct {
	DebounceMS int `toml:"debounce_ms"`
	Limit      int `toml:"limit"`
}

// Focus configures keyboard jump focus settling.
type Focus struct {
	SettleWaitMS    int `toml:"settle_wait_ms"`
	SettleMaxWaitMS int `toml:"settle_max_wait_ms"`
	MaxAttempts     int `toml:"max_attempts"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Locale:            "en",
		Keys:              Keys{PrimaryModifier: "auto"},
		Search:            Search{DebounceMS: 200, Limit: 50},
		Focus:             Focus{SettleWaitMS: 100, SettleMaxWaitMS: 100, MaxAttempts: 5},
		RefreshIntervalMS: 5000,
	}
}

// Load reads config from the given path on top of Default. Returns an
// error if the file is missing.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate rejects values no component can run with.
func (c *Config) Validate() error {
	switch c.Keys.PrimaryModifier {
	case "", "auto", "ctrl", "alt", "meta":
	default:
		return fmt.Errorf("keys.primary_modifier %q: want auto, ctrl, alt or meta", c.Keys.PrimaryModifier)
	}
	if c.Search.DebounceMS < 0 || c.Focus.SettleWaitMS < 0 || c.Focus.SettleMaxWaitMS < 0 {
		return errors.New("durations must not be negative")
	}
	if c.Focus.MaxAttempts < 1 {
		return fmt.Errorf("focus.max_attempts %d: must be at least 1", c.Focus.MaxAttempts)
	}
	return nil
}

// SearchDebounce returns the search debounce period.
func (c *Config) SearchDebounce() time.Duration {
	return time.Duration(c.Search.DebounceMS) * time.Millisecond
}

// SettleWait returns the focus settle quiet period.
func (c *Config) SettleWait() time.Duration {
	return time.Duration(c.Focus.SettleWaitMS) * time.Millisecond
}

// SettleMaxWait returns the upper bound on settle coalescing.
func (c *Config) SettleMaxWait() time.Duration {
	return time.Duration(c.Focus.SettleMaxWaitMS) * time.Millisecond
}

// RefreshInterval returns the conversation reload period.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalMS) * time.Millisecond
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}
