// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for adda.
//
// Supports TOML configuration with sensible defaults and environment
// variable overrides.
//
// Configuration file location:
//   - ~/.adda/config.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete adda configuration.
type Config struct {
	// API contains the completion backend settings.
	API APIConfig `toml:"api"`

	// Supabase contains the auth/profile backend settings.
	Supabase SupabaseConfig `toml:"supabase"`

	// Storage contains local persistence settings.
	Storage StorageConfig `toml:"storage"`

	// Chat contains conversation behavior tuning.
	Chat ChatConfig `toml:"chat"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// APIConfig contains Anthropic API configuration.
type APIConfig struct {
	// Key is the Anthropic API key. Usually set via ADDA_API_KEY.
	Key string `toml:"key"`
	// BaseURL overrides the API endpoint (for proxies).
	BaseURL string `toml:"base_url"`
	// Model is the completion model to use.
	Model string `toml:"model"`
	// MaxTokens per response.
	MaxTokens int `toml:"max_tokens"`
	// Temperature for sampling.
	Temperature float64 `toml:"temperature"`
	// RequestsPerSecond paces outgoing completion requests.
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// SupabaseConfig contains auth backend configuration. Both fields empty
// means offline mode: no accounts, local profile only.
type SupabaseConfig struct {
	// URL is the Supabase project URL.
	URL string `toml:"url"`
	// AnonKey is the public API key.
	AnonKey string `toml:"anon_key"`
}

// StorageConfig contains local persistence configuration.
type StorageConfig struct {
	// DatabasePath is the SQLite database location (empty = ~/.adda/adda.db).
	DatabasePath string `toml:"database_path"`
}

// ChatConfig contains conversation behavior tuning.
type ChatConfig struct {
	// ContextMessages is how many recent messages go to the model.
	ContextMessages int `toml:"context_messages"`
	// MinCharacterDelayMs is the minimum pause between group responders.
	MinCharacterDelayMs int `toml:"min_character_delay_ms"`
	// MaxCharacterDelayMs is the maximum pause between group responders.
	MaxCharacterDelayMs int `toml:"max_character_delay_ms"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the color theme name.
	Theme string `toml:"theme"`
	// ShowTimestamps toggles message timestamps in the chat view.
	ShowTimestamps bool `toml:"show_timestamps"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a config with built-in defaults.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Model:             "claude-sonnet-4-5-20250929",
			MaxTokens:         300,
			Temperature:       0.85,
			RequestsPerSecond: 2,
		},
		Storage: StorageConfig{},
		Chat: ChatConfig{
			ContextMessages:     20,
			MinCharacterDelayMs: 800,
			MaxCharacterDelayMs: 1500,
		},
		UI: UIConfig{
			Theme:          "adda",
			ShowTimestamps: false,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the adda configuration directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".adda"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// ensureSecurePermissions checks and fixes permissions on config files.
// SECURITY: Config files should be 0600 (owner read/write only) to protect API keys.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	mode := info.Mode().Perm()
	if mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file, falling back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file into cfg.
// SECURITY: Checks and fixes file permissions on load.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		// Permissions might not be fixable on all systems
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults fills in any missing values with defaults.
func (c *Config) fillDefaults() {
	defaults := Default()

	if c.API.Model == "" {
		c.API.Model = defaults.API.Model
	}
	if c.API.MaxTokens == 0 {
		c.API.MaxTokens = defaults.API.MaxTokens
	}
	if c.API.Temperature == 0 {
		c.API.Temperature = defaults.API.Temperature
	}
	if c.API.RequestsPerSecond == 0 {
		c.API.RequestsPerSecond = defaults.API.RequestsPerSecond
	}
	if c.Chat.ContextMessages == 0 {
		c.Chat.ContextMessages = defaults.Chat.ContextMessages
	}
	if c.Chat.MinCharacterDelayMs == 0 {
		c.Chat.MinCharacterDelayMs = defaults.Chat.MinCharacterDelayMs
	}
	if c.Chat.MaxCharacterDelayMs == 0 {
		c.Chat.MaxCharacterDelayMs = defaults.Chat.MaxCharacterDelayMs
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
// SECURITY: Creates config files with 0600 permissions (owner read/write only).
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	fmt.Fprintln(file, "# adda configuration file")
	fmt.Fprintln(file, "# Generated by adda - edit with care")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.API.MaxTokens < 1 {
		return fmt.Errorf("api.max_tokens must be positive, got %d", c.API.MaxTokens)
	}
	if c.API.Temperature < 0 || c.API.Temperature > 1 {
		return fmt.Errorf("api.temperature must be in [0, 1], got %g", c.API.Temperature)
	}
	if c.Chat.ContextMessages < 1 {
		return fmt.Errorf("chat.context_messages must be positive, got %d", c.Chat.ContextMessages)
	}
	if c.Chat.MinCharacterDelayMs < 0 {
		return fmt.Errorf("chat.min_character_delay_ms must be non-negative, got %d", c.Chat.MinCharacterDelayMs)
	}
	if c.Chat.MaxCharacterDelayMs < c.Chat.MinCharacterDelayMs {
		return fmt.Errorf("chat.max_character_delay_ms (%d) must be >= min_character_delay_ms (%d)",
			c.Chat.MaxCharacterDelayMs, c.Chat.MinCharacterDelayMs)
	}
	if (c.Supabase.URL == "") != (c.Supabase.AnonKey == "") {
		return fmt.Errorf("supabase.url and supabase.anon_key must be set together")
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides:
//   - ADDA_API_KEY: overrides api.key (also honors ANTHROPIC_API_KEY)
//   - ADDA_API_URL: overrides api.base_url
//   - ADDA_MODEL: overrides api.model
//   - ADDA_MAX_TOKENS: overrides api.max_tokens
//   - ADDA_SUPABASE_URL: overrides supabase.url
//   - ADDA_SUPABASE_ANON_KEY: overrides supabase.anon_key
//   - ADDA_DB_PATH: overrides storage.database_path
//   - ADDA_CONTEXT_MESSAGES: overrides chat.context_messages
//   - ADDA_THEME: overrides ui.theme
func (c *Config) ApplyEnvOverrides() {
	if key := os.Getenv("ADDA_API_KEY"); key != "" {
		c.API.Key = key
	} else if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" && c.API.Key == "" {
		c.API.Key = key
	}

	if url := os.Getenv("ADDA_API_URL"); url != "" {
		c.API.BaseURL = url
	}

	if model := os.Getenv("ADDA_MODEL"); model != "" {
		c.API.Model = model
	}

	if raw := os.Getenv("ADDA_MAX_TOKENS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			c.API.MaxTokens = n
		}
	}

	if url := os.Getenv("ADDA_SUPABASE_URL"); url != "" {
		c.Supabase.URL = url
	}
	if key := os.Getenv("ADDA_SUPABASE_ANON_KEY"); key != "" {
		c.Supabase.AnonKey = key
	}

	if path := os.Getenv("ADDA_DB_PATH"); path != "" {
		c.Storage.DatabasePath = path
	}

	if raw := os.Getenv("ADDA_CONTEXT_MESSAGES"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			c.Chat.ContextMessages = n
		}
	}

	if theme := os.Getenv("ADDA_THEME"); theme != "" {
		c.UI.Theme = theme
	}

	if ts := os.Getenv("ADDA_TIMESTAMPS"); ts != "" {
		c.UI.ShowTimestamps = ts == "1" || strings.ToLower(ts) == "true"
	}
}

// =============================================================================
// CLONE
// =============================================================================

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
