// Package config provides configuration management for founder.
//
// This file contains config loading functionality including:
// - XDG config path detection
// - TOML file parsing
// - Environment variable overrides
// - Validation
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	ferrors "github.com/oconnor663/founder/internal/errors"
)

// EnvConfigPath names the environment variable that points at a config file.
const EnvConfigPath = "FOUNDER_CONFIG"

// DefaultPath returns where the config file lives when nothing overrides it:
// $XDG_CONFIG_HOME/founder/config.toml, or ~/.config/founder/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" && filepath.IsAbs(dir) {
		return filepath.Join(dir, "founder", "config.toml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", ferrors.ErrEnvironment)
	}
	return filepath.Join(homeDir, ".config", "founder", "config.toml"), nil
}

// DetectConfigPath searches for a config file.
// Returns the first config file found, or empty string if none exists.
//
// Search order:
// 1. $FOUNDER_CONFIG (returned even if missing, so Load reports it)
// 2. DefaultPath()
func DetectConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path
	}

	configPath, err := DefaultPath()
	if err != nil {
		return ""
	}
	if _, err := os.Stat(configPath); err == nil {
		return configPath
	}

	return ""
}

// Load loads a config from the specified path.
// If the file doesn't exist, returns an error.
// After loading, applies environment variable overrides and validates.
func Load(path string) (*Config, error) {
	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &ferrors.ConfigError{Path: path, Err: fmt.Errorf("config file not found: %w", ferrors.ErrNotFound)}
	}

	// Read file contents
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ferrors.ConfigError{Path: path, Err: fmt.Errorf("failed to read config file: %w", err)}
	}

	// Start with defaults
	cfg := DefaultConfig()

	// Parse TOML
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &ferrors.ConfigError{Path: path, Err: fmt.Errorf("failed to parse config file: %w: %w", ferrors.ErrInvalid, err)}
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Expand tilde in paths
	expandPath(cfg)

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, &ferrors.ConfigError{Path: path, Err: fmt.Errorf("config validation failed: %w: %w", ferrors.ErrInvalid, err)}
	}

	return cfg, nil
}

// LoadWithDefaults loads the config found by DetectConfigPath.
// If no config file is found, returns a config with all default values
// plus environment overrides.
func LoadWithDefaults() (*Config, error) {
	configPath := DetectConfigPath()
	if configPath == "" {
		cfg := DefaultConfig()
		applyEnvOverrides(cfg)
		expandPath(cfg)

		if err := cfg.Validate(); err != nil {
			return nil, &ferrors.ConfigError{Err: fmt.Errorf("config validation failed: %w: %w", ferrors.ErrInvalid, err)}
		}
		return cfg, nil
	}

	return Load(configPath)
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables follow the pattern: FOUNDER_<SECTION>_<FIELD>
//
// Examples:
// - FOUNDER_SELECTOR_COMMAND overrides [selector].command
// - FOUNDER_HISTORY_MAX_ENTRIES overrides [history].max_entries
// - FOUNDER_SCANNER_ARGS overrides [scanner].args (comma-separated)
func applyEnvOverrides(c *Config) {
	// Helper to lookup and apply string override
	applyString := func(key string, target *string) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			*target = val
		}
	}

	// Helper to lookup and apply int override
	applyInt := func(key string, target *int) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			var i int
			if _, err := fmt.Sscanf(val, "%d", &i); err == nil {
				*target = i
			}
		}
	}

	// Helper to lookup and apply comma-separated list override
	applyList := func(key string, target *[]string) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			var items []string
			for _, item := range strings.Split(val, ",") {
				if item = strings.TrimSpace(item); item != "" {
					items = append(items, item)
				}
			}
			*target = items
		}
	}

	// History section
	applyInt("FOUNDER_HISTORY_MAX_ENTRIES", &c.History.MaxEntries)
	applyString("FOUNDER_HISTORY_DIR", &c.History.Dir)

	// Selector section
	applyString("FOUNDER_SELECTOR_COMMAND", &c.Selector.Command)
	applyString("FOUNDER_SELECTOR_TMUX_COMMAND", &c.Selector.TmuxCommand)
	applyString("FOUNDER_SELECTOR_MODE_KEY", &c.Selector.ModeKey)
	applyInt("FOUNDER_SELECTOR_HISTORY_SIZE", &c.Selector.HistorySize)
	applyList("FOUNDER_SELECTOR_ARGS", &c.Selector.Args)

	// Scanner section
	applyString("FOUNDER_SCANNER_COMMAND", &c.Scanner.Command)
	applyList("FOUNDER_SCANNER_ARGS", &c.Scanner.Args)
	applyString("FOUNDER_SCANNER_HIDDEN_FLAG", &c.Scanner.HiddenFlag)

	// Log section
	applyString("FOUNDER_LOG_LEVEL", &c.Log.Level)
}

// expandPath expands ~ to the home directory in the history dir.
func expandPath(c *Config) {
	if strings.HasPrefix(c.History.Dir, "~/") || c.History.Dir == "~" {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			c.History.Dir = filepath.Join(homeDir, strings.TrimPrefix(c.History.Dir, "~"))
		}
	}
}
