// Package config provides configuration management for founder.
//
// The configuration is stored in TOML format and supports validation
// and default values for all fields.
package config

import (
	"fmt"
	"strings"
)

// Builtin selects the in-process implementation of a collaborator.
const Builtin = "builtin"

// Config is the top-level configuration struct for founder.
type Config struct {
	History  HistoryConfig  `toml:"history"`
	Selector SelectorConfig `toml:"selector"`
	Scanner  ScannerConfig  `toml:"scanner"`
	Log      LogConfig      `toml:"log"`
}

// HistoryConfig contains history log settings.
type HistoryConfig struct {
	// MaxEntries is the soft cap on records. Compaction keeps half of it.
	MaxEntries int `toml:"max_entries"`

	// Dir overrides the directory holding the history and query files.
	// Empty means the per-user data directory.
	Dir string `toml:"dir"`
}

// SelectorConfig contains interactive selector settings.
type SelectorConfig struct {
	// Command is the selector to run: an fzf compatible binary or "builtin".
	Command string `toml:"command"`

	// TmuxCommand replaces Command when --tmux is given.
	TmuxCommand string `toml:"tmux_command"`

	// ModeKey switches between local and global scope, in fzf key notation.
	ModeKey string `toml:"mode_key"`

	// HistorySize is the number of queries the selector remembers.
	HistorySize int `toml:"history_size"`

	// Args are passed to the selector after the built-in arguments.
	Args []string `toml:"args"`
}

// ScannerConfig contains live scanner settings.
type ScannerConfig struct {
	// Command is the file lister to run, or "builtin".
	Command string `toml:"command"`

	// Args are passed on every scan.
	Args []string `toml:"args"`

	// HiddenFlag is appended in global mode to include hidden files.
	HiddenFlag string `toml:"hidden_flag"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is the minimum level written to stderr.
	// Valid values: "debug", "info", "warn", "error".
	Level string `toml:"level"`
}

// DefaultConfig returns a Config with all default values set.
func DefaultConfig() *Config {
	return &Config{
		History: HistoryConfig{
			MaxEntries: 1000,
			Dir:        "",
		},
		Selector: SelectorConfig{
			Command:     "fzf",
			TmuxCommand: "fzf-tmux",
			ModeKey:     "ctrl-t",
			HistorySize: 1000,
			Args:        []string{},
		},
		Scanner: ScannerConfig{
			Command:    "fd",
			Args:       []string{"--type=f"},
			HiddenFlag: "--hidden",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Validate checks the configuration for valid values.
// Returns a nil error if the config is valid, or an error describing the problem.
func (c *Config) Validate() error {
	// Validate History section
	if c.History.MaxEntries < 2 {
		return fmt.Errorf("history.max_entries must be >= 2; got %d", c.History.MaxEntries)
	}

	// Validate Selector section
	if strings.TrimSpace(c.Selector.Command) == "" {
		return fmt.Errorf("selector.command cannot be empty")
	}
	if strings.TrimSpace(c.Selector.TmuxCommand) == "" {
		return fmt.Errorf("selector.tmux_command cannot be empty")
	}
	if c.Selector.ModeKey == "" {
		return fmt.Errorf("selector.mode_key cannot be empty")
	}
	if c.Selector.ModeKey == "enter" {
		return fmt.Errorf("selector.mode_key cannot be enter, which accepts a selection")
	}
	if c.Selector.HistorySize < 0 {
		return fmt.Errorf("selector.history_size must be >= 0; got %d", c.Selector.HistorySize)
	}

	// Validate Scanner section
	if strings.TrimSpace(c.Scanner.Command) == "" {
		return fmt.Errorf("scanner.command cannot be empty")
	}

	// Validate Log section
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", c.Log.Level)
	}

	return nil
}

// SelectorCommand returns the selector to run, honoring tmux mode.
func (c *Config) SelectorCommand(tmux bool) string {
	if tmux && c.Selector.Command != Builtin {
		return c.Selector.TmuxCommand
	}
	return c.Selector.Command
}
