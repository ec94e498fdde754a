package config

import (
	"strings"
	"testing"
)

// TestDefaultConfig verifies that default values are correctly set.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		got  any
		want any
	}{
		// History section defaults
		{"history.max_entries", cfg.History.MaxEntries, 1000},
		{"history.dir", cfg.History.Dir, ""},

		// Selector section defaults
		{"selector.command", cfg.Selector.Command, "fzf"},
		{"selector.tmux_command", cfg.Selector.TmuxCommand, "fzf-tmux"},
		{"selector.mode_key", cfg.Selector.ModeKey, "ctrl-t"},
		{"selector.history_size", cfg.Selector.HistorySize, 1000},
		{"selector.args", len(cfg.Selector.Args), 0},

		// Scanner section defaults
		{"scanner.command", cfg.Scanner.Command, "fd"},
		{"scanner.args", strings.Join(cfg.Scanner.Args, " "), "--type=f"},
		{"scanner.hidden_flag", cfg.Scanner.HiddenFlag, "--hidden"},

		// Log section defaults
		{"log.level", cfg.Log.Level, "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

// TestValidate_ValidConfig verifies that the defaults pass validation.
func TestValidate_ValidConfig(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() returned error: %v", err)
	}
}

// TestValidate_InvalidValues verifies each rejected field.
func TestValidate_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero max entries", func(c *Config) { c.History.MaxEntries = 0 }, "history.max_entries"},
		{"negative max entries", func(c *Config) { c.History.MaxEntries = -5 }, "history.max_entries"},
		{"empty selector", func(c *Config) { c.Selector.Command = "" }, "selector.command"},
		{"blank selector", func(c *Config) { c.Selector.Command = "  " }, "selector.command"},
		{"empty tmux selector", func(c *Config) { c.Selector.TmuxCommand = "" }, "selector.tmux_command"},
		{"empty mode key", func(c *Config) { c.Selector.ModeKey = "" }, "selector.mode_key"},
		{"enter as mode key", func(c *Config) { c.Selector.ModeKey = "enter" }, "selector.mode_key"},
		{"negative history size", func(c *Config) { c.Selector.HistorySize = -1 }, "selector.history_size"},
		{"empty scanner", func(c *Config) { c.Scanner.Command = "" }, "scanner.command"},
		{"unknown log level", func(c *Config) { c.Log.Level = "verbose" }, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error should mention %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

// TestValidate_ValidValues verifies accepted non-default values.
func TestValidate_ValidValues(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		t.Run("log.level="+level, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Log.Level = level
			if err := cfg.Validate(); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}

	t.Run("builtin collaborators", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Selector.Command = Builtin
		cfg.Scanner.Command = Builtin
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestSelectorCommand(t *testing.T) {
	cfg := DefaultConfig()

	if got := cfg.SelectorCommand(false); got != "fzf" {
		t.Errorf("SelectorCommand(false) = %q, want fzf", got)
	}
	if got := cfg.SelectorCommand(true); got != "fzf-tmux" {
		t.Errorf("SelectorCommand(true) = %q, want fzf-tmux", got)
	}

	cfg.Selector.Command = Builtin
	if got := cfg.SelectorCommand(true); got != Builtin {
		t.Errorf("builtin selector ignores tmux, got %q", got)
	}
}
