package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oconnor663/founder/internal/app"
	"github.com/oconnor663/founder/internal/config"
)

// InfoOptions contains the options for the info command.
type InfoOptions struct {
	JSON bool
}

// NewInfoCommand creates the info command.
func NewInfoCommand(global *GlobalOptions) *cobra.Command {
	opts := &InfoOptions{}

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show where founder keeps its state",
		Long: `Display the config file, data directory and history file founder uses,
along with how many entries the history holds.

By default, output is in plain text format. Use --json for JSON output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, global, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "output in JSON format")

	return cmd
}

func runInfo(cmd *cobra.Command, global *GlobalOptions, opts *InfoOptions) error {
	env, err := newEnv(cmd, global)
	if err != nil {
		return err
	}

	output, err := app.Info(env)
	if err != nil {
		return err
	}

	if opts.JSON {
		if err := app.PrintInfoJSON(cmd.OutOrStdout(), output); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
		return nil
	}
	app.PrintInfo(cmd.OutOrStdout(), output)
	return nil
}

// ConfigOptions contains the options for the config command.
type ConfigOptions struct {
	Write bool
}

// NewConfigCommand creates the config command.
func NewConfigCommand(global *GlobalOptions) *cobra.Command {
	opts := &ConfigOptions{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration founder runs with, after defaults and
FOUNDER_* environment overrides are applied.

With --write, write the default configuration to the config path instead.
An existing file is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Write {
				return runConfigWrite(cmd, global)
			}

			env, err := newEnv(cmd, global)
			if err != nil {
				return err
			}
			return config.Encode(cmd.OutOrStdout(), env.Config)
		},
	}

	cmd.Flags().BoolVar(&opts.Write, "write", false, "write the default config file")

	return cmd
}

func runConfigWrite(cmd *cobra.Command, global *GlobalOptions) error {
	path := global.ConfigPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := config.Write(path, config.DefaultConfig()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
