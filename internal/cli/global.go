// Package cli provides Cobra command definitions for founder.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/oconnor663/founder/internal/app"
)

// GlobalOptions are the flags shared by every command.
type GlobalOptions struct {
	ConfigPath string
	Verbose    bool
}

// AddGlobalFlags adds global flags to a command.
func AddGlobalFlags(cmd *cobra.Command, opts *GlobalOptions) {
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "",
		"config file path (default ~/.config/founder/config.toml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false,
		"log debug output to stderr")
}

// newEnv builds the application environment for cmd, sending command output
// to cmd's configured writer.
func newEnv(cmd *cobra.Command, opts *GlobalOptions) (*app.Env, error) {
	env, err := app.NewEnv(app.EnvOptions{
		ConfigPath: opts.ConfigPath,
		Verbose:    opts.Verbose,
	})
	if err != nil {
		return nil, err
	}
	env.Stdout = cmd.OutOrStdout()
	return env, nil
}
