package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oconnor663/founder/internal/app"
)

// NewAddCommand creates the add command.
func NewAddCommand(global *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add PATH",
		Short: "Record a path in history without selecting it",
		Long: `Record PATH in the selection history as if it had been picked.

Relative paths are resolved against the current directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(cmd, global)
			if err != nil {
				return err
			}
			_, err = app.Add(env, args[0])
			return err
		},
	}
}

// NewCleanCommand creates the clean command.
func NewCleanCommand(global *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove history entries for paths that no longer exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(cmd, global)
			if err != nil {
				return err
			}

			res, err := app.Clean(env)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entries, %d remaining.\n", res.Removed, res.Remaining)
			return nil
		},
	}
}

// HistoryOptions contains the options for the history command.
type HistoryOptions struct {
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(global *GlobalOptions) *cobra.Command {
	opts := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List remembered selections, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(cmd, global)
			if err != nil {
				return err
			}

			entries, err := app.ListHistory(env, opts.Limit)
			if err != nil {
				return err
			}
			app.PrintHistory(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "show at most this many entries (0 for all)")

	return cmd
}
