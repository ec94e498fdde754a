package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oconnor663/founder/internal/app"
)

// BuildInfo is the version metadata stamped in at build time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
	BuiltBy string
}

// FindOptions contains the options for the interactive find.
type FindOptions struct {
	NoNewline bool
	Tmux      bool
}

// NewRootCommand creates the founder command tree. Running the root command
// without a subcommand starts the interactive finder.
func NewRootCommand(build BuildInfo) *cobra.Command {
	global := &GlobalOptions{}
	opts := &FindOptions{}

	cmd := &cobra.Command{
		Use:   "founder",
		Short: "Interactive file finder with selection history",
		Long: `founder opens a fuzzy selector over the files below the current directory,
listing the files you picked before first.

Press ctrl-t in the selector to switch between the current directory and
your whole history. The chosen path is printed on stdout and remembered.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", build.Version, build.Commit, build.Date),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd, global, opts)
		},
	}

	AddGlobalFlags(cmd, global)
	cmd.Flags().BoolVarP(&opts.NoNewline, "no-newline", "n", false, "do not print a newline after the selection")
	cmd.Flags().BoolVar(&opts.Tmux, "tmux", false, "open the selector in a tmux pane")

	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddCommand(NewAddCommand(global))
	cmd.AddCommand(NewCleanCommand(global))
	cmd.AddCommand(NewHistoryCommand(global))
	cmd.AddCommand(NewInfoCommand(global))
	cmd.AddCommand(NewConfigCommand(global))
	cmd.AddCommand(NewVersionCommand(build))

	return cmd
}

func runFind(cmd *cobra.Command, global *GlobalOptions, opts *FindOptions) error {
	env, err := newEnv(cmd, global)
	if err != nil {
		return err
	}
	defer func() { _ = env.Logger.Sync() }()

	return app.Find(cmd.Context(), env, app.FindOptions{
		NoNewline: opts.NoNewline,
		Tmux:      opts.Tmux,
	})
}
