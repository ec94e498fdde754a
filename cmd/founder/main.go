package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/oconnor663/founder/internal/cli"
	ferrors "github.com/oconnor663/founder/internal/errors"
)

// Version is set at build time using ldflags
var Version = "dev"

// Commit is set at build time using ldflags
var Commit = "unknown"

// Date is set at build time using ldflags
var Date = "unknown"

// BuiltBy is set at build time using ldflags
var BuiltBy = "unknown"

func main() {
	// The selector shares our terminal and sees ctrl-c itself. We stay alive
	// to report its exit status and stop the scanner.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := cli.NewRootCommand(cli.BuildInfo{
		Version: Version,
		Commit:  Commit,
		Date:    Date,
		BuiltBy: BuiltBy,
	})

	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		var exitErr *ferrors.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "founder: %v\n", err)
		}
		os.Exit(ferrors.ExitCode(err))
	}
}
