package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/oconnor663/founder/internal/finder"
	"github.com/oconnor663/founder/internal/runner"
)

// FindOptions contains options for the interactive find.
type FindOptions struct {
	NoNewline bool // Print the selection without a trailing newline
	Tmux      bool // Use the tmux variant of the selector

	// Collaborator overrides; nil means use the configured ones.
	Scanner  runner.Scanner
	Selector runner.Selector
}

// Find runs the selector over history and the live scan, prints the chosen
// path and records it in history.
//
// Compaction, when due, runs alongside the selector. It is joined after the
// selection is printed and before the selection is recorded, so this
// process never loses its own append to its own compaction.
func Find(ctx context.Context, env *Env, opts FindOptions) error {
	scanner := opts.Scanner
	if scanner == nil {
		scanner = env.Scanner()
	}
	selector := opts.Selector
	if selector == nil {
		selector = env.Selector(opts.Tmux)
	}

	log, err := env.Store.Load()
	if err != nil {
		return err
	}

	var compaction errgroup.Group
	if env.Store.NeedsCompaction(log) {
		env.Logger.Debug("history over cap, compacting",
			zap.Int("records", log.Len()),
			zap.Int("cap", env.Store.MaxEntries()))
		compaction.Go(func() error {
			return env.Store.Compact(log)
		})
	}

	// The selector's query recall file lives next to the history.
	if err := os.MkdirAll(env.DataDir, 0755); err != nil {
		return errors.Join(fmt.Errorf("failed to create data directory: %w", err), compaction.Wait())
	}

	controller := finder.New(scanner, selector, env.Normalizer, finder.Config{
		Cwd:         env.Cwd,
		ModeKey:     env.Config.Selector.ModeKey,
		QueriesFile: env.QueriesPath,
		QueriesSize: env.Config.Selector.HistorySize,
		Logger:      env.Logger,
	})

	selection, err := controller.Run(ctx, log)
	if err != nil {
		if compErr := compaction.Wait(); compErr != nil {
			env.Logger.Error("history compaction failed", zap.Error(compErr))
		}
		return err
	}

	if err := printSelection(env.Stdout, selection, opts.NoNewline); err != nil {
		_ = compaction.Wait()
		return err
	}

	compErr := compaction.Wait()
	if compErr != nil {
		env.Logger.Error("history compaction failed", zap.Error(compErr))
	}

	if _, err := env.Store.Append(selection); err != nil {
		return err
	}
	return compErr
}

func printSelection(w io.Writer, selection string, noNewline bool) error {
	if !noNewline {
		selection += "\n"
	}
	if _, err := io.WriteString(w, selection); err != nil {
		return fmt.Errorf("failed to print selection: %w", err)
	}
	return nil
}
