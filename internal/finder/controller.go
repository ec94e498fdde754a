package finder

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	ferrors "github.com/oconnor663/founder/internal/errors"
	"github.com/oconnor663/founder/internal/feeder"
	"github.com/oconnor663/founder/internal/history"
	"github.com/oconnor663/founder/internal/paths"
	"github.com/oconnor663/founder/internal/runner"
)

// DefaultModeKey switches between local and global scope.
const DefaultModeKey = "ctrl-t"

// Config configures a Controller.
type Config struct {
	Cwd         string // Scan root and base for relative display
	ModeKey     string // "" = DefaultModeKey
	QueriesFile string // Selector query recall file
	QueriesSize int
	Logger      *zap.Logger
}

// Controller drives selector invocations until a terminal outcome.
type Controller struct {
	scanner  runner.Scanner
	selector runner.Selector
	norm     *paths.Normalizer
	cfg      Config
	logger   *zap.Logger
}

// New creates a Controller.
func New(scanner runner.Scanner, selector runner.Selector, norm *paths.Normalizer, cfg Config) *Controller {
	if cfg.ModeKey == "" {
		cfg.ModeKey = DefaultModeKey
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		scanner:  scanner,
		selector: selector,
		norm:     norm,
		cfg:      cfg,
		logger:   logger,
	}
}

// Run shows log and the live scan in the selector, starting in Local mode,
// and returns the accepted path with a leading "~" expanded.
//
// A selector that exits non-zero without a selection yields an
// *errors.ExitError carrying its status.
func (c *Controller) Run(ctx context.Context, log *history.Log) (string, error) {
	mode := Local
	query := ""

	for {
		c.logger.Debug("selector attempt", zap.Stringer("mode", mode), zap.String("query", query))

		res, err := c.invokeOnce(ctx, mode, query, log)
		if err != nil {
			return "", err
		}

		out, err := ParseOutput(res)
		if err != nil {
			return "", err
		}

		c.logger.Debug("selector finished",
			zap.Stringer("mode", mode),
			zap.String("key", out.Key),
			zap.Int("exit_code", out.ExitCode))

		switch out.Key {
		case "":
			if out.ExitCode != 0 {
				return "", &ferrors.ExitError{Code: out.ExitCode}
			}
			if out.Selection == "" {
				return "", fmt.Errorf("selector accepted an empty selection: %w", ferrors.ErrContract)
			}
			return c.norm.Expand(out.Selection), nil
		case c.cfg.ModeKey:
			mode = mode.Next()
			query = out.Query
		default:
			return "", fmt.Errorf("selector reported unexpected key %q: %w", out.Key, ferrors.ErrContract)
		}
	}
}

// invokeOnce runs the selector once: history first, then the live scan on a
// second goroutine, until the selector exits.
//
// The scanner is started before the selector so a missing scanner fails the
// attempt before the user is shown anything. Its output waits in the pipe
// until history has been written.
func (c *Controller) invokeOnce(ctx context.Context, mode Mode, query string, log *history.Log) (runner.Result, error) {
	scan, err := c.scanner.Start(ctx, mode.ScansHidden())
	if err != nil {
		return runner.Result{}, err
	}

	session, err := c.selector.Start(ctx, runner.Request{
		Prompt:      mode.Prompt(),
		Query:       query,
		ExpectKey:   c.cfg.ModeKey,
		HistoryFile: c.cfg.QueriesFile,
		HistorySize: c.cfg.QueriesSize,
	})
	if err != nil {
		return runner.Result{}, errors.Join(err, stopScan(scan))
	}
	in := session.Input()

	f := feeder.New(c.norm, feeder.Options{
		Cwd:       c.cfg.Cwd,
		LocalOnly: !mode.ShowsAllHistory(),
		Logger:    c.logger,
	})
	if err := f.WriteHistory(in, log.NewestFirst()); err != nil {
		_ = in.Close()
		_, _ = session.Wait()
		return runner.Result{}, errors.Join(err, stopScan(scan))
	}

	var g errgroup.Group
	g.Go(func() error {
		defer in.Close()
		return f.Stream(in, scan.Output())
	})

	res, waitErr := session.Wait()

	// Kill before joining the feeder so a blocked read returns; reap after.
	killErr := scan.Kill()
	feedErr := g.Wait()
	scanErr := scan.Wait()

	if err := errors.Join(waitErr, feedErr, killErr, scanErr); err != nil {
		return res, err
	}
	return res, nil
}

// stopScan kills and reaps a scan whose output will never be read.
func stopScan(scan runner.Scan) error {
	return errors.Join(scan.Kill(), scan.Wait())
}
