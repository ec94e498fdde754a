package runner

import (
	"bufio"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// CommandScanner lists files by running an external command such as fd.
type CommandScanner struct {
	command string
	cfg     procConfig
}

// NewCommandScanner creates a scanner that runs command with the given options.
func NewCommandScanner(command string, opts ...Option) *CommandScanner {
	return &CommandScanner{command: command, cfg: newProcConfig(opts)}
}

// Args returns the arguments the scanner would run with.
func (s *CommandScanner) Args(hidden bool) []string {
	args := slices.Clone(s.cfg.args)
	if hidden && s.cfg.hiddenFlag != "" {
		args = append(args, s.cfg.hiddenFlag)
	}
	return args
}

// Start launches the command with its output piped back to the caller.
func (s *CommandScanner) Start(ctx context.Context, hidden bool) (Scan, error) {
	cmd := exec.CommandContext(ctx, s.command, s.Args(hidden)...)
	cmd.Dir = s.cfg.dir
	cmd.Stderr = s.cfg.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, startError(s.command, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, startError(s.command, err)
	}

	s.cfg.logger.Debug("scanner started",
		zap.String("command", s.command),
		zap.Bool("hidden", hidden),
		zap.Int("pid", cmd.Process.Pid))

	return &commandScan{name: s.command, cmd: cmd, stdout: stdout, logger: s.cfg.logger}, nil
}

type commandScan struct {
	name   string
	cmd    *exec.Cmd
	stdout io.Reader
	logger *zap.Logger
}

func (c *commandScan) Output() io.Reader { return c.stdout }

func (c *commandScan) Kill() error {
	c.logger.Debug("killing scanner", zap.String("command", c.name))
	if err := c.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return waitError(c.name, err)
	}
	return nil
}

// Wait reaps the process. Exiting non-zero, including from Kill, is expected.
func (c *commandScan) Wait() error {
	err := c.cmd.Wait()
	var exitErr *exec.ExitError
	if err == nil || errors.As(err, &exitErr) {
		return nil
	}
	return waitError(c.name, err)
}

// WalkScanner lists regular files under a directory in-process.
// Paths are relative to the directory.
type WalkScanner struct {
	dir    string
	logger *zap.Logger
}

// NewWalkScanner creates a scanner rooted at dir.
func NewWalkScanner(dir string, opts ...Option) *WalkScanner {
	cfg := newProcConfig(opts)
	return &WalkScanner{dir: dir, logger: cfg.logger}
}

// Start walks the directory on a new goroutine.
func (s *WalkScanner) Start(ctx context.Context, hidden bool) (Scan, error) {
	ctx, cancel := context.WithCancel(ctx)
	pr, pw := io.Pipe()

	w := &walkScan{pr: pr, pw: pw, cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(w.done)
		pw.CloseWithError(walk(ctx, pw, s.dir, hidden))
	}()

	s.logger.Debug("walk scanner started", zap.String("dir", s.dir), zap.Bool("hidden", hidden))
	return w, nil
}

type walkScan struct {
	pr     *io.PipeReader
	pw     *io.PipeWriter
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func (w *walkScan) Output() io.Reader { return w.pr }

func (w *walkScan) Kill() error {
	w.cancel()
	return w.pw.Close()
}

func (w *walkScan) Wait() error {
	w.once.Do(func() {
		w.cancel()
		_ = w.pr.Close()
	})
	<-w.done
	return nil
}

func walk(ctx context.Context, out io.Writer, root string, hidden bool) error {
	bw := bufio.NewWriter(out)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return filepath.SkipAll
		}
		if err != nil {
			// Unreadable entries are skipped, as fd does.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}
		if !hidden && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if _, err := bw.WriteString(rel + "\n"); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, io.ErrClosedPipe) {
			return nil
		}
		return err
	}
	if err := bw.Flush(); err != nil && !errors.Is(err, io.ErrClosedPipe) {
		return err
	}
	return nil
}
