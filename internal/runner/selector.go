package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strconv"

	"go.uber.org/zap"
)

// FzfSelector runs fzf, or a compatible wrapper such as fzf-tmux.
type FzfSelector struct {
	command string
	cfg     procConfig
}

// NewFzfSelector creates a selector that runs command.
func NewFzfSelector(command string, opts ...Option) *FzfSelector {
	return &FzfSelector{command: command, cfg: newProcConfig(opts)}
}

// Args returns the fzf arguments for req.
func (s *FzfSelector) Args(req Request) []string {
	args := []string{
		"--prompt=" + req.Prompt,
		"--query=" + req.Query,
		"--print-query",
	}
	if req.ExpectKey != "" {
		args = append(args, "--expect="+req.ExpectKey)
	}
	if req.HistoryFile != "" {
		args = append(args, "--history="+req.HistoryFile)
		if req.HistorySize > 0 {
			args = append(args, "--history-size="+strconv.Itoa(req.HistorySize))
		}
	}
	return append(args, s.cfg.args...)
}

// Start launches the selector. It is never killed; ctx is not used to stop it.
func (s *FzfSelector) Start(_ context.Context, req Request) (Session, error) {
	cmd := exec.Command(s.command, s.Args(req)...)
	cmd.Dir = s.cfg.dir
	cmd.Stderr = s.cfg.stderr

	out := &bytes.Buffer{}
	cmd.Stdout = out

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, startError(s.command, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, startError(s.command, err)
	}

	s.cfg.logger.Debug("selector started",
		zap.String("command", s.command),
		zap.String("prompt", req.Prompt),
		zap.String("query", req.Query))

	return &fzfSession{name: s.command, cmd: cmd, stdin: stdin, out: out}, nil
}

type fzfSession struct {
	name  string
	cmd   *exec.Cmd
	stdin io.WriteCloser
	out   *bytes.Buffer
}

func (f *fzfSession) Input() io.WriteCloser { return f.stdin }

func (f *fzfSession) Wait() (Result, error) {
	err := f.cmd.Wait()

	result := Result{Output: f.out.Bytes()}
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		result.ExitCode = ExitCode(exitErr)
	default:
		return result, waitError(f.name, err)
	}
	return result, nil
}
