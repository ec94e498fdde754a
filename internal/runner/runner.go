// Package runner starts the external collaborators: the live scanner that
// lists files and the interactive selector that picks one of them.
package runner

import (
	"context"
	"io"
	"os"

	"go.uber.org/zap"
)

// Scanner starts a live file listing in the working directory.
type Scanner interface {
	// Start begins the listing. hidden includes dot files and dot directories.
	Start(ctx context.Context, hidden bool) (Scan, error)
}

// Scan is a running listing, one path per line on Output.
type Scan interface {
	Output() io.Reader
	// Kill stops the listing early. Output reaches EOF soon after.
	Kill() error
	// Wait releases the listing's resources. Call it after Output is drained.
	Wait() error
}

// Selector starts an interactive selection over lines written to its input.
type Selector interface {
	Start(ctx context.Context, req Request) (Session, error)
}

// Request describes one selector invocation.
type Request struct {
	Prompt      string // Shown before the query, e.g. "local> "
	Query       string // Pre-filled query
	ExpectKey   string // Key that ends the selection and is reported back
	HistoryFile string // Query recall file ("" = none)
	HistorySize int    // Query recall entries
}

// Session is a running selector.
type Session interface {
	// Input receives candidate lines. Writes fail once the selector exits.
	Input() io.WriteCloser
	// Wait blocks until the selector exits.
	Wait() (Result, error)
}

// Result is what a selector printed and how it exited.
//
// Output holds three newline separated fields: the final query, the key
// that ended the selection ("" for enter), and the selection.
type Result struct {
	Output   []byte
	ExitCode int
}

// procConfig holds settings shared by the subprocess collaborators.
type procConfig struct {
	args       []string
	hiddenFlag string
	dir        string
	stderr     io.Writer
	logger     *zap.Logger
}

func newProcConfig(opts []Option) procConfig {
	c := procConfig{
		stderr: os.Stderr,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Option configures a collaborator.
type Option func(*procConfig)

// WithArgs sets extra arguments passed on every invocation.
func WithArgs(args ...string) Option {
	return func(c *procConfig) {
		c.args = append([]string(nil), args...)
	}
}

// WithHiddenFlag sets the argument that makes a scanner include hidden files.
func WithHiddenFlag(flag string) Option {
	return func(c *procConfig) {
		c.hiddenFlag = flag
	}
}

// WithDir sets the working directory.
func WithDir(dir string) Option {
	return func(c *procConfig) {
		c.dir = dir
	}
}

// WithStderr redirects the collaborator's standard error.
func WithStderr(w io.Writer) Option {
	return func(c *procConfig) {
		c.stderr = w
	}
}

// WithLogger sets the logger for debug events.
func WithLogger(logger *zap.Logger) Option {
	return func(c *procConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}
