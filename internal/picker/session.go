package picker

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	ferrors "github.com/oconnor663/founder/internal/errors"
	"github.com/oconnor663/founder/internal/runner"
)

// Selector implements runner.Selector with an in-process Bubble Tea program.
// The UI is drawn on standard error and keys are read from the terminal, so
// standard output only ever carries the result.
type Selector struct {
	input  io.Reader // nil = controlling terminal
	output io.Writer
	logger *zap.Logger
}

// Option configures a Selector.
type Option func(*Selector)

// WithInput reads keys from r instead of the terminal.
func WithInput(r io.Reader) Option {
	return func(s *Selector) { s.input = r }
}

// WithOutput draws the UI on w.
func WithOutput(w io.Writer) Option {
	return func(s *Selector) { s.output = w }
}

// WithLogger sets the logger for debug events.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Selector) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Selector.
func New(opts ...Option) *Selector {
	s := &Selector{output: os.Stderr, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start runs the picker until the user accepts, aborts or presses the expect key.
func (s *Selector) Start(ctx context.Context, req runner.Request) (runner.Session, error) {
	programOpts := []tea.ProgramOption{tea.WithOutput(s.output), tea.WithContext(ctx)}
	if s.input != nil {
		programOpts = append(programOpts, tea.WithInput(s.input))
	} else {
		programOpts = append(programOpts, tea.WithInputTTY())
	}

	pr, pw := io.Pipe()
	sess := &session{
		pr:       pr,
		pw:       pw,
		program:  tea.NewProgram(NewModel(req), programOpts...),
		runDone:  make(chan struct{}),
		feedDone: make(chan struct{}),
	}

	go sess.run()
	go sess.feed()

	s.logger.Debug("builtin picker started", zap.String("prompt", req.Prompt), zap.String("query", req.Query))
	return sess, nil
}

type session struct {
	pr      *io.PipeReader
	pw      *io.PipeWriter
	program *tea.Program

	runDone  chan struct{}
	feedDone chan struct{}
	final    tea.Model
	runErr   error
}

func (s *session) Input() io.WriteCloser { return s.pw }

func (s *session) run() {
	defer close(s.runDone)
	s.final, s.runErr = s.program.Run()
}

// feed forwards input lines to the program in batches. A batch is sent
// whenever the reader has nothing more buffered.
func (s *session) feed() {
	defer close(s.feedDone)

	br := bufio.NewReader(s.pr)
	var batch []string
	for {
		line, err := br.ReadString('\n')
		if line = strings.TrimSuffix(line, "\n"); line != "" {
			batch = append(batch, line)
		}
		if err != nil || br.Buffered() == 0 {
			if len(batch) > 0 {
				s.program.Send(candidatesMsg(batch))
				batch = nil
			}
		}
		if err != nil {
			return
		}
	}
}

func (s *session) Wait() (runner.Result, error) {
	<-s.runDone

	// Writers see a closed pipe from here on.
	_ = s.pr.CloseWithError(io.ErrClosedPipe)
	<-s.feedDone

	switch {
	case errors.Is(s.runErr, tea.ErrProgramKilled):
		return runner.Result{ExitCode: ExitAborted}, nil
	case s.runErr != nil:
		return runner.Result{}, &ferrors.CollaboratorError{Name: "builtin picker", Op: "run", Err: s.runErr}
	}

	m, ok := s.final.(Model)
	if !ok {
		return runner.Result{ExitCode: ExitAborted}, nil
	}
	out, code := m.Output()
	return runner.Result{Output: out, ExitCode: code}, nil
}
