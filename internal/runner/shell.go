package runner

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"syscall"

	ferrors "github.com/oconnor663/founder/internal/errors"
)

// ExitCode extracts the exit status from an exec.ExitError.
// A process killed by a signal reports 128 plus the signal number, as a shell would.
func ExitCode(err *exec.ExitError) int {
	if status, ok := err.Sys().(syscall.WaitStatus); ok {
		if status.Signaled() {
			return 128 + int(status.Signal())
		}
		return status.ExitStatus()
	}
	if code := err.ExitCode(); code >= 0 {
		return code
	}
	return 1
}

// startError classifies a failure to launch a collaborator.
func startError(name string, err error) error {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return &ferrors.CollaboratorError{
			Name: name,
			Op:   "start",
			Err:  fmt.Errorf("%w: %s not found on PATH", ferrors.ErrEnvironment, name),
		}
	}
	return &ferrors.CollaboratorError{Name: name, Op: "start", Err: err}
}

// waitError wraps an unexpected failure while reaping a collaborator.
func waitError(name string, err error) error {
	return &ferrors.CollaboratorError{Name: name, Op: "wait", Err: fmt.Errorf("%w: %w", ferrors.ErrIO, err)}
}
