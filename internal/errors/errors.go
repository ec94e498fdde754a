// Package errors provides the error taxonomy for founder.
//
// Base errors (sentinel errors):
//   - ErrNotFound - file or binary not found
//   - ErrInvalid - rejected input (empty path, embedded newline, bad config)
//   - ErrIO - history file I/O failed
//   - ErrEnvironment - home or data directory unresolvable, collaborator missing
//   - ErrContract - the selector broke its output contract
//
// Wrapped error types (add context):
//   - HistoryError{Op, Path, Err} - history log operations
//   - CollaboratorError{Name, Op, Err} - scanner and selector subprocesses
//   - ConfigError{Path, Err} - configuration errors
//   - ExitError{Code} - an exit status to propagate verbatim
//
// # Usage
//
//	return &errors.HistoryError{Op: "append", Path: p, Err: errors.ErrInvalid}
//
//	if errors.IsContract(err) {
//	    // internal invariant violated
//	}
//
//	os.Exit(errors.ExitCode(err))
package errors

import (
	"errors"
	"fmt"
)

// Base error types (sentinel errors).
var (
	// ErrNotFound indicates a file or binary was not found.
	ErrNotFound = baseError("not found")

	// ErrInvalid indicates validation failed.
	ErrInvalid = baseError("invalid")

	// ErrIO indicates a file I/O error.
	ErrIO = baseError("I/O error")

	// ErrEnvironment indicates the process environment cannot support the operation.
	ErrEnvironment = baseError("environment error")

	// ErrContract indicates a collaborator violated its output contract.
	ErrContract = baseError("contract violation")
)

// baseError is a string that implements error.
type baseError string

func (e baseError) Error() string { return string(e) }

// HistoryError represents an error that occurred while operating on the history log.
type HistoryError struct {
	// Op is the operation being performed (e.g., "load", "append", "compact").
	Op string
	// Path is the history file or the path being recorded (optional).
	Path string
	// Err is the underlying error.
	Err error
}

func (e *HistoryError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("history %s %q: %s", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("history %s: %s", e.Op, e.Err)
}

func (e *HistoryError) Unwrap() error { return e.Err }

// CollaboratorError represents a failure of an external collaborator process.
type CollaboratorError struct {
	// Name is the collaborator command (e.g., "fd", "fzf").
	Name string
	// Op is the operation being performed (e.g., "start", "wait").
	Op string
	// Err is the underlying error.
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Name, e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

// ConfigError represents an error related to configuration.
type ConfigError struct {
	// Path is the configuration file path (optional).
	Path string
	// Err is the underlying error.
	Err error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %s", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ExitError carries an exit status that the process should report as is.
// It is used when the selector exits non-zero without a selection.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string { return fmt.Sprintf("exit status %d", e.Code) }

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalid reports whether err is or wraps ErrInvalid.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalid)
}

// IsIO reports whether err is or wraps ErrIO.
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}

// IsEnvironment reports whether err is or wraps ErrEnvironment.
func IsEnvironment(err error) bool {
	return errors.Is(err, ErrEnvironment)
}

// IsContract reports whether err is or wraps ErrContract.
func IsContract(err error) bool {
	return errors.Is(err, ErrContract)
}

// AsHistoryError reports whether err can be typed as a *HistoryError.
func AsHistoryError(err error) (*HistoryError, bool) {
	var he *HistoryError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}

// AsCollaboratorError reports whether err can be typed as a *CollaboratorError.
func AsCollaboratorError(err error) (*CollaboratorError, bool) {
	var ce *CollaboratorError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// AsConfigError reports whether err can be typed as a *ConfigError.
func AsConfigError(err error) (*ConfigError, bool) {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// ExitCode maps an error to a process exit status.
// nil is 0, an ExitError anywhere in the chain yields its code, anything else is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return 1
}
