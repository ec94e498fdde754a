package finder

import (
	"fmt"
	"strings"

	ferrors "github.com/oconnor663/founder/internal/errors"
	"github.com/oconnor663/founder/internal/runner"
)

// Outcome is a parsed selector result.
type Outcome struct {
	Query     string
	Key       string // "" when the selection ended with enter
	Selection string
	ExitCode  int
}

// ParseOutput splits the selector's output into query, key and selection.
//
// Fewer than three fields means the selector exited before printing. That is
// the exit status to report when it is non-zero and a broken contract otherwise.
func ParseOutput(res runner.Result) (Outcome, error) {
	fields := strings.SplitN(string(res.Output), "\n", 4)
	if len(fields) < 3 {
		if res.ExitCode != 0 {
			return Outcome{}, &ferrors.ExitError{Code: res.ExitCode}
		}
		return Outcome{}, fmt.Errorf("selector printed %d of 3 fields: %w", len(fields), ferrors.ErrContract)
	}

	return Outcome{
		Query:     fields[0],
		Key:       fields[1],
		Selection: fields[2],
		ExitCode:  res.ExitCode,
	}, nil
}
