// Package feeder writes the candidate list into the selector's input.
//
// History lines go first, newest first, on the caller's goroutine. Stream
// then copies the live scan on a second goroutine, skipping anything already
// written. The seen set is owned by whichever of the two is running, so it
// needs no lock: WriteHistory must return before Stream starts.
package feeder

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strings"

	"go.uber.org/zap"

	"github.com/oconnor663/founder/internal/paths"
)

// Options configures a Feeder.
type Options struct {
	Cwd       string      // Directory history paths are made relative to
	LocalOnly bool        // Skip history entries outside Cwd
	Logger    *zap.Logger // nil = no-op
}

// Feeder merges history and scan lines for one selector invocation.
type Feeder struct {
	norm      *paths.Normalizer
	cwd       string
	localOnly bool
	seen      map[string]struct{}
	logger    *zap.Logger
}

// New creates a Feeder with an empty seen set.
func New(norm *paths.Normalizer, opts Options) *Feeder {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Feeder{
		norm:      norm,
		cwd:       opts.Cwd,
		localOnly: opts.LocalOnly,
		seen:      make(map[string]struct{}),
		logger:    opts.Logger,
	}
}

// WriteHistory writes each history record relativized to the working
// directory and in display form, once per distinct relative path.
// A closed reader on the other end is not an error.
func (f *Feeder) WriteHistory(w io.Writer, records iter.Seq[string]) error {
	bw := bufio.NewWriter(w)

	for record := range records {
		if f.localOnly && !f.norm.Within(record, f.cwd) {
			continue
		}
		rel := f.norm.Relativize(record, f.cwd)
		if !f.mark(rel) {
			continue
		}
		if err := f.writeLine(bw, rel); err != nil {
			return f.writeErr("history", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return f.writeErr("history", err)
	}
	return nil
}

// Stream copies lines from r to w until r is exhausted, skipping lines
// already written. Output is flushed whenever r has nothing buffered so the
// selector sees candidates as they arrive. A closed reader on the w side
// ends the stream without error.
func (f *Feeder) Stream(w io.Writer, r io.Reader) error {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)

	for {
		line, readErr := br.ReadString('\n')
		if line = strings.TrimSuffix(line, "\n"); line != "" {
			key := f.norm.Relativize(strings.TrimPrefix(line, "./"), f.cwd)
			if f.mark(key) {
				if err := f.writeLine(bw, key); err != nil {
					return f.writeErr("scan", err)
				}
			}
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			if IsBrokenPipe(readErr) {
				// The scanner was killed while we were reading.
				break
			}
			return fmt.Errorf("failed to read scanner output: %w", readErr)
		}

		if br.Buffered() == 0 {
			if err := bw.Flush(); err != nil {
				return f.writeErr("scan", err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return f.writeErr("scan", err)
	}
	return nil
}

// Seen reports how many distinct lines have been written.
func (f *Feeder) Seen() int {
	return len(f.seen)
}

// mark adds key to the seen set and reports whether it was new.
func (f *Feeder) mark(key string) bool {
	if _, ok := f.seen[key]; ok {
		return false
	}
	f.seen[key] = struct{}{}
	return true
}

func (f *Feeder) writeLine(bw *bufio.Writer, rel string) error {
	if _, err := bw.WriteString(f.norm.ToDisplay(rel)); err != nil {
		return err
	}
	return bw.WriteByte('\n')
}

func (f *Feeder) writeErr(phase string, err error) error {
	if IsBrokenPipe(err) {
		f.logger.Debug("selector closed its input", zap.String("phase", phase), zap.Error(err))
		return nil
	}
	return fmt.Errorf("failed to write %s lines: %w", phase, err)
}
