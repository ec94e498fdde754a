package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	ferrors "github.com/oconnor663/founder/internal/errors"
)

// Store reads and writes the history file at a fixed path.
type Store struct {
	path       string
	maxEntries int
	logger     *zap.Logger
}

// NewStore creates a Store for the history file at path.
// Neither the file nor its directory is created until the first write.
func NewStore(path string, opts Options) *Store {
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultMaxEntries
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Store{
		path:       path,
		maxEntries: opts.MaxEntries,
		logger:     opts.Logger,
	}
}

// Path returns the history file path.
func (s *Store) Path() string {
	return s.path
}

// MaxEntries returns the soft cap on records.
func (s *Store) MaxEntries() int {
	return s.maxEntries
}

// Load reads the whole history file. A missing file yields an empty Log.
func (s *Store) Load() (*Log, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return NewLog(), nil
	}
	if err != nil {
		return nil, ioError("load", s.path, err)
	}
	return parseLog(data), nil
}

// NeedsCompaction reports whether log has reached the soft cap.
func (s *Store) NeedsCompaction(log *Log) bool {
	return log.Len() >= s.maxEntries
}

// Append records path at the end of the log and returns the absolute form
// that was written. The path is made absolute lexically; it need not exist.
// The record is written with a single append-mode write.
func (s *Store) Append(path string) (string, error) {
	if path == "" {
		return "", &ferrors.HistoryError{Op: "append", Err: fmt.Errorf("empty path: %w", ferrors.ErrInvalid)}
	}
	if strings.ContainsRune(path, '\n') {
		return "", &ferrors.HistoryError{Op: "append", Path: path, Err: fmt.Errorf("path contains a newline: %w", ferrors.ErrInvalid)}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &ferrors.HistoryError{Op: "append", Path: path, Err: fmt.Errorf("%w: %w", ferrors.ErrEnvironment, err)}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return "", ioError("append", s.path, err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return "", ioError("append", s.path, err)
	}

	if _, err := f.Write([]byte(abs + "\n")); err != nil {
		_ = f.Close()
		return "", ioError("append", s.path, err)
	}
	if err := f.Close(); err != nil {
		return "", ioError("append", s.path, err)
	}

	return abs, nil
}

// Compact rewrites the log with its newest distinct records, at most half
// the cap, oldest first. The new file replaces the old one by rename.
//
// An append from another process between Load and the rename is lost.
func (s *Store) Compact(log *Log) error {
	keep := s.maxEntries / 2
	kept := reversed(newestDistinct(log.records, keep))

	s.logger.Debug("compacting history",
		zap.String("path", s.path),
		zap.Int("records", log.Len()),
		zap.Int("kept", len(kept)))

	if err := s.replace("compact", kept); err != nil {
		return err
	}

	s.logger.Debug("history compacted", zap.String("path", s.path))
	return nil
}

// Prune rewrites the log keeping only records for which keep returns true.
// It returns the number of records removed. The file is not touched when
// nothing would be removed.
func (s *Store) Prune(log *Log, keep func(string) bool) (int, error) {
	kept := filterRecords(log.records, keep)
	removed := log.Len() - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if err := s.replace("prune", kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// replace writes records to a uniquely named sibling file and renames it
// over the log.
func (s *Store) replace(op string, records []string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return ioError(op, s.path, err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(s.path)+"-"+uuid.NewString()+".tmp")
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return ioError(op, tmp, err)
	}

	var b strings.Builder
	for _, r := range records {
		b.WriteString(r)
		b.WriteByte('\n')
	}

	if _, err := f.WriteString(b.String()); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return ioError(op, tmp, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return ioError(op, tmp, err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return ioError(op, s.path, err)
	}
	return nil
}

func ioError(op, path string, err error) error {
	return &ferrors.HistoryError{Op: op, Path: path, Err: fmt.Errorf("%w: %w", ferrors.ErrIO, err)}
}
