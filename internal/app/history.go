package app

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rodaine/table"
	"go.uber.org/zap"
)

// Add records path in history as if it had been selected.
// It returns the absolute path that was written.
func Add(env *Env, path string) (string, error) {
	abs, err := env.Store.Append(path)
	if err != nil {
		return "", err
	}
	env.Logger.Debug("recorded path", zap.String("path", abs))
	return abs, nil
}

// CleanResult reports what Clean removed.
type CleanResult struct {
	Removed   int
	Remaining int
}

// Clean drops history records whose path no longer exists.
// Paths that cannot be checked for another reason are kept.
func Clean(env *Env) (*CleanResult, error) {
	log, err := env.Store.Load()
	if err != nil {
		return nil, err
	}

	removed, err := env.Store.Prune(log, pathExists)
	if err != nil {
		return nil, err
	}

	return &CleanResult{Removed: removed, Remaining: log.Len() - removed}, nil
}

func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}

// HistoryEntry is one row of the history listing.
type HistoryEntry struct {
	Rank    int
	Path    string
	Display string
	Exists  bool
}

// ListHistory returns distinct history records, newest first.
// A limit <= 0 means all of them.
func ListHistory(env *Env, limit int) ([]HistoryEntry, error) {
	log, err := env.Store.Load()
	if err != nil {
		return nil, err
	}

	var entries []HistoryEntry
	for i, p := range log.Unique(limit) {
		entries = append(entries, HistoryEntry{
			Rank:    i + 1,
			Path:    p,
			Display: env.Normalizer.ToDisplay(p),
			Exists:  pathExists(p),
		})
	}
	return entries, nil
}

// PrintHistory renders entries as a table.
func PrintHistory(w io.Writer, entries []HistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "History is empty.")
		return
	}

	tbl := table.New("#", "Path", "Exists").WithWriter(w)
	for _, e := range entries {
		exists := "yes"
		if !e.Exists {
			exists = "no"
		}
		tbl.AddRow(e.Rank, e.Display, exists)
	}
	tbl.Print()
}
