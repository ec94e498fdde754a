package history

import (
	"iter"
	"strings"
)

// Log is an in-memory snapshot of the history file.
type Log struct {
	records []string // oldest first, non-empty
}

// NewLog builds a Log from records given oldest first. Empty records are dropped.
func NewLog(records ...string) *Log {
	return &Log{records: filterRecords(records, func(string) bool { return true })}
}

func parseLog(data []byte) *Log {
	return NewLog(strings.Split(string(data), "\n")...)
}

// Len returns the number of records, duplicates included.
func (l *Log) Len() int {
	return len(l.records)
}

// Records returns a copy of the records, oldest first.
func (l *Log) Records() []string {
	return append([]string(nil), l.records...)
}

// NewestFirst returns the records from newest to oldest.
// The sequence can be iterated more than once.
func (l *Log) NewestFirst() iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := len(l.records) - 1; i >= 0; i-- {
			if !yield(l.records[i]) {
				return
			}
		}
	}
}

// Unique returns distinct records, newest first, at most limit of them.
// A limit <= 0 means no limit.
func (l *Log) Unique(limit int) []string {
	return newestDistinct(l.records, limit)
}
