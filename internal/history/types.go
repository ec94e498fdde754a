// Package history owns the append-only log of paths the user has selected.
//
// The log is a plain file with one absolute path per line, oldest first.
// It only grows by Append. Once it holds MaxEntries records, Compact rewrites
// it with the newest distinct records, keeping at most half the cap.
package history

import "go.uber.org/zap"

// DefaultMaxEntries is the soft cap on records before compaction runs.
const DefaultMaxEntries = 1000

// Options configures a Store.
type Options struct {
	MaxEntries int         // Soft cap on records (0 = DefaultMaxEntries)
	Logger     *zap.Logger // Debug events for compaction (nil = no-op)
}
