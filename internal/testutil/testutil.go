// Package testutil provides helper functions for testing.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TempDir creates a temporary directory and registers a cleanup function.
// The directory is automatically deleted when the test completes.
func TempDir(t *testing.T) string {
	t.Helper()

	dir, err := os.MkdirTemp("", "founder-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	t.Cleanup(func() {
		if err := os.RemoveAll(dir); err != nil {
			t.Errorf("failed to cleanup temp dir %s: %v", dir, err)
		}
	})

	return dir
}

// WriteHistory writes records oldest-first to a history file in a fresh
// temporary directory and returns the file path.
func WriteHistory(t *testing.T, records ...string) string {
	t.Helper()

	path := filepath.Join(TempDir(t), "history")
	var b strings.Builder
	for _, r := range records {
		b.WriteString(r)
		b.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatalf("failed to write history file: %v", err)
	}

	return path
}

// ReadHistory returns the records stored at path, oldest first.
// A missing file yields nil.
func ReadHistory(t *testing.T, path string) []string {
	t.Helper()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("failed to read history file: %v", err)
	}

	var records []string
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			records = append(records, line)
		}
	}
	return records
}

// Touch creates an empty file at path, making parent directories as needed.
func Touch(t *testing.T, path string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("failed to touch %s: %v", path, err)
	}
}
