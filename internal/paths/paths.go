// Package paths converts between the absolute paths stored in history and the
// forms shown to the selector.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	ferrors "github.com/oconnor663/founder/internal/errors"
)

// Tilde is the display stand-in for the home directory.
const Tilde = "~"

// AppName is the subdirectory used under the per-user data directory.
const AppName = "founder"

// Normalizer converts paths relative to a fixed home directory.
// The separator is fixed when the Normalizer is built.
type Normalizer struct {
	home string
	sep  string
}

// NewNormalizer creates a Normalizer for the given home directory.
func NewNormalizer(home string) *Normalizer {
	return &Normalizer{
		home: trimTrailingSep(filepath.Clean(home), string(filepath.Separator)),
		sep:  string(filepath.Separator),
	}
}

// Home returns the home directory the Normalizer was built with.
func (n *Normalizer) Home() string {
	return n.home
}

// ToDisplay returns the form of path written to the selector.
//
// Paths under the home directory get a "~/" prefix. Paths whose first
// component is literally "~" get a "./" prefix so Expand leaves them alone.
func (n *Normalizer) ToDisplay(path string) string {
	if rest, ok := n.cut(path, n.home); ok {
		if rest == "" {
			return Tilde
		}
		return Tilde + n.sep + rest
	}
	if n.firstIsTilde(path) {
		return "." + n.sep + path
	}
	return path
}

// Expand substitutes the home directory for a leading "~" component.
func (n *Normalizer) Expand(selection string) string {
	if selection == Tilde {
		return n.home
	}
	if rest, ok := strings.CutPrefix(selection, Tilde+n.sep); ok {
		if strings.HasSuffix(n.home, n.sep) {
			return n.home + rest
		}
		return n.home + n.sep + rest
	}
	return selection
}

// Relativize strips cwd from the front of path when path lies under it.
func (n *Normalizer) Relativize(path, cwd string) string {
	if rest, ok := n.cut(path, cwd); ok && rest != "" {
		return rest
	}
	return path
}

// Within reports whether path is dir or lies under dir, comparing whole components.
func (n *Normalizer) Within(path, dir string) bool {
	_, ok := n.cut(path, dir)
	return ok
}

func (n *Normalizer) firstIsTilde(path string) bool {
	return path == Tilde || strings.HasPrefix(path, Tilde+n.sep)
}

// cut removes prefix from path if it is a component-wise prefix.
func (n *Normalizer) cut(path, prefix string) (string, bool) {
	if prefix == "" {
		return "", false
	}
	if prefix != n.sep {
		prefix = trimTrailingSep(prefix, n.sep)
	}
	if path == prefix {
		return "", true
	}
	if !strings.HasSuffix(prefix, n.sep) {
		prefix += n.sep
	}
	if rest, ok := strings.CutPrefix(path, prefix); ok {
		return strings.TrimLeft(rest, n.sep), true
	}
	return "", false
}

func trimTrailingSep(p, sep string) string {
	for len(p) > len(sep) && strings.HasSuffix(p, sep) {
		p = strings.TrimSuffix(p, sep)
	}
	return p
}

// HomeDir resolves the current user's home directory.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", fmt.Errorf("no home directory configured: %w", ferrors.ErrEnvironment)
	}
	return home, nil
}

// DataDir returns the per-user application data directory for founder.
// It follows XDG_DATA_HOME on Unix and Application Support on macOS.
// The directory is not created.
func DataDir(home string) (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" && filepath.IsAbs(dir) {
		return filepath.Join(dir, AppName), nil
	}
	if home == "" {
		return "", fmt.Errorf("no data directory: %w", ferrors.ErrEnvironment)
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support", AppName), nil
	}
	return filepath.Join(home, ".local", "share", AppName), nil
}
