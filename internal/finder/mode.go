// Package finder runs the selector until the user accepts a path or gives up,
// switching between local and global scope on the mode key.
package finder

// Mode is the scope of one selector invocation.
type Mode int

const (
	// Local shows history under the working directory and skips hidden files.
	Local Mode = iota
	// Global shows all history and scans hidden files.
	Global
)

// Label is the name shown in the prompt.
func (m Mode) Label() string {
	if m == Global {
		return "global"
	}
	return "local"
}

func (m Mode) String() string { return m.Label() }

// Prompt returns the selector prompt for the mode.
func (m Mode) Prompt() string { return m.Label() + "> " }

// Next returns the mode the mode key switches to.
func (m Mode) Next() Mode {
	if m == Local {
		return Global
	}
	return Local
}

// ShowsAllHistory reports whether history outside the working directory is shown.
func (m Mode) ShowsAllHistory() bool { return m == Global }

// ScansHidden reports whether the live scan includes hidden files.
func (m Mode) ScansHidden() bool { return m == Global }
