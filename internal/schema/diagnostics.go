package schema

import (
	"fmt"
	"strings"
)

// Diagnostic is a single validation failure located by a path such as
// "inputs[1].width".
type Diagnostic struct {
	Path    string
	Message string
}

func (d Diagnostic) String() string {
	if d.Path == "" {
		return d.Message
	}
	return d.Path + ": " + d.Message
}

// Diagnostics is an ordered list of validation failures.
type Diagnostics []Diagnostic

// HasErrors reports whether any diagnostic was recorded.
func (d Diagnostics) HasErrors() bool {
	return len(d) > 0
}

// Add appends a diagnostic built from a format string.
func (d *Diagnostics) Add(path, format string, args ...any) {
	*d = append(*d, Diagnostic{Path: path, Message: fmt.Sprintf(format, args...)})
}

// Append appends all of other.
func (d *Diagnostics) Append(other Diagnostics) {
	*d = append(*d, other...)
}

// Err wraps the diagnostics in an *Error for file, or returns nil when
// there are none.
func (d Diagnostics) Err(file string) error {
	if !d.HasErrors() {
		return nil
	}
	return &Error{File: file, Diagnostics: d}
}

// Error reports every schema violation found in one definition document.
type Error struct {
	File        string
	Diagnostics Diagnostics
}

func (e *Error) Error() string {
	lines := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		lines[i] = d.String()
	}
	return fmt.Sprintf("invalid definition %s:\n- %s", e.File, strings.Join(lines, "\n- "))
}

// JoinPath appends a key to a diagnostic path.
func JoinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// IndexPath appends a sequence index to a diagnostic path.
func IndexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
