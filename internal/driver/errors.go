package driver

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies why a definition file failed.
type Kind string

const (
	KindIO                Kind = "io"
	KindParse             Kind = "parse"
	KindSchema            Kind = "schema"
	KindGeneratorNotFound Kind = "generator_not_found"
	KindInvalidParams     Kind = "invalid_params"
	KindGenerate          Kind = "generate"
)

// FileError is the failure of one definition file.
type FileError struct {
	Path string
	Kind Kind
	// SetIndex is the resolved set that failed, or -1 when the failure is
	// not tied to one set.
	SetIndex int
	// Set describes the failing set's provenance, e.g. "set 3 (inputs[1])".
	Set string
	Err error
}

func newFileError(path string, kind Kind, err error) *FileError {
	return &FileError{Path: path, Kind: kind, SetIndex: -1, Err: err}
}

func (e *FileError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Path, e.Kind)
	if e.Set != "" {
		fmt.Fprintf(&b, " in %s", e.Set)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// RunError lists every definition file that failed in a run.
type RunError struct {
	Failures []*FileError
	Files    int
}

func (e *RunError) Error() string {
	lines := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		lines[i] = f.Error()
	}
	return fmt.Sprintf("%d of %d definition files failed:\n- %s", len(e.Failures), e.Files, strings.Join(lines, "\n- "))
}

func (e *RunError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// IsKind reports whether err contains a *FileError of the given kind.
func IsKind(err error, kind Kind) bool {
	var runErr *RunError
	if errors.As(err, &runErr) {
		for _, f := range runErr.Failures {
			if f.Kind == kind {
				return true
			}
		}
		return false
	}
	var fileErr *FileError
	return errors.As(err, &fileErr) && fileErr.Kind == kind
}
