package apiwrappers

import (
	"fmt"
)

// MalformedLineError is returned for a line that lacks the mandatory method
// and path tokens.
type MalformedLineError struct {
	// Number 1-based line number, zero if the line was parsed on its own.
	Number int
	// Line trimmed line content.
	Line string
}

func (e *MalformedLineError) Error() string {
	if e.Number > 0 {
		return fmt.Sprintf("malformed endpoint at line %d: %q, want <METHOD> <path> [<parameter> ...]", e.Number, e.Line)
	}
	return fmt.Sprintf("malformed endpoint %q, want <METHOD> <path> [<parameter> ...]", e.Line)
}

// InputNotFoundError is returned when the endpoints file does not exist.
type InputNotFoundError struct {
	Path string
	Err  error
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("endpoints file not found: %q", e.Path)
}

func (e *InputNotFoundError) Unwrap() error {
	return e.Err
}

// OutputWriteError is returned when a generated file cannot be written.
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("cannot write %q: %v", e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error {
	return e.Err
}
