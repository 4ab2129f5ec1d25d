package cliargs

import "fmt"

// ParseError reports argv that does not match the grammar.
type ParseError struct {
	// Msg is a human-readable diagnostic.
	Msg string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return "parse arguments: " + e.Msg
}

// Unwrap returns the underlying cause for errors.Is/errors.As.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

func parseErrorf(format string, a ...any) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, a...)}
}

// IoError reports a file that exists but could not be read.
type IoError struct {
	// Stage is the pipeline stage that failed.
	Stage string

	// Path is the file being read.
	Path string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *IoError) Error() string {
	return fmt.Sprintf("%s: read %q: %v", e.Stage, e.Path, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/errors.As.
func (e *IoError) Unwrap() error {
	return e.Cause
}

// HelpRequest is returned by Parse when -h/--help or the help command was
// given. It carries the rendered usage text.
type HelpRequest struct {
	Usage string
}

// Error implements the error interface.
func (e *HelpRequest) Error() string {
	return "help requested"
}
