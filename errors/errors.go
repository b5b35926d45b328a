package errors

import (
	stderrors "errors"
	"fmt"
)

// Error is a failure with a code, the operation that failed, and the file it
// failed on.
type Error struct {
	// Code classifies the failure.
	Code ErrorCode

	// Op is the operation that failed (e.g. "stat", "read header", "write").
	Op string

	// Path is the file being processed, if any.
	Path string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s %s: %v", e.Code, e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error.
func New(code ErrorCode, op, path string, err error) *Error {
	return &Error{
		Code: code,
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// Newf creates an Error whose underlying error is built from format.
// Use %w in format to keep a sentinel reachable through errors.Is.
func Newf(code ErrorCode, op, path, format string, args ...any) *Error {
	return New(code, op, path, fmt.Errorf(format, args...))
}

// IO wraps err as an IO failure. It returns nil when err is nil.
func IO(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return New(CodeIO, op, path, err)
}

// CodeOf returns the code of the first *Error in err's chain, or CodeUnknown.
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// Is, As and Join re-export the standard helpers so callers importing this
// package do not need a second, aliased errors import.
var (
	Is   = stderrors.Is
	As   = stderrors.As
	Join = stderrors.Join
)
