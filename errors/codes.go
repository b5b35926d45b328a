// Package errors provides the coded error type used across rawtojpg.
// Every failure surfaced to the batch driver or the CLI carries an ErrorCode
// so callers can classify it without matching on message text.
package errors

// ErrorCode identifies a class of failure.
// Codes are string-based so they read naturally in diagnostics.
type ErrorCode string

const (
	// Container errors.

	// CodeOutOfBounds indicates a header field or the preview range lies
	// outside the container.
	CodeOutOfBounds ErrorCode = "OUT_OF_BOUNDS"

	// CodeBadSignature indicates the preview range does not begin with a
	// JPEG start-of-image marker.
	CodeBadSignature ErrorCode = "BAD_SIGNATURE"

	// Infrastructure errors.

	// CodeIO indicates a filesystem operation (open, stat, read, write,
	// close) failed.
	CodeIO ErrorCode = "IO_ERROR"

	// CodeCancelled indicates the batch was stopped by its context.
	CodeCancelled ErrorCode = "CANCELLED"

	// Validation errors.

	// CodeInvalidInput indicates invalid arguments or configuration.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// Generic errors.

	// CodeUnknown indicates an unclassified error.
	CodeUnknown ErrorCode = "UNKNOWN"
)
