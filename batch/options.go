package batch

import (
	"log/slog"

	"github.com/cdown/rawtojpg/arw"
)

// Policy decides how a Runner reacts to a failed container.
type Policy int

const (
	// HaltOnError stops at the first failure and returns it.
	HaltOnError Policy = iota

	// ContinueOnError records each failure, processes the remaining
	// containers and returns every failure joined at the end.
	ContinueOnError
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case HaltOnError:
		return "halt"
	case ContinueOnError:
		return "continue"
	default:
		return "unknown"
	}
}

// Options configures a Runner.
type Options struct {
	// Policy is applied when a container fails. Defaults to HaltOnError.
	Policy Policy

	// Dir is the directory scanned within the input filesystem.
	Dir string

	// Extractor does the per-file work. Defaults to arw.New() with the
	// Runner's logger.
	Extractor *arw.Extractor

	// Logger receives progress and failure records.
	Logger *slog.Logger
}

// Option is a function that modifies Options.
type Option func(*Options)

// DefaultOptions returns options that halt on error and scan the root of
// the input filesystem.
func DefaultOptions() *Options {
	return &Options{
		Policy: HaltOnError,
		Dir:    ".",
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithPolicy sets the failure policy.
func WithPolicy(p Policy) Option {
	return func(o *Options) {
		o.Policy = p
	}
}

// WithDir sets the directory to scan.
func WithDir(dir string) Option {
	return func(o *Options) {
		o.Dir = dir
	}
}

// WithExtractor sets the extractor.
func WithExtractor(x *arw.Extractor) Option {
	return func(o *Options) {
		o.Extractor = x
	}
}

// WithLogger sets the logger. A nil logger keeps the default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}
