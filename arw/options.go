package arw

import (
	"io"
	"log/slog"
)

// Options configures an Extractor.
type Options struct {
	// Layout gives the header field positions.
	Layout Layout

	// Logger receives debug and warning records. Defaults to discarding.
	Logger *slog.Logger

	// Status receives one line with the container name per successful
	// extraction. Defaults to io.Discard.
	Status io.Writer
}

// Option is a function that modifies Options.
type Option func(*Options)

// DefaultOptions returns the SonyA1 layout with logging and status
// discarded.
func DefaultOptions() *Options {
	return &Options{
		Layout: SonyA1,
		Logger: slog.New(slog.DiscardHandler),
		Status: io.Discard,
	}
}

// WithLayout sets the header field positions.
func WithLayout(l Layout) Option {
	return func(o *Options) {
		o.Layout = l
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

// WithStatus sets the writer that receives processed container names.
func WithStatus(w io.Writer) Option {
	return func(o *Options) {
		if w != nil {
			o.Status = w
		}
	}
}
