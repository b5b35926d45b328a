package arw

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/cdown/rawtojpg/errors"
	"github.com/cdown/rawtojpg/fs"
)

// Extractor copies embedded previews out of containers.
// It holds no per-file state and may be reused.
type Extractor struct {
	opts   *Options
	logger *slog.Logger
}

// Result describes one successful extraction.
type Result struct {
	Input   string
	Output  string
	Preview Preview
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Extractor{
		opts:   o,
		logger: o.Logger.With("layout", o.Layout.Name),
	}
}

// Layout returns the layout the extractor reads.
func (x *Extractor) Layout() Layout {
	return x.opts.Layout
}

// Extract validates the preview in in and writes it to OutputName(name) in
// out, replacing any existing file. On success name is written as one line
// to the status writer. On failure no output file is left behind.
func (x *Extractor) Extract(in fs.File, name string, out fs.Filesystem) (*Result, error) {
	x.hint(in, name, adviseRandom)

	p, err := x.Locate(in, name)
	if err != nil {
		return nil, err
	}

	x.hint(in, name, func(fd uintptr) error {
		return adviseWillNeed(fd, int64(p.Offset), int64(p.Length))
	})

	outName := OutputName(name)
	if err := x.write(in, p, out, outName); err != nil {
		return nil, err
	}

	if _, err := fmt.Fprintln(x.opts.Status, name); err != nil {
		x.logger.Warn("failed to report progress", "file", name, "error", err)
	}
	x.logger.Debug("extracted preview",
		"file", name,
		"output", outName,
		"offset", p.Offset,
		"length", p.Length,
	)

	return &Result{Input: name, Output: outName, Preview: p}, nil
}

func (x *Extractor) write(in io.ReaderAt, p Preview, out fs.Filesystem, outName string) (err error) {
	f, err := out.Create(outName)
	if err != nil {
		return errors.IO("create", outName, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.IO("close", outName, cerr)
		}
		if err == nil {
			return
		}
		if rerr := out.Remove(outName); rerr != nil {
			x.logger.Warn("failed to remove partial output", "output", outName, "error", rerr)
		}
	}()

	n, err := io.Copy(f, io.NewSectionReader(in, int64(p.Offset), int64(p.Length)))
	if err != nil {
		return errors.IO("write", outName, err)
	}
	if n != int64(p.Length) {
		return errors.Newf(errors.CodeIO, "write", outName,
			"%w: wrote %d of %d bytes", io.ErrShortWrite, n, p.Length)
	}
	return nil
}

// hint applies a read-ahead hint when in is backed by a descriptor.
// Hints are advisory; failures are logged and otherwise ignored.
func (x *Extractor) hint(in fs.File, name string, advise func(fd uintptr) error) {
	d, ok := in.(fs.Descriptor)
	if !ok {
		return
	}
	fd, ok := d.Descriptor()
	if !ok {
		return
	}
	if err := advise(fd); err != nil {
		x.logger.Debug("read-ahead hint failed", "file", name, "error", err)
	}
}
