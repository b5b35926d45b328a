package batch

import (
	"context"
	"log/slog"
	"path"
	"time"

	"github.com/cdown/rawtojpg/arw"
	"github.com/cdown/rawtojpg/errors"
	"github.com/cdown/rawtojpg/fs"
	"github.com/cdown/rawtojpg/scanner"
)

// Failure is a container that could not be extracted.
type Failure struct {
	Name string
	Err  error
}

// Result summarizes a run.
type Result struct {
	// Processed lists the containers extracted, in processing order.
	Processed []string

	// Failures lists the containers that failed, in processing order.
	// Under HaltOnError it holds at most one entry.
	Failures []Failure

	// Duration is how long the run took.
	Duration time.Duration
}

// Err joins the errors of all failures, or returns nil.
func (r *Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	if len(r.Failures) == 1 {
		return r.Failures[0].Err
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, f.Err)
	}
	return errors.Join(errs...)
}

// Runner extracts every container in a directory.
type Runner struct {
	opts      *Options
	extractor *arw.Extractor
	logger    *slog.Logger
}

// New creates a Runner.
func New(opts ...Option) *Runner {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	x := o.Extractor
	if x == nil {
		x = arw.New(arw.WithLogger(o.Logger))
	}

	return &Runner{
		opts:      o,
		extractor: x,
		logger:    o.Logger.With("policy", o.Policy.String()),
	}
}

// Run extracts the previews of all containers in the input directory into
// out. The returned Result is never nil. The error is nil only if every
// container was extracted.
func (r *Runner) Run(ctx context.Context, in, out fs.Filesystem) (*Result, error) {
	start := time.Now()
	result := &Result{}
	defer func() { result.Duration = time.Since(start) }()

	entries, err := scanner.NewScanner(in).Scan(ctx, r.opts.Dir)
	if err != nil {
		return result, err
	}
	r.logger.Debug("scanned input directory", "dir", r.opts.Dir, "containers", len(entries))

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return result, errors.New(errors.CodeCancelled, "run", entry.Name, ctx.Err())
		default:
		}

		if err := r.process(in, out, entry.Name); err != nil {
			result.Failures = append(result.Failures, Failure{Name: entry.Name, Err: err})
			if r.opts.Policy == HaltOnError {
				return result, err
			}
			r.logger.Warn("extraction failed, continuing", "file", entry.Name, "error", err)
			continue
		}
		result.Processed = append(result.Processed, entry.Name)
	}

	if len(result.Failures) > 0 {
		r.logger.Info("run finished with failures",
			"processed", len(result.Processed),
			"failed", len(result.Failures),
		)
	}
	return result, result.Err()
}

func (r *Runner) process(in, out fs.Filesystem, name string) (err error) {
	f, err := in.Open(path.Join(r.opts.Dir, name))
	if err != nil {
		return errors.IO("open", name, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.IO("close", name, cerr)
		}
	}()

	_, err = r.extractor.Extract(f, name, out)
	return err
}
