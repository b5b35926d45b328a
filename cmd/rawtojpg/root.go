package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cdown/rawtojpg/arw"
	"github.com/cdown/rawtojpg/batch"
	"github.com/cdown/rawtojpg/errors"
	"github.com/cdown/rawtojpg/fs"
	"github.com/cdown/rawtojpg/fs/billy"
)

// usageError marks failures that should print usage and exit 1.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

type rootOptions struct {
	keepGoing      bool
	verbose        bool
	offsetPosition int64
	lengthPosition int64
}

func (o *rootOptions) layout() (arw.Layout, error) {
	l := arw.SonyA1
	if o.offsetPosition != arw.OffsetPosition || o.lengthPosition != arw.LengthPosition {
		l = arw.Layout{
			Name:        "custom",
			OffsetField: o.offsetPosition,
			LengthField: o.lengthPosition,
		}
	}
	if err := l.Validate(); err != nil {
		return arw.Layout{}, &usageError{msg: err.Error()}
	}
	return l, nil
}

func (o *rootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "rawtojpg [flags] <input_dir> [output_dir]",
		Short: "Extract embedded JPEG previews from .ARW files",
		Long: `rawtojpg copies the embedded JPEG preview out of every .ARW file in
input_dir and writes it as <stem>.jpg in output_dir (default ".").

The preview is located by two little-endian 32-bit header fields and is
copied verbatim; nothing is decoded or re-encoded.`,
		Args: func(_ *cobra.Command, args []string) error {
			switch {
			case len(args) < 1:
				return &usageError{msg: "missing input directory"}
			case len(args) > 2:
				return &usageError{msg: fmt.Sprintf("too many arguments: %d", len(args))}
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			outDir := "."
			if len(args) > 1 {
				outDir = args[1]
			}
			return runExtract(cmd.Context(), opts, args[0], outDir, stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug records to stderr")
	flags.Int64Var(&opts.offsetPosition, "offset-position", arw.OffsetPosition,
		"position of the preview offset field")
	flags.Int64Var(&opts.lengthPosition, "length-position", arw.LengthPosition,
		"position of the preview length field")
	cmd.Flags().BoolVarP(&opts.keepGoing, "keep-going", "k", false,
		"continue with the remaining files after a failure")

	cmd.AddCommand(newInspectCmd(opts, stdout, stderr))

	return cmd
}

func runExtract(ctx context.Context, opts *rootOptions, inDir, outDir string, stdout, stderr io.Writer) error {
	layout, err := opts.layout()
	if err != nil {
		return err
	}
	logger := opts.logger(stderr)

	inAbs, err := fs.GetAbs(inDir)
	if err != nil {
		return err
	}
	if ok, err := fs.IsDir(inAbs); err != nil {
		return errors.IO("stat input directory", inAbs, err)
	} else if !ok {
		return errors.Newf(errors.CodeInvalidInput, "open input directory", inAbs, "not a directory")
	}
	outAbs, err := fs.GetAbs(outDir)
	if err != nil {
		return err
	}
	if err := billy.NewHostFS().MkdirAll(outAbs, 0o755); err != nil {
		return errors.IO("create output directory", outAbs, err)
	}

	policy := batch.HaltOnError
	if opts.keepGoing {
		policy = batch.ContinueOnError
	}

	x := arw.New(
		arw.WithLayout(layout),
		arw.WithLogger(logger),
		arw.WithStatus(stdout),
	)
	r := batch.New(
		batch.WithExtractor(x),
		batch.WithPolicy(policy),
		batch.WithLogger(logger),
	)

	logger.Debug("starting", "input", inAbs, "output", outAbs, "layout", layout.Name)
	_, err = r.Run(ctx, billy.NewOSFS(inAbs), billy.NewOSFS(outAbs))
	return err
}

func exitCode(cmd *cobra.Command, err error, stderr io.Writer) int {
	if err == nil {
		return exitOK
	}

	var uerr *usageError
	if errors.As(err, &uerr) {
		fmt.Fprintf(stderr, "rawtojpg: %v\n", err)
		if cmd != nil {
			fmt.Fprint(stderr, cmd.UsageString())
		}
		return exitUsage
	}

	fmt.Fprintf(stderr, "rawtojpg: %v\n", err)
	return exitFailure
}
