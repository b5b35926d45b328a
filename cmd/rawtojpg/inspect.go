package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cdown/rawtojpg/arw"
	"github.com/cdown/rawtojpg/errors"
	"github.com/cdown/rawtojpg/fs"
	"github.com/cdown/rawtojpg/fs/billy"
)

func newInspectCmd(opts *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show where the preview of one .ARW file lies without writing it",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return &usageError{msg: fmt.Sprintf("inspect takes exactly one file, got %d", len(args))}
			}
			return nil
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return runInspect(opts, args[0], stdout, stderr)
		},
	}
}

func runInspect(opts *rootOptions, file string, stdout, stderr io.Writer) (err error) {
	layout, err := opts.layout()
	if err != nil {
		return err
	}

	abs, err := fs.GetAbs(file)
	if err != nil {
		return err
	}
	name := filepath.Base(abs)
	if ok, err := fs.Exists(abs); err != nil {
		return errors.IO("stat", abs, err)
	} else if !ok {
		return errors.Newf(errors.CodeInvalidInput, "inspect", abs, "no such file")
	}

	in, err := billy.NewHostFS().Open(abs)
	if err != nil {
		return errors.IO("open", name, err)
	}
	defer func() {
		if cerr := in.Close(); cerr != nil && err == nil {
			err = errors.IO("close", name, cerr)
		}
	}()

	x := arw.New(arw.WithLayout(layout), arw.WithLogger(opts.logger(stderr)))
	report, err := x.Inspect(in, name)
	if err != nil {
		return err
	}

	printReport(stdout, layout, report)
	return nil
}

func printReport(w io.Writer, layout arw.Layout, r *arw.Report) {
	fmt.Fprintf(w, "file:      %s\n", r.Name)
	fmt.Fprintf(w, "layout:    %s (offset field %#x, length field %#x)\n",
		layout.Name, layout.OffsetField, layout.LengthField)
	fmt.Fprintf(w, "size:      %d\n", r.Preview.ContainerSize)
	fmt.Fprintf(w, "offset:    %#x\n", r.Preview.Offset)
	fmt.Fprintf(w, "length:    %d\n", r.Preview.Length)
	fmt.Fprintf(w, "mime:      %s\n", r.MIME)
	fmt.Fprintf(w, "output:    %s\n", arw.OutputName(r.Name))
	fmt.Fprintln(w, "segments:")
	for _, s := range r.Segments {
		fmt.Fprintf(w, "  %-6s %d\n", s.Marker, s.Size)
	}
	if r.WalkErr != nil {
		fmt.Fprintf(w, "  (walk stopped: %v)\n", r.WalkErr)
	}
}
