// Command rawtojpg extracts the embedded JPEG preview of every .ARW file in
// a directory.
//
// Usage:
//
//	rawtojpg [flags] <input_dir> [output_dir]
//	rawtojpg inspect <file>
//
// Each preview is written as <stem>.jpg in output_dir, which defaults to
// the current directory and is created if missing. The name of every
// processed file is printed on standard output.
//
// Exit status is 1 for usage errors and 2 when a file cannot be extracted.
package main

import (
	"io"
	"os"
)

const (
	exitOK      = 0
	exitUsage   = 1
	exitFailure = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	executed, err := cmd.ExecuteC()
	return exitCode(executed, err, stderr)
}
