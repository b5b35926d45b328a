// Package batch extracts the previews of every raw container in a
// directory.
//
// A Runner scans its input directory, opens each selected container
// relative to it, hands it to an arw.Extractor writing into the output
// directory and closes it again. Files are processed one at a time in scan
// order. What happens after a failure is set by the Runner's Policy.
package batch
