// Package scanner lists the raw containers in a directory.
//
// Selection is by name only: an entry is a container when its name ends in
// the case-sensitive suffix ".ARW". Entry types are not inspected, so a
// directory or symlink carrying that suffix is returned like any file and
// fails later when it is opened or read.
package scanner
