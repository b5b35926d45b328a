// Package fs defines the directory-handle abstraction rawtojpg reads
// containers from and writes previews into.
//
// A Filesystem is rooted at one directory; every name passed to it is
// resolved relative to that root, the way openat(2) resolves names against a
// directory descriptor.
package fs

import "os"

// Filesystem is a directory handle.
type Filesystem interface {
	// Create creates or truncates the named file for writing.
	Create(name string) (File, error)

	// Exists reports whether the named file exists.
	Exists(name string) (bool, error)

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path string, perm os.FileMode) error

	// Open opens the named file read-only.
	Open(name string) (File, error)

	// ReadDir lists the entries of a directory.
	ReadDir(dirname string) ([]os.FileInfo, error)

	// ReadFile returns the full content of the named file.
	ReadFile(name string) ([]byte, error)

	// Remove deletes the named file.
	Remove(name string) error

	// Root returns the directory this handle is rooted at.
	Root() string

	// Stat returns file metadata.
	Stat(name string) (os.FileInfo, error)

	// WriteFile writes data to the named file, creating or truncating it.
	WriteFile(name string, data []byte, perm os.FileMode) error
}
