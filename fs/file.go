package fs

import "io/fs"

// File represents an open file handle.
// Implementations should behave consistently with *os.File.
type File interface {
	Close() error
	Name() string
	Read(p []byte) (n int, err error)
	ReadAt(p []byte, off int64) (n int, err error)
	Stat() (fs.FileInfo, error)
	Write(p []byte) (n int, err error)
}

// Descriptor is implemented by files that may be backed by an operating
// system file descriptor. ok is false for files that live only in memory.
type Descriptor interface {
	Descriptor() (fd uintptr, ok bool)
}
