package billy

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// HostOS is a billy.Filesystem that resolves absolute host paths as given.
type HostOS struct {
	osfs.ChrootOS
}

// Chroot returns a bound filesystem rooted at the provided path.
//
//nolint:ireturn // billy.Filesystem is an interface; signature is dictated by upstream.
func (h *HostOS) Chroot(path string) (billy.Filesystem, error) {
	return osfs.New(path, osfs.WithBoundOS()), nil
}

// Root returns the root path for this filesystem.
func (h *HostOS) Root() string {
	return "/"
}

// NewHostFS creates a filesystem over the whole host, for paths given on
// the command line before a directory handle exists.
func NewHostFS() *FS {
	return &FS{
		fs: &HostOS{},
	}
}
