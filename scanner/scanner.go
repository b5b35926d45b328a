package scanner

import (
	"context"
	"os"
	"strings"

	"github.com/cdown/rawtojpg/errors"
	"github.com/cdown/rawtojpg/fs"
)

// Suffix is the case-sensitive name suffix of a raw container.
const Suffix = ".ARW"

// Entry is one selected directory entry.
type Entry struct {
	// Name is the base name, relative to the scanned directory.
	Name string

	// Mode is the entry's type and permission bits as listed.
	Mode os.FileMode
}

// Scanner selects raw containers from a directory listing.
type Scanner struct {
	filesystem fs.Filesystem
}

// NewScanner creates a scanner over the given filesystem.
func NewScanner(filesystem fs.Filesystem) *Scanner {
	return &Scanner{filesystem: filesystem}
}

// Matches reports whether name is selected.
func Matches(name string) bool {
	return len(name) >= len(Suffix) && strings.HasSuffix(name, Suffix)
}

// Scan lists dir and returns the selected entries in listing order.
func (s *Scanner) Scan(ctx context.Context, dir string) ([]Entry, error) {
	infos, err := s.filesystem.ReadDir(dir)
	if err != nil {
		return nil, errors.IO("read directory", dir, err)
	}

	var entries []Entry
	for _, info := range infos {
		select {
		case <-ctx.Done():
			return nil, errors.New(errors.CodeCancelled, "scan", dir, ctx.Err())
		default:
		}

		if !Matches(info.Name()) {
			continue
		}
		entries = append(entries, Entry{Name: info.Name(), Mode: info.Mode()})
	}

	return entries, nil
}
