//go:build linux

package arw

import "golang.org/x/sys/unix"

// Only a few bytes of a container are read, so kernel read-ahead over the
// rest of the file is wasted work.
func adviseRandom(fd uintptr) error {
	return unix.Fadvise(int(fd), 0, 0, unix.FADV_RANDOM)
}

func adviseWillNeed(fd uintptr, off, n int64) error {
	return unix.Fadvise(int(fd), off, n, unix.FADV_WILLNEED)
}
