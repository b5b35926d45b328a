//go:build !linux

package arw

func adviseRandom(uintptr) error { return nil }

func adviseWillNeed(uintptr, int64, int64) error { return nil }
