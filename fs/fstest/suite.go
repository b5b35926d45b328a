// Package fstest provides a conformance test suite for validating
// implementations of the fs.Filesystem directory handle.
//
// Providers call TestSuite from their own tests with a constructor that
// returns a fresh, empty filesystem:
//
//	func TestMyProvider(t *testing.T) {
//	    fstest.TestSuite(t, func() fs.Filesystem {
//	        return myprovider.New()
//	    })
//	}
//
// The suite checks the operations the extractor depends on: positioned
// reads and Stat on open files, listing, and truncating creates.
package fstest

import (
	"testing"

	"github.com/cdown/rawtojpg/fs"
)

// TestSuite runs all conformance tests against a filesystem.
// The newFS function should return a fresh, empty filesystem for each test.
func TestSuite(t *testing.T, newFS func() fs.Filesystem) {
	TestSuiteWithSkip(t, newFS, nil)
}

// TestSuiteWithSkip runs conformance tests with optional test skipping.
// The skipTests parameter is a slice of test names to skip (e.g. "WriteFS").
func TestSuiteWithSkip(t *testing.T, newFS func() fs.Filesystem, skipTests []string) {
	shouldSkip := func(testName string) bool {
		for _, skip := range skipTests {
			if skip == testName {
				return true
			}
		}
		return false
	}

	t.Run("ReadFS", func(t *testing.T) {
		if shouldSkip("ReadFS") {
			t.Skip("Skipped by provider configuration")
			return
		}
		TestReadFS(t, newFS())
	})

	t.Run("WriteFS", func(t *testing.T) {
		if shouldSkip("WriteFS") {
			t.Skip("Skipped by provider configuration")
			return
		}
		TestWriteFS(t, newFS())
	})
}
