package fstest

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path"
	"sort"
	"testing"

	"github.com/cdown/rawtojpg/fs"
)

// TestReadFS tests read operations: Open, ReadAt, Stat, ReadDir, ReadFile
// and Exists.
func TestReadFS(t *testing.T, filesystem fs.Filesystem) {
	testContent := []byte("abcdef")

	if err := filesystem.MkdirAll("testdir", 0o755); err != nil {
		t.Fatalf("MkdirAll(testdir): setup failed: %v", err)
	}
	for _, name := range []string{"b.ARW", "a.ARW", "c.txt"} {
		if err := filesystem.WriteFile(path.Join("testdir", name), testContent, 0o644); err != nil {
			t.Fatalf("WriteFile(testdir/%s): setup failed: %v", name, err)
		}
	}

	t.Run("OpenRead", func(t *testing.T) {
		testReadFSOpenRead(t, filesystem, testContent)
	})
	t.Run("ReadAt", func(t *testing.T) {
		testReadFSReadAt(t, filesystem)
	})
	t.Run("FileStat", func(t *testing.T) {
		testReadFSFileStat(t, filesystem, testContent)
	})
	t.Run("StatDir", func(t *testing.T) {
		testReadFSStatDir(t, filesystem)
	})
	t.Run("ReadDir", func(t *testing.T) {
		testReadFSReadDir(t, filesystem)
	})
	t.Run("ReadFile", func(t *testing.T) {
		testReadFSReadFile(t, filesystem, testContent)
	})
	t.Run("OpenNotExist", func(t *testing.T) {
		testReadFSOpenNotExist(t, filesystem)
	})
	t.Run("Exists", func(t *testing.T) {
		testReadFSExists(t, filesystem)
	})
}

func openTestFile(t *testing.T, filesystem fs.Filesystem) fs.File {
	t.Helper()
	f, err := filesystem.Open("testdir/a.ARW")
	if err != nil {
		t.Fatalf("Open(%q): got error %v, want nil", "testdir/a.ARW", err)
	}
	t.Cleanup(func() {
		if err := f.Close(); err != nil {
			t.Errorf("Close(): got error %v", err)
		}
	})
	return f
}

// testReadFSOpenRead tests Open() on an existing file and reads it through.
func testReadFSOpenRead(t *testing.T, filesystem fs.Filesystem, testContent []byte) {
	f := openTestFile(t, filesystem)

	data, err := io.ReadAll(f)
	if err != nil {
		t.Errorf("ReadAll(): got error %v, want nil", err)
		return
	}
	if !bytes.Equal(data, testContent) {
		t.Errorf("ReadAll(): got %q, want %q", data, testContent)
	}
}

// testReadFSReadAt tests positioned reads inside and across the end of a file.
func testReadFSReadAt(t *testing.T, filesystem fs.Filesystem) {
	f := openTestFile(t, filesystem)

	buf := make([]byte, 2)
	n, err := f.ReadAt(buf, 3)
	if err != nil || n != 2 || string(buf) != "de" {
		t.Errorf("ReadAt(2, 3): got %d, %q, %v; want 2, %q, nil", n, buf[:n], err, "de")
	}

	// Positioned reads do not move the read offset.
	buf = make([]byte, 1)
	if _, err := f.Read(buf); err != nil || buf[0] != 'a' {
		t.Errorf("Read() after ReadAt: got %q, %v; want %q, nil", buf, err, "a")
	}

	buf = make([]byte, 4)
	n, err = f.ReadAt(buf, 4)
	if n != 2 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadAt(4, 4): got %d, %v; want 2, io.EOF", n, err)
	}
}

// testReadFSFileStat tests Stat() on an open file.
func testReadFSFileStat(t *testing.T, filesystem fs.Filesystem, testContent []byte) {
	f := openTestFile(t, filesystem)

	info, err := f.Stat()
	if err != nil {
		t.Fatalf("Stat(): got error %v, want nil", err)
	}
	if info.Size() != int64(len(testContent)) {
		t.Errorf("Stat().Size(): got %d, want %d", info.Size(), len(testContent))
	}
	if info.IsDir() {
		t.Errorf("Stat().IsDir(): got true, want false")
	}
}

// testReadFSStatDir tests Stat() on a directory.
func testReadFSStatDir(t *testing.T, filesystem fs.Filesystem) {
	info, err := filesystem.Stat("testdir")
	if err != nil {
		t.Fatalf("Stat(%q): got error %v, want nil", "testdir", err)
	}
	if !info.IsDir() {
		t.Errorf("Stat(%q).IsDir(): got false, want true", "testdir")
	}
}

// testReadFSReadDir tests ReadDir() lists every entry by base name.
func testReadFSReadDir(t *testing.T, filesystem fs.Filesystem) {
	entries, err := filesystem.ReadDir("testdir")
	if err != nil {
		t.Fatalf("ReadDir(%q): got error %v, want nil", "testdir", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	want := []string{"a.ARW", "b.ARW", "c.txt"}
	if len(names) != len(want) {
		t.Fatalf("ReadDir(%q): got %v, want %v", "testdir", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("ReadDir(%q)[%d]: got %q, want %q", "testdir", i, names[i], want[i])
		}
	}
}

// testReadFSReadFile tests ReadFile() returns the full contents.
func testReadFSReadFile(t *testing.T, filesystem fs.Filesystem, testContent []byte) {
	data, err := filesystem.ReadFile("testdir/c.txt")
	if err != nil {
		t.Fatalf("ReadFile(%q): got error %v, want nil", "testdir/c.txt", err)
	}
	if !bytes.Equal(data, testContent) {
		t.Errorf("ReadFile(%q): got %q, want %q", "testdir/c.txt", data, testContent)
	}
}

// testReadFSOpenNotExist tests Open() on a missing file.
func testReadFSOpenNotExist(t *testing.T, filesystem fs.Filesystem) {
	_, err := filesystem.Open("testdir/missing.ARW")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open(%q): got error %v, want os.ErrNotExist", "testdir/missing.ARW", err)
	}
}

// testReadFSExists tests Exists() on files, directories and missing paths.
func testReadFSExists(t *testing.T, filesystem fs.Filesystem) {
	for name, want := range map[string]bool{
		"testdir":             true,
		"testdir/a.ARW":       true,
		"testdir/missing.ARW": false,
	} {
		got, err := filesystem.Exists(name)
		if err != nil {
			t.Errorf("Exists(%q): got error %v, want nil", name, err)
			continue
		}
		if got != want {
			t.Errorf("Exists(%q): got %v, want %v", name, got, want)
		}
	}
}
