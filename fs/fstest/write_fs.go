package fstest

import (
	"bytes"
	"testing"

	"github.com/cdown/rawtojpg/fs"
)

// TestWriteFS tests write operations: Create, WriteFile, MkdirAll and
// Remove.
func TestWriteFS(t *testing.T, filesystem fs.Filesystem) {
	t.Run("CreateAndWrite", func(t *testing.T) {
		testWriteFSCreate(t, filesystem)
	})
	t.Run("CreateTruncates", func(t *testing.T) {
		testWriteFSCreateTruncates(t, filesystem)
	})
	t.Run("WriteFile", func(t *testing.T) {
		testWriteFSWriteFile(t, filesystem)
	})
	t.Run("MkdirAll", func(t *testing.T) {
		testWriteFSMkdirAll(t, filesystem)
	})
	t.Run("Remove", func(t *testing.T) {
		testWriteFSRemove(t, filesystem)
	})
}

func writeWithCreate(t *testing.T, filesystem fs.Filesystem, name string, data []byte) {
	t.Helper()
	f, err := filesystem.Create(name)
	if err != nil {
		t.Fatalf("Create(%q): got error %v, want nil", name, err)
	}
	n, err := f.Write(data)
	if err != nil {
		_ = f.Close()
		t.Fatalf("Write(): got error %v, want nil", err)
	}
	if n != len(data) {
		_ = f.Close()
		t.Fatalf("Write(): wrote %d bytes, want %d", n, len(data))
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close(): got error %v, want nil", err)
	}
}

func checkContent(t *testing.T, filesystem fs.Filesystem, name string, want []byte) {
	t.Helper()
	got, err := filesystem.ReadFile(name)
	if err != nil {
		t.Fatalf("ReadFile(%q): got error %v, want nil", name, err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("ReadFile(%q): got %q, want %q", name, got, want)
	}
}

// testWriteFSCreate tests Create() on a new file.
func testWriteFSCreate(t *testing.T, filesystem fs.Filesystem) {
	data := []byte("test data for Create")
	writeWithCreate(t, filesystem, "create.jpg", data)
	checkContent(t, filesystem, "create.jpg", data)
}

// testWriteFSCreateTruncates tests Create() replaces a longer file.
func testWriteFSCreateTruncates(t *testing.T, filesystem fs.Filesystem) {
	writeWithCreate(t, filesystem, "trunc.jpg", []byte("a much longer first version"))
	writeWithCreate(t, filesystem, "trunc.jpg", []byte("short"))
	checkContent(t, filesystem, "trunc.jpg", []byte("short"))
}

// testWriteFSWriteFile tests WriteFile() round-trips through ReadFile().
func testWriteFSWriteFile(t *testing.T, filesystem fs.Filesystem) {
	data := []byte("test data for WriteFile")
	if err := filesystem.WriteFile("writefile.jpg", data, 0o644); err != nil {
		t.Fatalf("WriteFile(%q): got error %v, want nil", "writefile.jpg", err)
	}
	checkContent(t, filesystem, "writefile.jpg", data)
}

// testWriteFSMkdirAll tests MkdirAll() creates nested directories and
// accepts existing ones.
func testWriteFSMkdirAll(t *testing.T, filesystem fs.Filesystem) {
	for i := 0; i < 2; i++ {
		if err := filesystem.MkdirAll("a/b/c", 0o755); err != nil {
			t.Fatalf("MkdirAll(%q) #%d: got error %v, want nil", "a/b/c", i, err)
		}
	}
	info, err := filesystem.Stat("a/b")
	if err != nil {
		t.Fatalf("Stat(%q): got error %v, want nil", "a/b", err)
	}
	if !info.IsDir() {
		t.Errorf("Stat(%q).IsDir(): got false, want true", "a/b")
	}
}

// testWriteFSRemove tests Remove() deletes a file.
func testWriteFSRemove(t *testing.T, filesystem fs.Filesystem) {
	writeWithCreate(t, filesystem, "remove.jpg", []byte("x"))
	if err := filesystem.Remove("remove.jpg"); err != nil {
		t.Fatalf("Remove(%q): got error %v, want nil", "remove.jpg", err)
	}
	exists, err := filesystem.Exists("remove.jpg")
	if err != nil {
		t.Fatalf("Exists(%q): got error %v, want nil", "remove.jpg", err)
	}
	if exists {
		t.Errorf("Exists(%q) after Remove: got true, want false", "remove.jpg")
	}
}
