package arw_test

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdown/rawtojpg/arw"
	"github.com/cdown/rawtojpg/errors"
	"github.com/cdown/rawtojpg/fs"
	"github.com/cdown/rawtojpg/fs/billy"
	"github.com/cdown/rawtojpg/internal/testutil"
)

func openContainer(t *testing.T, fsys fs.Filesystem, name string, data []byte) fs.File {
	t.Helper()
	require.NoError(t, fsys.WriteFile(name, data, 0o644))
	f, err := fsys.Open(name)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestExtract_WellFormed(t *testing.T) {
	in := billy.NewInMemoryFS()
	out := billy.NewInMemoryFS()
	b := testutil.NewContainerBuilder()
	f := openContainer(t, in, "DSC00001.ARW", b.Build())

	var status bytes.Buffer
	x := arw.New(arw.WithStatus(&status))

	res, err := x.Extract(f, "DSC00001.ARW", out)
	require.NoError(t, err)

	assert.Equal(t, "DSC00001.ARW", res.Input)
	assert.Equal(t, "DSC00001.jpg", res.Output)
	assert.Equal(t, uint32(testutil.DefaultPreviewOffset), res.Preview.Offset)
	assert.Equal(t, uint32(102), res.Preview.Length)
	assert.Equal(t, int64(testutil.DefaultContainerSize), res.Preview.ContainerSize)

	got, err := out.ReadFile("DSC00001.jpg")
	require.NoError(t, err)
	assert.Equal(t, b.Preview(), got)
	assert.Equal(t, "DSC00001.ARW\n", status.String())
}

func TestExtract_PreviewDirectlyAfterHeader(t *testing.T) {
	in := billy.NewInMemoryFS()
	out := billy.NewInMemoryFS()

	b := testutil.NewContainerBuilder().
		WithPreview(testutil.RandomPreview(7, 100)).
		WithPreviewAt(uint32(arw.SonyA1.HeaderEnd()))
	f := openContainer(t, in, "a.ARW", b.Build())

	res, err := arw.New().Extract(f, "a.ARW", out)
	require.NoError(t, err)
	assert.Equal(t, uint32(arw.LengthPosition+arw.FieldSize), res.Preview.Offset)

	got, err := out.ReadFile("a.jpg")
	require.NoError(t, err)
	assert.Equal(t, b.Preview(), got)
}

func TestExtract_Failures(t *testing.T) {
	tests := []struct {
		name     string
		builder  *testutil.ContainerBuilder
		code     errors.ErrorCode
		sentinel error
	}{
		{
			name:     "range past end of container",
			builder:  testutil.NewContainerBuilder().WithEncodedLength(testutil.DefaultContainerSize),
			code:     errors.CodeOutOfBounds,
			sentinel: arw.ErrOutOfBounds,
		},
		{
			name:     "range ends one byte past container",
			builder:  testutil.NewContainerBuilder().WithEncodedLength(testutil.DefaultContainerSize - testutil.DefaultPreviewOffset + 1),
			code:     errors.CodeOutOfBounds,
			sentinel: arw.ErrOutOfBounds,
		},
		{
			name: "offset plus length wraps in 32 bits",
			builder: testutil.NewContainerBuilder().
				WithEncodedOffset(math.MaxUint32 - 0x0F).
				WithEncodedLength(0x20),
			code:     errors.CodeOutOfBounds,
			sentinel: arw.ErrOutOfBounds,
		},
		{
			name:     "offset at end of container",
			builder:  testutil.NewContainerBuilder().WithEncodedOffset(testutil.DefaultContainerSize - 1).WithEncodedLength(0),
			code:     errors.CodeOutOfBounds,
			sentinel: arw.ErrOutOfBounds,
		},
		{
			name:     "container smaller than offset field",
			builder:  testutil.NewContainerBuilder().WithSize(int(arw.OffsetPosition) + 2),
			code:     errors.CodeOutOfBounds,
			sentinel: arw.ErrOutOfBounds,
		},
		{
			name:     "container ends between fields",
			builder:  testutil.NewContainerBuilder().WithSize(int(arw.OffsetPosition) + arw.FieldSize),
			code:     errors.CodeOutOfBounds,
			sentinel: arw.ErrOutOfBounds,
		},
		{
			name:     "empty container",
			builder:  testutil.NewContainerBuilder().WithSize(0),
			code:     errors.CodeOutOfBounds,
			sentinel: arw.ErrOutOfBounds,
		},
		{
			name:     "missing SOI",
			builder:  testutil.NewContainerBuilder().WithPreview(append([]byte{0x00, 0x00}, make([]byte, 100)...)),
			code:     errors.CodeBadSignature,
			sentinel: arw.ErrBadSignature,
		},
		{
			name:     "byte-swapped SOI",
			builder:  testutil.NewContainerBuilder().WithPreview([]byte{0xD8, 0xFF, 0x00, 0x00}),
			code:     errors.CodeBadSignature,
			sentinel: arw.ErrBadSignature,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := billy.NewInMemoryFS()
			out := billy.NewInMemoryFS()
			f := openContainer(t, in, "bad.ARW", tt.builder.Build())

			var status bytes.Buffer
			res, err := arw.New(arw.WithStatus(&status)).Extract(f, "bad.ARW", out)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.Equal(t, tt.code, errors.CodeOf(err), "error: %v", err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Contains(t, err.Error(), "bad.ARW")

			exists, err := out.Exists("bad.jpg")
			require.NoError(t, err)
			assert.False(t, exists, "no output may be created on failure")
			assert.Empty(t, status.String())
		})
	}
}

func TestExtract_ZeroLengthPreview(t *testing.T) {
	// A zero length is in bounds as long as the signature itself is.
	in := billy.NewInMemoryFS()
	out := billy.NewInMemoryFS()
	f := openContainer(t, in, "z.ARW", testutil.NewContainerBuilder().WithEncodedLength(0).Build())

	_, err := arw.New().Extract(f, "z.ARW", out)
	require.NoError(t, err)

	got, err := out.ReadFile("z.jpg")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExtract_OverwritesExistingOutput(t *testing.T) {
	in := billy.NewInMemoryFS()
	out := billy.NewInMemoryFS()
	require.NoError(t, out.WriteFile("x.jpg", bytes.Repeat([]byte{0xAA}, 4096), 0o644))

	b := testutil.NewContainerBuilder()
	data := b.Build()
	x := arw.New()

	for i := 0; i < 2; i++ {
		f := openContainer(t, in, "x.ARW", data)
		_, err := x.Extract(f, "x.ARW", out)
		require.NoError(t, err)

		got, err := out.ReadFile("x.jpg")
		require.NoError(t, err)
		assert.Equal(t, b.Preview(), got, "run %d", i)
	}
}

func TestExtract_CustomLayout(t *testing.T) {
	layout := arw.Layout{Name: "test", OffsetField: 16, LengthField: 32}
	require.NoError(t, layout.Validate())

	b := testutil.NewContainerBuilder().
		WithLayout(layout).
		WithSize(1024).
		WithPreviewAt(64).
		WithPreview(testutil.RandomPreview(3, 20))

	in := billy.NewInMemoryFS()
	out := billy.NewInMemoryFS()
	f := openContainer(t, in, "c.ARW", b.Build())

	x := arw.New(arw.WithLayout(layout))
	assert.Equal(t, layout, x.Layout())

	_, err := x.Extract(f, "c.ARW", out)
	require.NoError(t, err)

	got, err := out.ReadFile("c.jpg")
	require.NoError(t, err)
	assert.Equal(t, b.Preview(), got)
}

// failingFS hands out output files whose writes fail after limit bytes.
type failingFS struct {
	*billy.FS
	limit int
}

func (f *failingFS) Create(name string) (fs.File, error) {
	file, err := f.FS.Create(name)
	if err != nil {
		return nil, err
	}
	return &failingFile{File: file, remaining: f.limit}, nil
}

type failingFile struct {
	fs.File
	remaining int
}

func (f *failingFile) Write(p []byte) (int, error) {
	if len(p) > f.remaining {
		n, _ := f.File.Write(p[:f.remaining])
		f.remaining = 0
		return n, fmt.Errorf("disk full")
	}
	f.remaining -= len(p)
	return f.File.Write(p)
}

func TestExtract_WriteFailureRemovesOutput(t *testing.T) {
	in := billy.NewInMemoryFS()
	out := &failingFS{FS: billy.NewInMemoryFS(), limit: 10}
	f := openContainer(t, in, "w.ARW", testutil.NewContainerBuilder().Build())

	var status bytes.Buffer
	_, err := arw.New(arw.WithStatus(&status)).Extract(f, "w.ARW", out)
	require.Error(t, err)
	assert.Equal(t, errors.CodeIO, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "w.jpg")

	exists, err := out.Exists("w.jpg")
	require.NoError(t, err)
	assert.False(t, exists, "partial output must be removed")
	assert.Empty(t, status.String())
}

// shortReader truncates every positioned read past limit, as if the
// container shrank after it was stat'ed.
type shortReader struct {
	fs.File
	limit int64
}

func (s *shortReader) ReadAt(p []byte, off int64) (int, error) {
	if off >= s.limit {
		return 0, io.EOF
	}
	if off+int64(len(p)) > s.limit {
		n, _ := s.File.ReadAt(p[:s.limit-off], off)
		return n, io.EOF
	}
	return s.File.ReadAt(p, off)
}

func TestExtract_ShortReadIsReported(t *testing.T) {
	in := billy.NewInMemoryFS()
	out := billy.NewInMemoryFS()
	f := openContainer(t, in, "s.ARW", testutil.NewContainerBuilder().Build())

	short := &shortReader{File: f, limit: testutil.DefaultPreviewOffset + 50}
	_, err := arw.New().Extract(short, "s.ARW", out)
	require.Error(t, err)
	assert.Equal(t, errors.CodeIO, errors.CodeOf(err))
	assert.ErrorIs(t, err, io.ErrShortWrite)

	exists, err := out.Exists("s.jpg")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestExtract_OSFilesystem(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	b := testutil.NewContainerBuilder()
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "o.ARW"), b.Build(), 0o644))

	in := billy.NewOSFS(inDir)
	f, err := in.Open("o.ARW")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	_, err = arw.New().Extract(f, "o.ARW", billy.NewOSFS(outDir))
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(outDir, "o.jpg"))
	require.NoError(t, err)
	assert.Equal(t, b.Preview(), got)
}
