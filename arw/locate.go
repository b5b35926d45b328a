package arw

import (
	"bytes"
	"encoding/binary"
	stderrors "errors"
	"io"

	jseg "github.com/garyhouston/jpegsegs"

	"github.com/cdown/rawtojpg/errors"
	"github.com/cdown/rawtojpg/fs"
)

var (
	// ErrOutOfBounds indicates a header field or the preview range lies
	// outside the container.
	ErrOutOfBounds = stderrors.New("out of bounds")

	// ErrBadSignature indicates the preview does not start with FF D8.
	ErrBadSignature = stderrors.New("missing JPEG SOI marker")
)

// soi is the two-byte signature every preview starts with.
var soi = []byte{0xFF, jseg.SOI}

// Preview locates an embedded preview within its container.
type Preview struct {
	Offset        uint32
	Length        uint32
	ContainerSize int64
}

// End returns the offset one past the last preview byte. It is computed in
// 64 bits and cannot wrap.
func (p Preview) End() uint64 {
	return uint64(p.Offset) + uint64(p.Length)
}

// Locate reads the header fields of in and validates the preview range and
// signature. It reads at most 10 bytes and writes nothing.
func (x *Extractor) Locate(in fs.File, name string) (Preview, error) {
	info, err := in.Stat()
	if err != nil {
		return Preview{}, errors.IO("stat", name, err)
	}
	size := info.Size()

	layout := x.opts.Layout
	off, err := readField(in, name, "offset", layout.OffsetField, size)
	if err != nil {
		return Preview{}, err
	}
	length, err := readField(in, name, "length", layout.LengthField, size)
	if err != nil {
		return Preview{}, err
	}

	p := Preview{Offset: off, Length: length, ContainerSize: size}
	if p.End() > uint64(size) {
		return Preview{}, errors.Newf(errors.CodeOutOfBounds, "locate preview", name,
			"%w: preview %#x+%d ends past container size %d", ErrOutOfBounds, off, length, size)
	}
	if uint64(off)+uint64(len(soi)) > uint64(size) {
		return Preview{}, errors.Newf(errors.CodeOutOfBounds, "locate preview", name,
			"%w: signature at %#x ends past container size %d", ErrOutOfBounds, off, size)
	}

	sig := make([]byte, len(soi))
	if err := readFull(in, sig, int64(off)); err != nil {
		return Preview{}, errors.IO("read signature", name, err)
	}
	if !bytes.Equal(sig, soi) {
		return Preview{}, errors.Newf(errors.CodeBadSignature, "locate preview", name,
			"%w: found % x at %#x", ErrBadSignature, sig, off)
	}

	return p, nil
}

func readField(in fs.File, name, field string, pos, size int64) (uint32, error) {
	if pos+FieldSize > size {
		return 0, errors.Newf(errors.CodeOutOfBounds, "read "+field+" field", name,
			"%w: field at %#x ends past container size %d", ErrOutOfBounds, pos, size)
	}
	var buf [FieldSize]byte
	if err := readFull(in, buf[:], pos); err != nil {
		return 0, errors.IO("read "+field+" field", name, err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// readFull fills p from off. A ReaderAt may return io.EOF alongside a full
// read at the end of the file; that is not an error here.
func readFull(r io.ReaderAt, p []byte, off int64) error {
	n, err := r.ReadAt(p, off)
	if n == len(p) {
		return nil
	}
	if err == nil || stderrors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return err
}
