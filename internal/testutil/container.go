// Package testutil builds synthetic raw containers for tests.
package testutil

import (
	"encoding/binary"
	"math/rand"

	"github.com/cdown/rawtojpg/arw"
)

// DefaultContainerSize matches the end-to-end fixture: large enough to hold
// both header fields and a small preview after them.
const DefaultContainerSize = 200000

// DefaultPreviewOffset is where NewContainerBuilder places the preview.
const DefaultPreviewOffset = 0x22000

// ContainerBuilder provides a fluent interface for building containers.
type ContainerBuilder struct {
	layout        arw.Layout
	size          int
	preview       []byte
	previewOffset uint32
	encodedOffset *uint32
	encodedLength *uint32
}

// NewContainerBuilder returns a builder for a DefaultContainerSize container
// holding a 102-byte preview (SOI followed by 100 pseudo-random bytes).
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		layout:        arw.SonyA1,
		size:          DefaultContainerSize,
		preview:       RandomPreview(1, 100),
		previewOffset: DefaultPreviewOffset,
	}
}

// WithLayout sets the header field positions.
func (b *ContainerBuilder) WithLayout(l arw.Layout) *ContainerBuilder {
	b.layout = l
	return b
}

// WithSize sets the total container size. The preview is still written if
// it fits; header fields are written only where they fit.
func (b *ContainerBuilder) WithSize(size int) *ContainerBuilder {
	b.size = size
	return b
}

// WithPreview sets the preview bytes.
func (b *ContainerBuilder) WithPreview(p []byte) *ContainerBuilder {
	b.preview = p
	return b
}

// WithPreviewAt sets where the preview is placed and encoded.
func (b *ContainerBuilder) WithPreviewAt(off uint32) *ContainerBuilder {
	b.previewOffset = off
	return b
}

// WithEncodedOffset overrides the offset field without moving the preview.
func (b *ContainerBuilder) WithEncodedOffset(off uint32) *ContainerBuilder {
	b.encodedOffset = &off
	return b
}

// WithEncodedLength overrides the length field.
func (b *ContainerBuilder) WithEncodedLength(n uint32) *ContainerBuilder {
	b.encodedLength = &n
	return b
}

// Preview returns the preview bytes the builder places.
func (b *ContainerBuilder) Preview() []byte {
	return b.preview
}

// Build returns the container bytes.
func (b *ContainerBuilder) Build() []byte {
	buf := make([]byte, b.size)

	if end := int(b.previewOffset) + len(b.preview); end <= len(buf) {
		copy(buf[b.previewOffset:], b.preview)
	}

	off := b.previewOffset
	if b.encodedOffset != nil {
		off = *b.encodedOffset
	}
	n := uint32(len(b.preview))
	if b.encodedLength != nil {
		n = *b.encodedLength
	}

	putField(buf, b.layout.OffsetField, off)
	putField(buf, b.layout.LengthField, n)
	return buf
}

func putField(buf []byte, pos int64, v uint32) {
	if pos+4 > int64(len(buf)) {
		return
	}
	binary.LittleEndian.PutUint32(buf[pos:], v)
}

// RandomPreview returns a SOI marker followed by n pseudo-random bytes.
func RandomPreview(seed int64, n int) []byte {
	r := rand.New(rand.NewSource(seed))
	p := make([]byte, 2+n)
	p[0], p[1] = 0xFF, 0xD8
	_, _ = r.Read(p[2:])
	return p
}

// MinimalJPEG returns a marker-level JPEG: SOI, APP0, DQT, SOF0, SOS, two
// bytes of scan data and EOI. It is not decodable, only walkable.
func MinimalJPEG() []byte {
	var p []byte
	p = append(p, 0xFF, 0xD8)

	app0 := append([]byte("JFIF\x00"), 0x01, 0x01, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00)
	p = appendSegment(p, 0xE0, app0)

	dqt := make([]byte, 65)
	for i := 1; i < len(dqt); i++ {
		dqt[i] = 1
	}
	p = appendSegment(p, 0xDB, dqt)

	sof0 := []byte{0x08, 0x00, 0x01, 0x00, 0x01, 0x01, 0x01, 0x11, 0x00}
	p = appendSegment(p, 0xC0, sof0)

	sos := []byte{0x01, 0x01, 0x00, 0x00, 0x3F, 0x00}
	p = appendSegment(p, 0xDA, sos)

	p = append(p, 0x12, 0x34)
	p = append(p, 0xFF, 0xD9)
	return p
}

func appendSegment(p []byte, marker byte, data []byte) []byte {
	n := len(data) + 2
	p = append(p, 0xFF, marker, byte(n>>8), byte(n))
	return append(p, data...)
}
