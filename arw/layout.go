package arw

import (
	"github.com/cdown/rawtojpg/errors"
)

// Header field positions for SonyA1. Found by inspecting ILCE-1 files
// written by firmware 1.31; other bodies and firmware revisions may differ.
const (
	OffsetPosition int64 = 0x21c18
	LengthPosition int64 = 0x21c24
)

// FieldSize is the width of each header field.
const FieldSize = 4

// Layout names the absolute positions of the preview offset and length
// fields within a container.
type Layout struct {
	Name        string
	OffsetField int64
	LengthField int64
}

// SonyA1 is the only known layout and the default.
var SonyA1 = Layout{
	Name:        "ILCE-1 fw 1.31",
	OffsetField: OffsetPosition,
	LengthField: LengthPosition,
}

// HeaderEnd returns the smallest container size that holds both fields.
func (l Layout) HeaderEnd() int64 {
	return max(l.OffsetField, l.LengthField) + FieldSize
}

// Validate checks that both fields are at non-negative, non-overlapping
// positions.
func (l Layout) Validate() error {
	if l.OffsetField < 0 || l.LengthField < 0 {
		return errors.Newf(errors.CodeInvalidInput, "validate layout", "",
			"negative field position (offset=%#x length=%#x)", l.OffsetField, l.LengthField)
	}
	d := l.OffsetField - l.LengthField
	if d < FieldSize && d > -FieldSize {
		return errors.Newf(errors.CodeInvalidInput, "validate layout", "",
			"offset field %#x overlaps length field %#x", l.OffsetField, l.LengthField)
	}
	return nil
}
