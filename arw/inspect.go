package arw

import (
	"io"

	"github.com/gabriel-vasile/mimetype"
	jseg "github.com/garyhouston/jpegsegs"

	"github.com/cdown/rawtojpg/errors"
	"github.com/cdown/rawtojpg/fs"
)

// Segment is one JPEG marker segment of a preview.
type Segment struct {
	Marker string
	Size   int
}

// Report describes a preview without extracting it.
type Report struct {
	Name     string
	Preview  Preview
	MIME     string
	Segments []Segment

	// WalkErr is set when the segment walk stopped before SOS. The preview
	// is still extractable; extraction never parses past the signature.
	WalkErr error
}

// Inspect locates the preview in in, detects its MIME type and lists its
// marker segments up to and including SOS.
func (x *Extractor) Inspect(in fs.File, name string) (*Report, error) {
	p, err := x.Locate(in, name)
	if err != nil {
		return nil, err
	}
	report := &Report{Name: name, Preview: p}

	section := io.NewSectionReader(in, int64(p.Offset), int64(p.Length))
	mt, err := mimetype.DetectReader(section)
	if err != nil {
		return nil, errors.IO("detect type", name, err)
	}
	report.MIME = mt.String()

	if _, err := section.Seek(0, io.SeekStart); err != nil {
		return nil, errors.IO("seek", name, err)
	}
	scanner, err := jseg.NewScanner(section)
	if err != nil {
		report.WalkErr = err
		return report, nil
	}
	for {
		marker, buf, err := scanner.Scan()
		if err != nil {
			report.WalkErr = err
			break
		}
		report.Segments = append(report.Segments, Segment{Marker: marker.Name(), Size: len(buf)})
		if marker == jseg.SOS {
			break
		}
	}

	x.logger.Debug("inspected preview", "file", name, "segments", len(report.Segments), "mime", report.MIME)
	return report, nil
}
