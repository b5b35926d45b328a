// Package arw extracts the embedded JPEG preview from Sony ARW containers.
//
// The preview is not found by walking the container's TIFF directories.
// Two little-endian uint32 header fields at fixed positions give the
// preview's offset and length; the positions are described by a Layout.
// Before anything is written the range is checked against the container
// size and must begin with the JPEG start-of-image marker (FF D8).
//
// Containers are read with positioned reads of only the bytes needed, so
// memory use does not depend on the container size.
//
// Basic usage:
//
//	x := arw.New(arw.WithStatus(os.Stdout))
//	in, _ := inputDir.Open("DSC00001.ARW")
//	defer in.Close()
//	res, err := x.Extract(in, "DSC00001.ARW", outputDir)
//
// Every failure is an *errors.Error from github.com/cdown/rawtojpg/errors.
// Range and signature failures also wrap ErrOutOfBounds and ErrBadSignature.
package arw
