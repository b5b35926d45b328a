package arw

import "strings"

// OutputExt is appended to the container stem to name the preview.
const OutputExt = ".jpg"

// OutputName derives the preview file name from a container name by
// replacing everything after the last dot with OutputExt. A name without
// a dot keeps its full text.
//
//	"DSC00001.ARW"  -> "DSC00001.jpg"
//	"a.b.ARW"       -> "a.b.jpg"
//	"noext"         -> "noext.jpg"
func OutputName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return name + OutputExt
}
